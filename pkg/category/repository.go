package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrCategoryNotFound = errors.New("category not found")
var ErrSubCategoryNotFound = errors.New("sub-category not found")

type Repository interface {
	// GetAll returns system categories plus the user's own, each with its
	// sub-categories attached, ordered by id.
	GetAll(ctx context.Context, userId int) ([]Category, error)
	Get(ctx context.Context, userId int, id int) (Category, error)
	Store(ctx context.Context, userId int, name string) (int, error)
	Rename(ctx context.Context, userId int, id int, name string) (bool, error)
	// Delete removes a user-owned category and all its sub-categories.
	Delete(ctx context.Context, userId int, id int) (bool, error)
	StoreSub(ctx context.Context, userId int, categoryId int, name string) (int, error)
	RenameSub(ctx context.Context, userId int, id int, name string) (bool, error)
	DeleteSub(ctx context.Context, userId int, id int) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetAll(ctx context.Context, userId int) ([]Category, error) {
	query := `SELECT id, name, owner FROM categories
				WHERE owner = 'system' OR user_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	index := map[int]int{}
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Owner); err != nil {
			err := fmt.Errorf("could not scan category: %w", err)
			log.Error(err)
			return nil, err
		}
		category.SubCategories = []SubCategory{}
		index[category.ID] = len(categories)
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	subQuery := `SELECT id, category_id, name, owner FROM sub_categories
					WHERE owner = 'system' OR user_id = $1 ORDER BY id`
	subRows, err := r.db.QueryContext(ctx, subQuery, userId)
	if err != nil {
		err := fmt.Errorf("could not query sub-categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer subRows.Close()

	for subRows.Next() {
		var sub SubCategory
		if err := subRows.Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.Owner); err != nil {
			err := fmt.Errorf("could not scan sub-category: %w", err)
			log.Error(err)
			return nil, err
		}
		if idx, ok := index[sub.CategoryID]; ok {
			categories[idx].SubCategories = append(categories[idx].SubCategories, sub)
		}
	}
	if err := subRows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return categories, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id int) (Category, error) {
	query := `SELECT id, name, owner FROM categories
				WHERE id = $1 AND (owner = 'system' OR user_id = $2)`
	var category Category
	err := r.db.QueryRowContext(ctx, query, id, userId).Scan(&category.ID, &category.Name, &category.Owner)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, ErrCategoryNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not scan category: %w", err)
		log.Error(err)
		return Category{}, err
	}
	category.SubCategories = []SubCategory{}

	subQuery := `SELECT id, category_id, name, owner FROM sub_categories
					WHERE category_id = $1 AND (owner = 'system' OR user_id = $2) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, subQuery, id, userId)
	if err != nil {
		err := fmt.Errorf("could not query sub-categories: %w", err)
		log.Error(err)
		return Category{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var sub SubCategory
		if err := rows.Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.Owner); err != nil {
			err := fmt.Errorf("could not scan sub-category: %w", err)
			log.Error(err)
			return Category{}, err
		}
		category.SubCategories = append(category.SubCategories, sub)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return Category{}, err
	}

	return category, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, name string) (int, error) {
	query := `INSERT INTO categories (name, owner, user_id) VALUES ($1, 'user', $2) RETURNING id`
	var id int
	if err := r.db.QueryRowContext(ctx, query, name, userId).Scan(&id); err != nil {
		err := fmt.Errorf("could not store category: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Rename(ctx context.Context, userId int, id int, name string) (bool, error) {
	query := `UPDATE categories SET name = $1 WHERE id = $2 AND owner = 'user' AND user_id = $3`
	return r.exec(ctx, query, name, id, userId)
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM sub_categories WHERE category_id = $1 AND user_id = $2`, id, userId); err != nil {
		err := fmt.Errorf("could not delete sub-categories: %w", err)
		log.Error(err)
		return false, err
	}
	result, err := tx.ExecContext(ctx,
		`DELETE FROM categories WHERE id = $1 AND owner = 'user' AND user_id = $2`, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete category: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	if rowsAffected != 1 {
		return false, nil
	}
	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit transaction: %w", err)
		log.Error(err)
		return false, err
	}
	return true, nil
}

func (r *RepositoryImpl) StoreSub(ctx context.Context, userId int, categoryId int, name string) (int, error) {
	query := `INSERT INTO sub_categories (category_id, name, owner, user_id) VALUES ($1, $2, 'user', $3) RETURNING id`
	var id int
	if err := r.db.QueryRowContext(ctx, query, categoryId, name, userId).Scan(&id); err != nil {
		err := fmt.Errorf("could not store sub-category: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) RenameSub(ctx context.Context, userId int, id int, name string) (bool, error) {
	query := `UPDATE sub_categories SET name = $1 WHERE id = $2 AND owner = 'user' AND user_id = $3`
	return r.exec(ctx, query, name, id, userId)
}

func (r *RepositoryImpl) DeleteSub(ctx context.Context, userId int, id int) (bool, error) {
	query := `DELETE FROM sub_categories WHERE id = $1 AND owner = 'user' AND user_id = $2`
	return r.exec(ctx, query, id, userId)
}

func (r *RepositoryImpl) exec(ctx context.Context, query string, args ...any) (bool, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}
