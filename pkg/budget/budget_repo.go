package budget

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kharcha/kharcha/internal/utils"
	log "github.com/sirupsen/logrus"
)

var ErrEntryNotFound = errors.New("budget entry not found")

type BudgetRepo interface {
	// Store appends a new Entry to the history.
	Store(ctx context.Context, userId int, entry Entry) (int, error)
	Get(ctx context.Context, userId int, id int) (Entry, error)
	// GetAll lists the full history, newest first.
	GetAll(ctx context.Context, userId int) ([]Entry, error)
	// GetLatestByType returns the most recent entry of the given type.
	GetLatestByType(ctx context.Context, userId int, entryType EntryType) (Entry, error)
	UpdateAmount(ctx context.Context, userId int, id int, amount utils.Money) (bool, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)

	// SetCategoryBudget upserts the soft limit for a category.
	SetCategoryBudget(ctx context.Context, userId int, categoryBudget CategoryBudget) error
	GetCategoryBudgets(ctx context.Context, userId int) ([]CategoryBudget, error)
}

type BudgetRepoImpl struct {
	db *sql.DB
}

func NewBudgetRepo(db *sql.DB) *BudgetRepoImpl {
	return &BudgetRepoImpl{db: db}
}

func (bi *BudgetRepoImpl) Store(ctx context.Context, userId int, entry Entry) (int, error) {
	query := `INSERT INTO budget_entries (type, amount, created_at, user_id)
				VALUES ($1, $2, $3, $4) RETURNING id`

	var id int
	err := bi.db.QueryRowContext(ctx, query,
		entry.Type,
		int64(entry.Amount),
		entry.CreatedAt.UTC().Format(time.RFC3339),
		userId,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store budget entry: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (bi *BudgetRepoImpl) Get(ctx context.Context, userId int, id int) (Entry, error) {
	query := `SELECT id, type, amount, created_at FROM budget_entries
				WHERE id = $1 AND user_id = $2`
	row := bi.db.QueryRowContext(ctx, query, id, userId)
	entry, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrEntryNotFound
	}
	return entry, err
}

func (bi *BudgetRepoImpl) GetAll(ctx context.Context, userId int) ([]Entry, error) {
	query := `SELECT id, type, amount, created_at FROM budget_entries
				WHERE user_id = $1 ORDER BY id DESC`
	rows, err := bi.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query budget entries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return entries, nil
}

func (bi *BudgetRepoImpl) GetLatestByType(ctx context.Context, userId int, entryType EntryType) (Entry, error) {
	query := `SELECT id, type, amount, created_at FROM budget_entries
				WHERE user_id = $1 AND type = $2 ORDER BY id DESC LIMIT 1`
	row := bi.db.QueryRowContext(ctx, query, userId, entryType)
	entry, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrEntryNotFound
	}
	return entry, err
}

func (bi *BudgetRepoImpl) UpdateAmount(ctx context.Context, userId int, id int, amount utils.Money) (bool, error) {
	query := `UPDATE budget_entries SET amount = $1 WHERE id = $2 AND user_id = $3`
	result, err := bi.db.ExecContext(ctx, query, int64(amount), id, userId)
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

func (bi *BudgetRepoImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	query := "DELETE FROM budget_entries WHERE id = $1 AND user_id = $2"
	result, err := bi.db.ExecContext(ctx, query, id, userId)
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

func (bi *BudgetRepoImpl) SetCategoryBudget(ctx context.Context, userId int, categoryBudget CategoryBudget) error {
	query := `INSERT INTO category_budgets (category_id, amount, user_id)
				VALUES ($1, $2, $3)
				ON CONFLICT (user_id, category_id) DO UPDATE SET amount = excluded.amount`
	_, err := bi.db.ExecContext(ctx, query, categoryBudget.CategoryID, int64(categoryBudget.Amount), userId)
	if err != nil {
		err := fmt.Errorf("could not store category budget: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (bi *BudgetRepoImpl) GetCategoryBudgets(ctx context.Context, userId int) ([]CategoryBudget, error) {
	query := `SELECT category_id, amount FROM category_budgets WHERE user_id = $1 ORDER BY category_id`
	rows, err := bi.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query category budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var budgets []CategoryBudget
	for rows.Next() {
		var categoryBudget CategoryBudget
		var amount int64
		if err := rows.Scan(&categoryBudget.CategoryID, &amount); err != nil {
			err := fmt.Errorf("could not scan category budget: %w", err)
			log.Error(err)
			return nil, err
		}
		categoryBudget.Amount = utils.Money(amount)
		budgets = append(budgets, categoryBudget)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return budgets, nil
}

func scanEntry(scan func(dest ...any) error) (Entry, error) {
	var entry Entry
	var amount int64
	var createdAt string
	err := scan(&entry.ID, &entry.Type, &amount, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, err
	}
	if err != nil {
		err := fmt.Errorf("could not scan budget entry: %w", err)
		log.Error(err)
		return Entry{}, err
	}
	entry.Amount = utils.Money(amount)
	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		entry.CreatedAt = parsed
	}
	return entry, nil
}
