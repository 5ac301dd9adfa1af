package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kharcha/kharcha/internal/utils"
	log "github.com/sirupsen/logrus"
)

var ErrExpenseNotFound = errors.New("expense not found")

const dateLayout = "2006-01-02"

type Repository interface {
	Store(ctx context.Context, userId int, expense Expense) (int, error)
	Get(ctx context.Context, userId int, id int) (Expense, error)
	// GetByStatus lists records with the given status, newest date first for
	// confirmed records, soonest first for scheduled ones. limit of 0 means all.
	GetByStatus(ctx context.Context, userId int, status Status, limit int) ([]Expense, error)
	// GetDue lists scheduled records dated on or before the given day.
	GetDue(ctx context.Context, userId int, onOrBefore time.Time) ([]Expense, error)
	// GetDueForAllUsers lists scheduled records dated exactly on the given day
	// across every user, keyed by owner. Used by the reminder scan.
	GetDueForAllUsers(ctx context.Context, day time.Time) (map[int][]Expense, error)
	Update(ctx context.Context, userId int, expense Expense) (bool, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const expenseColumns = "id, amount, category_id, sub_category_id, date, source, description, status, created_at"

func (r *RepositoryImpl) Store(ctx context.Context, userId int, expense Expense) (int, error) {
	query := `INSERT INTO expenses (amount, category_id, sub_category_id, date, source, description, status, created_at, user_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

	var subCategoryParam interface{}
	if expense.SubCategoryID != 0 {
		subCategoryParam = expense.SubCategoryID
	}

	var id int
	err := r.db.QueryRowContext(ctx, query,
		int64(expense.Amount),
		expense.CategoryID,
		subCategoryParam,
		expense.Date.Format(dateLayout),
		expense.Source,
		expense.Description,
		expense.Status,
		expense.CreatedAt.UTC().Format(time.RFC3339),
		userId,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store expense: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id int) (Expense, error) {
	query := fmt.Sprintf("SELECT %s FROM expenses WHERE id = $1 AND user_id = $2", expenseColumns)
	row := r.db.QueryRowContext(ctx, query, id, userId)
	expense, err := scanExpense(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Expense{}, ErrExpenseNotFound
	}
	return expense, err
}

func (r *RepositoryImpl) GetByStatus(ctx context.Context, userId int, status Status, limit int) ([]Expense, error) {
	order := "date DESC, id DESC"
	if status == StatusScheduled {
		order = "date ASC, id ASC"
	}
	query := fmt.Sprintf("SELECT %s FROM expenses WHERE user_id = $1 AND status = $2 ORDER BY %s", expenseColumns, order)
	args := []any{userId, status}
	if limit > 0 {
		query += " LIMIT $3"
		args = append(args, limit)
	}
	return r.queryExpenses(ctx, query, args...)
}

func (r *RepositoryImpl) GetDue(ctx context.Context, userId int, onOrBefore time.Time) ([]Expense, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM expenses WHERE user_id = $1 AND status = $2 AND date <= $3 ORDER BY date ASC, id ASC",
		expenseColumns,
	)
	return r.queryExpenses(ctx, query, userId, StatusScheduled, onOrBefore.Format(dateLayout))
}

func (r *RepositoryImpl) GetDueForAllUsers(ctx context.Context, day time.Time) (map[int][]Expense, error) {
	query := fmt.Sprintf(
		"SELECT user_id, %s FROM expenses WHERE status = $1 AND date = $2 ORDER BY user_id, id",
		expenseColumns,
	)
	rows, err := r.db.QueryContext(ctx, query, StatusScheduled, day.Format(dateLayout))
	if err != nil {
		err := fmt.Errorf("could not query due expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	result := map[int][]Expense{}
	for rows.Next() {
		var userId int
		expense, err := scanExpense(func(dest ...any) error {
			return rows.Scan(append([]any{&userId}, dest...)...)
		})
		if err != nil {
			return nil, err
		}
		result[userId] = append(result[userId], expense)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return result, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, expense Expense) (bool, error) {
	query := `UPDATE expenses SET
				  amount = $1,
				  category_id = $2,
				  sub_category_id = $3,
				  date = $4,
				  source = $5,
				  description = $6,
				  status = $7
			  WHERE id = $8 AND user_id = $9`

	var subCategoryParam interface{}
	if expense.SubCategoryID != 0 {
		subCategoryParam = expense.SubCategoryID
	}

	result, err := r.db.ExecContext(ctx, query,
		int64(expense.Amount),
		expense.CategoryID,
		subCategoryParam,
		expense.Date.Format(dateLayout),
		expense.Source,
		expense.Description,
		expense.Status,
		expense.ID,
		userId,
	)
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

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	query := "DELETE FROM expenses WHERE id = $1 AND user_id = $2"
	result, err := r.db.ExecContext(ctx, query, id, userId)
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

func (r *RepositoryImpl) queryExpenses(ctx context.Context, query string, args ...any) ([]Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		expense, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return expenses, nil
}

func scanExpense(scan func(dest ...any) error) (Expense, error) {
	var expense Expense
	var amount int64
	var subCategoryId sql.NullInt64
	var dateString, createdAt string
	err := scan(
		&expense.ID,
		&amount,
		&expense.CategoryID,
		&subCategoryId,
		&dateString,
		&expense.Source,
		&expense.Description,
		&expense.Status,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Expense{}, err
	}
	if err != nil {
		err := fmt.Errorf("could not scan expense: %w", err)
		log.Error(err)
		return Expense{}, err
	}
	expense.Amount = utils.Money(amount)
	if subCategoryId.Valid {
		expense.SubCategoryID = int(subCategoryId.Int64)
	}
	date, err := time.Parse(dateLayout, dateString)
	if err != nil {
		err := fmt.Errorf("could not parse expense date: %w", err)
		log.Error(err)
		return Expense{}, err
	}
	expense.Date = date
	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		expense.CreatedAt = parsed
	}
	return expense, nil
}
