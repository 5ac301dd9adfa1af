package income

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kharcha/kharcha/internal/utils"
	log "github.com/sirupsen/logrus"
)

var ErrIncomeNotFound = errors.New("income not found")

const dateLayout = "2006-01-02"

type Repository interface {
	Store(ctx context.Context, userId int, income Income) (int, error)
	Get(ctx context.Context, userId int, id int) (Income, error)
	// GetAll lists the user's income records, newest date first.
	GetAll(ctx context.Context, userId int) ([]Income, error)
	Update(ctx context.Context, userId int, income Income) (bool, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const incomeColumns = "id, source, amount, date, description, created_at"

func (r *RepositoryImpl) Store(ctx context.Context, userId int, income Income) (int, error) {
	query := `INSERT INTO incomes (source, amount, date, description, created_at, user_id)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		income.Source,
		int64(income.Amount),
		income.Date.Format(dateLayout),
		income.Description,
		income.CreatedAt.UTC().Format(time.RFC3339),
		userId,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store income: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id int) (Income, error) {
	query := fmt.Sprintf("SELECT %s FROM incomes WHERE id = $1 AND user_id = $2", incomeColumns)
	row := r.db.QueryRowContext(ctx, query, id, userId)
	income, err := scanIncome(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Income{}, ErrIncomeNotFound
	}
	return income, err
}

func (r *RepositoryImpl) GetAll(ctx context.Context, userId int) ([]Income, error) {
	query := fmt.Sprintf("SELECT %s FROM incomes WHERE user_id = $1 ORDER BY date DESC, id DESC", incomeColumns)
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query incomes: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var incomes []Income
	for rows.Next() {
		income, err := scanIncome(rows.Scan)
		if err != nil {
			return nil, err
		}
		incomes = append(incomes, income)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return incomes, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, income Income) (bool, error) {
	query := `UPDATE incomes SET
				  source = $1,
				  amount = $2,
				  date = $3,
				  description = $4
			  WHERE id = $5 AND user_id = $6`

	result, err := r.db.ExecContext(ctx, query,
		income.Source,
		int64(income.Amount),
		income.Date.Format(dateLayout),
		income.Description,
		income.ID,
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
	query := "DELETE FROM incomes WHERE id = $1 AND user_id = $2"
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

func scanIncome(scan func(dest ...any) error) (Income, error) {
	var income Income
	var amount int64
	var dateString, createdAt string
	err := scan(
		&income.ID,
		&income.Source,
		&amount,
		&dateString,
		&income.Description,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Income{}, err
	}
	if err != nil {
		err := fmt.Errorf("could not scan income: %w", err)
		log.Error(err)
		return Income{}, err
	}
	income.Amount = utils.Money(amount)
	date, err := time.Parse(dateLayout, dateString)
	if err != nil {
		err := fmt.Errorf("could not parse income date: %w", err)
		log.Error(err)
		return Income{}, err
	}
	income.Date = date
	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		income.CreatedAt = parsed
	}
	return income, nil
}
