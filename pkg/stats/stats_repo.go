package stats

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kharcha/kharcha/internal/utils"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// StatsRepo runs the aggregate queries behind the analytics read models. Only
// confirmed expenses count; scheduled ones have not happened yet.
type StatsRepo interface {
	ExpenseTotalsByCategory(ctx context.Context, userId int, from, to time.Time) ([]CategoryTotal, error)
	ExpenseTotal(ctx context.Context, userId int, from, to time.Time) (utils.Money, error)
	ExpenseTotalsByDay(ctx context.Context, userId int, from, to time.Time) ([]DailyTotal, error)
	IncomeTotalsBySource(ctx context.Context, userId int, from, to time.Time) ([]SourceTotal, error)
}

type StatsRepoImpl struct {
	db *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepoImpl {
	return &StatsRepoImpl{db: db}
}

func (r *StatsRepoImpl) ExpenseTotalsByCategory(ctx context.Context, userId int, from, to time.Time) ([]CategoryTotal, error) {
	query := `SELECT c.name, SUM(e.amount)
				FROM expenses e
				JOIN categories c ON c.id = e.category_id
				WHERE e.user_id = $1 AND e.status = 'confirmed' AND e.date >= $2 AND e.date <= $3
				GROUP BY c.name
				ORDER BY SUM(e.amount) DESC`
	rows, err := r.db.QueryContext(ctx, query, userId, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		err := fmt.Errorf("could not query expense totals by category: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var total CategoryTotal
		var amount int64
		if err := rows.Scan(&total.CategoryName, &amount); err != nil {
			err := fmt.Errorf("could not scan category total: %w", err)
			log.Error(err)
			return nil, err
		}
		total.Total = utils.Money(amount)
		totals = append(totals, total)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return totals, nil
}

func (r *StatsRepoImpl) ExpenseTotal(ctx context.Context, userId int, from, to time.Time) (utils.Money, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses
				WHERE user_id = $1 AND status = 'confirmed' AND date >= $2 AND date <= $3`
	var amount int64
	err := r.db.QueryRowContext(ctx, query, userId, from.Format(dateLayout), to.Format(dateLayout)).Scan(&amount)
	if err != nil {
		err := fmt.Errorf("could not query expense total: %w", err)
		log.Error(err)
		return 0, err
	}
	return utils.Money(amount), nil
}

func (r *StatsRepoImpl) ExpenseTotalsByDay(ctx context.Context, userId int, from, to time.Time) ([]DailyTotal, error) {
	query := `SELECT date, SUM(amount) FROM expenses
				WHERE user_id = $1 AND status = 'confirmed' AND date >= $2 AND date <= $3
				GROUP BY date
				ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, userId, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		err := fmt.Errorf("could not query expense totals by day: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var totals []DailyTotal
	for rows.Next() {
		var dateString string
		var amount int64
		if err := rows.Scan(&dateString, &amount); err != nil {
			err := fmt.Errorf("could not scan daily total: %w", err)
			log.Error(err)
			return nil, err
		}
		date, err := time.Parse(dateLayout, dateString)
		if err != nil {
			err := fmt.Errorf("could not parse expense date: %w", err)
			log.Error(err)
			return nil, err
		}
		totals = append(totals, DailyTotal{Date: date, Total: utils.Money(amount)})
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return totals, nil
}

func (r *StatsRepoImpl) IncomeTotalsBySource(ctx context.Context, userId int, from, to time.Time) ([]SourceTotal, error) {
	query := `SELECT source, SUM(amount) FROM incomes
				WHERE user_id = $1 AND date >= $2 AND date <= $3
				GROUP BY source
				ORDER BY SUM(amount) DESC`
	rows, err := r.db.QueryContext(ctx, query, userId, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		err := fmt.Errorf("could not query income totals by source: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var totals []SourceTotal
	for rows.Next() {
		var total SourceTotal
		var amount int64
		if err := rows.Scan(&total.Source, &amount); err != nil {
			err := fmt.Errorf("could not scan source total: %w", err)
			log.Error(err)
			return nil, err
		}
		total.Total = utils.Money(amount)
		totals = append(totals, total)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return totals, nil
}
