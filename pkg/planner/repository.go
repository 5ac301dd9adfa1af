package planner

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kharcha/kharcha/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// Upsert replaces the plan for (kind, year, month) if one exists.
	Upsert(ctx context.Context, userId int, plan MonthlyPlan) error
	// GetYear lists the stored plans of a kind for a year. Months without a
	// plan are absent; the service fills the gaps.
	GetYear(ctx context.Context, userId int, kind PlanKind, year int) ([]MonthlyPlan, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Upsert(ctx context.Context, userId int, plan MonthlyPlan) error {
	query := `INSERT INTO monthly_plans (kind, year, month, week1, week2, week3, week4, total, user_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				ON CONFLICT (user_id, kind, year, month) DO UPDATE SET
					week1 = excluded.week1,
					week2 = excluded.week2,
					week3 = excluded.week3,
					week4 = excluded.week4,
					total = excluded.total`

	_, err := r.db.ExecContext(ctx, query,
		plan.Kind,
		plan.Year,
		int(plan.Month),
		int64(plan.Week1),
		int64(plan.Week2),
		int64(plan.Week3),
		int64(plan.Week4),
		int64(plan.Total),
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not store monthly plan: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) GetYear(ctx context.Context, userId int, kind PlanKind, year int) ([]MonthlyPlan, error) {
	query := `SELECT kind, year, month, week1, week2, week3, week4, total FROM monthly_plans
				WHERE user_id = $1 AND kind = $2 AND year = $3 ORDER BY month`
	rows, err := r.db.QueryContext(ctx, query, userId, kind, year)
	if err != nil {
		err := fmt.Errorf("could not query monthly plans: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var plans []MonthlyPlan
	for rows.Next() {
		var plan MonthlyPlan
		var month int
		var week1, week2, week3, week4, total int64
		err := rows.Scan(&plan.Kind, &plan.Year, &month, &week1, &week2, &week3, &week4, &total)
		if err != nil {
			err := fmt.Errorf("could not scan monthly plan: %w", err)
			log.Error(err)
			return nil, err
		}
		plan.Month = time.Month(month)
		plan.Week1 = utils.Money(week1)
		plan.Week2 = utils.Money(week2)
		plan.Week3 = utils.Money(week3)
		plan.Week4 = utils.Money(week4)
		plan.Total = utils.Money(total)
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return plans, nil
}
