package planner

import (
	"context"
	"testing"
	"time"

	"github.com/kharcha/kharcha/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Upsert(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	test_utils.InsertTestUser(t, db)
	repo := NewRepository(db)
	ctx := context.Background()
	userId := test_utils.TestUser.Id

	t.Run("should insert and replace on conflict", func(t *testing.T) {
		// given
		plan := MonthlyPlan{
			Kind: PlanKindBudget, Year: 2025, Month: time.March,
			Week1: 100000, Week2: 150000, Week4: 250000, Total: 500000,
		}
		require.NoError(t, repo.Upsert(ctx, userId, plan))

		// when
		plan.Week1 = 200000
		plan.Total = 600000
		require.NoError(t, repo.Upsert(ctx, userId, plan))

		// then
		plans, err := repo.GetYear(ctx, userId, PlanKindBudget, 2025)
		require.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, plan, plans[0])
	})

	t.Run("should scope plans to kind and year", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, userId, MonthlyPlan{
			Kind: PlanKindIncome, Year: 2025, Month: time.March, Total: 5000000,
		}))
		require.NoError(t, repo.Upsert(ctx, userId, MonthlyPlan{
			Kind: PlanKindBudget, Year: 2024, Month: time.March, Total: 1000000,
		}))

		plans, err := repo.GetYear(ctx, userId, PlanKindBudget, 2025)

		require.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, PlanKindBudget, plans[0].Kind)
		assert.Equal(t, 2025, plans[0].Year)
	})
}
