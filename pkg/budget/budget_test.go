package budget

import (
	"context"
	"testing"
	"time"

	"github.com/kharcha/kharcha/internal/event_bus"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/category"
	"github.com/kharcha/kharcha/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCategories struct{}

func (stubCategories) Get(_ context.Context, id int) (category.Category, error) {
	if id == 1 {
		return category.Category{ID: 1, Name: "Food", Owner: category.OwnerSystem}, nil
	}
	return category.Category{}, category.ErrCategoryNotFound
}

func testContext() context.Context {
	return user.WithUser(context.Background(), user.User{Id: 123, Username: "test_user"})
}

func newTestService() *BudgetServiceImpl {
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	return NewBudgetService(NewStubBudgetRepo(), stubCategories{}, event_bus.NewEventBus(), clock)
}

func TestBudgetService_Set(t *testing.T) {
	t.Run("should store an entry and make it current", func(t *testing.T) {
		// given
		service := newTestService()

		// when
		entry, err := service.Set(testContext(), EntryTypeMonthly, 2000000)

		// then
		require.NoError(t, err)
		assert.NotZero(t, entry.ID)
		current, err := service.Current(testContext())
		require.NoError(t, err)
		assert.Equal(t, entry, current[EntryTypeMonthly])
	})

	t.Run("should keep earlier entries in history but not current", func(t *testing.T) {
		// given
		service := newTestService()
		_, err := service.Set(testContext(), EntryTypeMonthly, 2000000)
		require.NoError(t, err)

		// when
		second, err := service.Set(testContext(), EntryTypeMonthly, 2500000)
		require.NoError(t, err)

		// then
		current, err := service.Current(testContext())
		require.NoError(t, err)
		assert.Equal(t, second.ID, current[EntryTypeMonthly].ID)
		history, err := service.History(testContext())
		require.NoError(t, err)
		assert.Len(t, history, 2)
	})

	t.Run("should reject an unknown entry type", func(t *testing.T) {
		service := newTestService()

		_, err := service.Set(testContext(), "daily", 100000)

		require.ErrorIs(t, err, ErrInvalidEntryType)
	})

	t.Run("should reject a non-positive amount", func(t *testing.T) {
		service := newTestService()

		_, err := service.Set(testContext(), EntryTypeWeekly, 0)

		require.ErrorIs(t, err, utils.ErrInvalidAmount)
	})
}

func TestBudgetService_Current(t *testing.T) {
	t.Run("should omit types without any entry", func(t *testing.T) {
		// given
		service := newTestService()
		_, err := service.Set(testContext(), EntryTypeWeekly, 500000)
		require.NoError(t, err)

		// when
		current, err := service.Current(testContext())

		// then
		require.NoError(t, err)
		assert.Contains(t, current, EntryTypeWeekly)
		assert.NotContains(t, current, EntryTypeMonthly)
		assert.NotContains(t, current, EntryTypeYearly)
	})
}

func TestBudgetService_UpdateAndDelete(t *testing.T) {
	t.Run("should update the amount of a history entry", func(t *testing.T) {
		// given
		service := newTestService()
		entry, err := service.Set(testContext(), EntryTypeYearly, 10000000)
		require.NoError(t, err)

		// when
		updated, err := service.Update(testContext(), entry.ID, 12000000)

		// then
		require.NoError(t, err)
		assert.Equal(t, utils.Money(12000000), updated.Amount)
	})

	t.Run("should delete an entry and fall back to the previous one", func(t *testing.T) {
		// given
		service := newTestService()
		first, err := service.Set(testContext(), EntryTypeMonthly, 2000000)
		require.NoError(t, err)
		second, err := service.Set(testContext(), EntryTypeMonthly, 2500000)
		require.NoError(t, err)

		// when
		err = service.Delete(testContext(), second.ID)

		// then
		require.NoError(t, err)
		current, err := service.Current(testContext())
		require.NoError(t, err)
		assert.Equal(t, first.ID, current[EntryTypeMonthly].ID)
	})

	t.Run("should return not found for a foreign entry", func(t *testing.T) {
		service := newTestService()
		entry, err := service.Set(testContext(), EntryTypeMonthly, 2000000)
		require.NoError(t, err)

		otherUser := user.WithUser(context.Background(), user.User{Id: 456})
		err = service.Delete(otherUser, entry.ID)

		require.ErrorIs(t, err, ErrEntryNotFound)
	})
}

func TestBudgetService_CategoryBudgets(t *testing.T) {
	t.Run("should upsert the limit for a category", func(t *testing.T) {
		// given
		service := newTestService()
		require.NoError(t, service.SetCategoryBudget(testContext(), CategoryBudget{CategoryID: 1, Amount: 500000}))

		// when
		require.NoError(t, service.SetCategoryBudget(testContext(), CategoryBudget{CategoryID: 1, Amount: 750000}))

		// then
		budgets, err := service.GetCategoryBudgets(testContext())
		require.NoError(t, err)
		require.Len(t, budgets, 1)
		assert.Equal(t, utils.Money(750000), budgets[0].Amount)
	})

	t.Run("should reject an unknown category", func(t *testing.T) {
		service := newTestService()

		err := service.SetCategoryBudget(testContext(), CategoryBudget{CategoryID: 99, Amount: 500000})

		require.ErrorIs(t, err, category.ErrCategoryNotFound)
	})
}
