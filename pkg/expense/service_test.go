package expense

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

type stubCategories struct {
	categories map[int]category.Category
}

func (s *stubCategories) Get(_ context.Context, id int) (category.Category, error) {
	cat, ok := s.categories[id]
	if !ok {
		return category.Category{}, category.ErrCategoryNotFound
	}
	return cat, nil
}

func testContext() context.Context {
	return user.WithUser(context.Background(), user.User{Id: 123, Username: "test_user"})
}

func newTestService(now time.Time) (*ServiceImpl, *StubRepository, *event_bus.EventBus) {
	repo := NewStubRepository()
	categories := &stubCategories{categories: map[int]category.Category{
		1: {ID: 1, Name: "Food", Owner: category.OwnerSystem},
		2: {ID: 2, Name: "Transport", Owner: category.OwnerSystem},
	}}
	bus := event_bus.NewEventBus()
	service := NewService(repo, categories, bus, &utils.MockClock{FixedNow: now})
	return service, repo, bus
}

func day(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestService_Create(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	t.Run("should confirm immediately when dated today", func(t *testing.T) {
		// given
		service, _, _ := newTestService(now)

		// when
		created, err := service.Create(testContext(), Expense{
			Amount:     45000,
			CategoryID: 1,
			Date:       day("2025-03-10"),
			Source:     SourceCash,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, created.Status)
		assert.NotZero(t, created.ID)
	})

	t.Run("should confirm immediately when dated in the past", func(t *testing.T) {
		service, _, _ := newTestService(now)

		created, err := service.Create(testContext(), Expense{
			Amount:     45000,
			CategoryID: 1,
			Date:       day("2025-03-01"),
			Source:     SourceOnline,
		})

		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, created.Status)
	})

	t.Run("should schedule when dated strictly after today", func(t *testing.T) {
		service, _, _ := newTestService(now)

		created, err := service.Create(testContext(), Expense{
			Amount:     150000,
			CategoryID: 2,
			Date:       day("2025-03-11"),
			Source:     SourceCheque,
		})

		require.NoError(t, err)
		assert.Equal(t, StatusScheduled, created.Status)
	})

	t.Run("should default a missing date to today and confirm", func(t *testing.T) {
		service, _, _ := newTestService(now)

		created, err := service.Create(testContext(), Expense{
			Amount:     45000,
			CategoryID: 1,
			Source:     SourceCash,
		})

		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, created.Status)
		assert.Equal(t, day("2025-03-10"), created.Date)
	})

	t.Run("should reject a non-positive amount", func(t *testing.T) {
		service, _, _ := newTestService(now)

		_, err := service.Create(testContext(), Expense{
			Amount:     0,
			CategoryID: 1,
			Date:       day("2025-03-10"),
			Source:     SourceCash,
		})

		require.ErrorIs(t, err, utils.ErrInvalidAmount)
	})

	t.Run("should reject an unknown payment source", func(t *testing.T) {
		service, _, _ := newTestService(now)

		_, err := service.Create(testContext(), Expense{
			Amount:     45000,
			CategoryID: 1,
			Date:       day("2025-03-10"),
			Source:     "barter",
		})

		require.ErrorIs(t, err, ErrInvalidSource)
	})

	t.Run("should reject an unknown category", func(t *testing.T) {
		service, _, _ := newTestService(now)

		_, err := service.Create(testContext(), Expense{
			Amount:     45000,
			CategoryID: 99,
			Date:       day("2025-03-10"),
			Source:     SourceCash,
		})

		require.ErrorIs(t, err, category.ErrCategoryNotFound)
	})

	t.Run("should reject an over-length description when scheduling", func(t *testing.T) {
		service, _, _ := newTestService(now)
		long := make([]byte, MaxScheduledDescriptionLen+1)
		for i := range long {
			long[i] = 'x'
		}

		_, err := service.Create(testContext(), Expense{
			Amount:      45000,
			CategoryID:  1,
			Date:        day("2025-03-11"),
			Source:      SourceCash,
			Description: string(long),
		})

		require.ErrorIs(t, err, ErrDescriptionTooLong)
	})

	t.Run("should publish expense created event with the category name", func(t *testing.T) {
		// given
		service, _, bus := newTestService(now)
		var received []event_bus.ExpenseChanged
		event_bus.SubscribeTyped[event_bus.ExpenseChanged](bus, event_bus.ExpenseCreatedEvent,
			func(e event_bus.EventT[event_bus.ExpenseChanged]) error {
				received = append(received, e.Data)
				return nil
			})

		// when
		_, err := service.Create(testContext(), Expense{
			Amount:     45000,
			CategoryID: 1,
			Date:       day("2025-03-10"),
			Source:     SourceCash,
		})

		// then
		require.NoError(t, err)
		require.Len(t, received, 1)
		assert.Equal(t, "Food", received[0].CategoryName)
		assert.Equal(t, utils.Money(45000), received[0].Amount)
		assert.False(t, received[0].Scheduled)
	})
}

func TestService_Update(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	t.Run("should keep the status when the new date crosses today", func(t *testing.T) {
		// given
		service, _, _ := newTestService(now)
		created, err := service.Create(testContext(), Expense{
			Amount:     45000,
			CategoryID: 1,
			Date:       day("2025-03-20"),
			Source:     SourceCash,
		})
		require.NoError(t, err)
		require.Equal(t, StatusScheduled, created.Status)

		// when
		created.Date = day("2025-03-01")
		updated, err := service.Update(testContext(), created)

		// then
		require.NoError(t, err)
		assert.Equal(t, StatusScheduled, updated.Status)
	})

	t.Run("should keep the stored date when the update omits it", func(t *testing.T) {
		// given
		service, repo, _ := newTestService(now)
		created, err := service.Create(testContext(), Expense{
			Amount:     45000,
			CategoryID: 1,
			Date:       day("2025-03-05"),
			Source:     SourceCash,
		})
		require.NoError(t, err)

		// when
		created.Amount = 50000
		created.Date = time.Time{}
		updated, err := service.Update(testContext(), created)

		// then
		require.NoError(t, err)
		assert.Equal(t, day("2025-03-05"), updated.Date)
		stored, err := repo.Get(testContext(), 123, created.ID)
		require.NoError(t, err)
		assert.Equal(t, day("2025-03-05"), stored.Date)
		assert.Equal(t, utils.Money(50000), stored.Amount)
	})

	t.Run("should return not found for a foreign record", func(t *testing.T) {
		service, _, _ := newTestService(now)
		created, err := service.Create(testContext(), Expense{
			Amount:     45000,
			CategoryID: 1,
			Date:       day("2025-03-10"),
			Source:     SourceCash,
		})
		require.NoError(t, err)

		otherUser := user.WithUser(context.Background(), user.User{Id: 456})
		_, err = service.Update(otherUser, created)

		require.ErrorIs(t, err, ErrExpenseNotFound)
	})
}

func TestService_Confirm(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	t.Run("should confirm and reset the date to today", func(t *testing.T) {
		// given
		service, _, _ := newTestService(now)
		created, err := service.Create(testContext(), Expense{
			Amount:     45000,
			CategoryID: 1,
			Date:       day("2025-03-20"),
			Source:     SourceCash,
		})
		require.NoError(t, err)

		// when
		confirmed, err := service.Confirm(testContext(), created.ID, 0)

		// then
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, confirmed.Status)
		assert.Equal(t, day("2025-03-10"), confirmed.Date)
		assert.Equal(t, utils.Money(45000), confirmed.Amount)
	})

	t.Run("should revise the amount when one is given", func(t *testing.T) {
		service, _, _ := newTestService(now)
		created, err := service.Create(testContext(), Expense{
			Amount:     45000,
			CategoryID: 1,
			Date:       day("2025-03-20"),
			Source:     SourceCash,
		})
		require.NoError(t, err)

		confirmed, err := service.Confirm(testContext(), created.ID, 52500)

		require.NoError(t, err)
		assert.Equal(t, utils.Money(52500), confirmed.Amount)
	})

	t.Run("should remove the record from the pending list", func(t *testing.T) {
		// given
		service, _, _ := newTestService(now)
		created, err := service.Create(testContext(), Expense{
			Amount:     45000,
			CategoryID: 1,
			Date:       day("2025-03-20"),
			Source:     SourceCash,
		})
		require.NoError(t, err)

		// when
		_, err = service.Confirm(testContext(), created.ID, 0)
		require.NoError(t, err)

		// then
		pending, err := service.Pending(testContext())
		require.NoError(t, err)
		assert.Empty(t, pending)
		all, err := service.All(testContext())
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("should refuse to confirm an already confirmed record", func(t *testing.T) {
		service, _, _ := newTestService(now)
		created, err := service.Create(testContext(), Expense{
			Amount:     45000,
			CategoryID: 1,
			Date:       day("2025-03-10"),
			Source:     SourceCash,
		})
		require.NoError(t, err)
		require.Equal(t, StatusConfirmed, created.Status)

		_, err = service.Confirm(testContext(), created.ID, 0)

		require.ErrorIs(t, err, ErrNotScheduled)
	})
}

func TestService_Lists(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	t.Run("should cap the recent list and keep it newest first", func(t *testing.T) {
		// given
		service, _, _ := newTestService(now)
		for i := 1; i <= 7; i++ {
			_, err := service.Create(testContext(), Expense{
				Amount:     utils.Money(i * 1000),
				CategoryID: 1,
				Date:       day("2025-03-01").AddDate(0, 0, i),
				Source:     SourceCash,
			})
			require.NoError(t, err)
		}

		// when
		recent, err := service.Recent(testContext())

		// then
		require.NoError(t, err)
		require.Len(t, recent, 5)
		assert.Equal(t, day("2025-03-08"), recent[0].Date)
		assert.Equal(t, day("2025-03-04"), recent[4].Date)
	})

	t.Run("should list due expenses dated on or before today", func(t *testing.T) {
		service, repo, _ := newTestService(now)
		ctx := testContext()
		// Seed a scheduled record directly so its date can be in the past.
		_, err := repo.Store(ctx, 123, Expense{
			Amount: 1000, CategoryID: 1, Date: day("2025-03-09"),
			Source: SourceCash, Status: StatusScheduled,
		})
		require.NoError(t, err)
		_, err = repo.Store(ctx, 123, Expense{
			Amount: 2000, CategoryID: 1, Date: day("2025-03-15"),
			Source: SourceCash, Status: StatusScheduled,
		})
		require.NoError(t, err)

		due, err := service.Due(ctx)

		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, day("2025-03-09"), due[0].Date)
	})
}

func TestService_Delete(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	t.Run("should delete and publish the event", func(t *testing.T) {
		// given
		service, _, bus := newTestService(now)
		var received []event_bus.ExpenseChanged
		event_bus.SubscribeTyped[event_bus.ExpenseChanged](bus, event_bus.ExpenseDeletedEvent,
			func(e event_bus.EventT[event_bus.ExpenseChanged]) error {
				received = append(received, e.Data)
				return nil
			})
		created, err := service.Create(testContext(), Expense{
			Amount:     45000,
			CategoryID: 1,
			Date:       day("2025-03-10"),
			Source:     SourceCash,
		})
		require.NoError(t, err)

		// when
		err = service.Delete(testContext(), created.ID)

		// then
		require.NoError(t, err)
		require.Len(t, received, 1)
		all, err := service.All(testContext())
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("should return not found for a missing id", func(t *testing.T) {
		service, _, _ := newTestService(now)

		err := service.Delete(testContext(), 999)

		require.ErrorIs(t, err, ErrExpenseNotFound)
	})
}

func TestDueReminder_Scan(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	t.Run("should publish a due event per expense scoped to its owner", func(t *testing.T) {
		// given
		repo := NewStubRepository()
		ctx := context.Background()
		_, err := repo.Store(ctx, 123, Expense{
			Amount: 1000, CategoryID: 1, Date: day("2025-03-10"),
			Source: SourceCash, Status: StatusScheduled,
		})
		require.NoError(t, err)
		_, err = repo.Store(ctx, 456, Expense{
			Amount: 2000, CategoryID: 1, Date: day("2025-03-10"),
			Source: SourceCash, Status: StatusScheduled,
		})
		require.NoError(t, err)
		_, err = repo.Store(ctx, 123, Expense{
			Amount: 3000, CategoryID: 1, Date: day("2025-03-20"),
			Source: SourceCash, Status: StatusScheduled,
		})
		require.NoError(t, err)

		bus := event_bus.NewEventBus()
		var owners []int
		event_bus.SubscribeTyped[event_bus.ExpenseChanged](bus, event_bus.ExpenseDueEvent,
			func(e event_bus.EventT[event_bus.ExpenseChanged]) error {
				userId, err := user.CurrentId(e.Context())
				require.NoError(t, err)
				owners = append(owners, userId)
				return nil
			})
		reminder := NewDueReminder(repo, bus, &utils.MockClock{FixedNow: now})

		// when
		reminder.Scan()

		// then
		assert.ElementsMatch(t, []int{123, 456}, owners)
	})
}
