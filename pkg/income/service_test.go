package income

import (
	"context"
	"testing"
	"time"

	"github.com/kharcha/kharcha/internal/event_bus"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return user.WithUser(context.Background(), user.User{Id: 123, Username: "test_user"})
}

func newTestService() (*ServiceImpl, *event_bus.EventBus) {
	bus := event_bus.NewEventBus()
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	return NewService(NewStubRepository(), bus, clock), bus
}

func TestService_Create(t *testing.T) {
	t.Run("should store an income and publish the event", func(t *testing.T) {
		// given
		service, bus := newTestService()
		var received []event_bus.IncomeChanged
		event_bus.SubscribeTyped[event_bus.IncomeChanged](bus, event_bus.IncomeAddedEvent,
			func(e event_bus.EventT[event_bus.IncomeChanged]) error {
				received = append(received, e.Data)
				return nil
			})

		// when
		created, err := service.Create(testContext(), Income{
			Source: "Salary",
			Amount: 5000000,
			Date:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		})

		// then
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		require.Len(t, received, 1)
		assert.Equal(t, "Salary", received[0].Source)
		assert.Equal(t, utils.Money(5000000), received[0].Amount)
	})

	t.Run("should default a missing date to today", func(t *testing.T) {
		service, _ := newTestService()

		created, err := service.Create(testContext(), Income{Source: "Freelance", Amount: 120000})

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), created.Date)
	})

	t.Run("should reject an empty source", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.Create(testContext(), Income{Source: "   ", Amount: 120000})

		require.ErrorIs(t, err, ErrEmptySource)
	})

	t.Run("should reject a non-positive amount", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.Create(testContext(), Income{Source: "Salary", Amount: 0})

		require.ErrorIs(t, err, utils.ErrInvalidAmount)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("should update fields and keep created time", func(t *testing.T) {
		// given
		service, _ := newTestService()
		created, err := service.Create(testContext(), Income{Source: "Salary", Amount: 5000000})
		require.NoError(t, err)

		// when
		created.Amount = 5500000
		created.Source = "Salary + bonus"
		updated, err := service.Update(testContext(), created)

		// then
		require.NoError(t, err)
		assert.Equal(t, utils.Money(5500000), updated.Amount)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	})

	t.Run("should return not found for a foreign record", func(t *testing.T) {
		service, _ := newTestService()
		created, err := service.Create(testContext(), Income{Source: "Salary", Amount: 5000000})
		require.NoError(t, err)

		otherUser := user.WithUser(context.Background(), user.User{Id: 456})
		_, err = service.Update(otherUser, created)

		require.ErrorIs(t, err, ErrIncomeNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("should delete and publish the event", func(t *testing.T) {
		// given
		service, bus := newTestService()
		var received []event_bus.IncomeChanged
		event_bus.SubscribeTyped[event_bus.IncomeChanged](bus, event_bus.IncomeDeletedEvent,
			func(e event_bus.EventT[event_bus.IncomeChanged]) error {
				received = append(received, e.Data)
				return nil
			})
		created, err := service.Create(testContext(), Income{Source: "Salary", Amount: 5000000})
		require.NoError(t, err)

		// when
		err = service.Delete(testContext(), created.ID)

		// then
		require.NoError(t, err)
		require.Len(t, received, 1)
		all, err := service.GetAll(testContext())
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
