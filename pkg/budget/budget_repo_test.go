package budget

import (
	"context"
	"testing"
	"time"

	"github.com/kharcha/kharcha/internal/test_utils"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedEntry(entryType EntryType, amount int64, createdAt string) Entry {
	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		panic(err)
	}
	return Entry{Type: entryType, Amount: utils.Money(amount), CreatedAt: created}
}

func TestBudgetRepo_EntryHistory(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	test_utils.InsertTestUser(t, db)
	repo := NewBudgetRepo(db)
	ctx := context.Background()

	t.Run("should round-trip a stored entry", func(t *testing.T) {
		// given
		entry := storedEntry(EntryTypeMonthly, 500000, "2025-03-01T10:00:00Z")

		// when
		id, err := repo.Store(ctx, test_utils.TestUser.Id, entry)

		// then
		require.NoError(t, err)
		found, err := repo.Get(ctx, test_utils.TestUser.Id, id)
		require.NoError(t, err)
		assert.Equal(t, EntryTypeMonthly, found.Type)
		assert.Equal(t, entry.Amount, found.Amount)
		assert.Equal(t, entry.CreatedAt, found.CreatedAt)
	})

	t.Run("should return the newest entry of a type", func(t *testing.T) {
		// given
		_, err := repo.Store(ctx, test_utils.TestUser.Id, storedEntry(EntryTypeWeekly, 100000, "2025-03-01T10:00:00Z"))
		require.NoError(t, err)
		latestId, err := repo.Store(ctx, test_utils.TestUser.Id, storedEntry(EntryTypeWeekly, 120000, "2025-03-08T10:00:00Z"))
		require.NoError(t, err)

		// when
		latest, err := repo.GetLatestByType(ctx, test_utils.TestUser.Id, EntryTypeWeekly)

		// then
		require.NoError(t, err)
		assert.Equal(t, latestId, latest.ID)
		assert.Equal(t, utils.Money(120000), latest.Amount)
	})

	t.Run("should not expose another user's entry", func(t *testing.T) {
		id, err := repo.Store(ctx, test_utils.TestUser.Id, storedEntry(EntryTypeYearly, 6000000, "2025-01-01T10:00:00Z"))
		require.NoError(t, err)

		_, err = repo.Get(ctx, 456, id)

		require.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("should report a foreign update as not applied", func(t *testing.T) {
		id, err := repo.Store(ctx, test_utils.TestUser.Id, storedEntry(EntryTypeMonthly, 500000, "2025-03-01T10:00:00Z"))
		require.NoError(t, err)

		updated, err := repo.UpdateAmount(ctx, 456, id, utils.Money(1))

		require.NoError(t, err)
		assert.False(t, updated)
	})

	t.Run("should delete an entry", func(t *testing.T) {
		id, err := repo.Store(ctx, test_utils.TestUser.Id, storedEntry(EntryTypeMonthly, 500000, "2025-03-01T10:00:00Z"))
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, test_utils.TestUser.Id, id)

		require.NoError(t, err)
		assert.True(t, deleted)
		_, err = repo.Get(ctx, test_utils.TestUser.Id, id)
		require.ErrorIs(t, err, ErrEntryNotFound)
	})
}

func TestBudgetRepo_CategoryBudgets(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	test_utils.InsertTestUser(t, db)
	repo := NewBudgetRepo(db)
	ctx := context.Background()

	t.Run("should replace the limit on a second set", func(t *testing.T) {
		// given the seeded system categories
		require.NoError(t, repo.SetCategoryBudget(ctx, test_utils.TestUser.Id, CategoryBudget{CategoryID: 1, Amount: 200000}))

		// when
		err := repo.SetCategoryBudget(ctx, test_utils.TestUser.Id, CategoryBudget{CategoryID: 1, Amount: 250000})

		// then
		require.NoError(t, err)
		budgets, err := repo.GetCategoryBudgets(ctx, test_utils.TestUser.Id)
		require.NoError(t, err)
		require.Len(t, budgets, 1)
		assert.Equal(t, utils.Money(250000), budgets[0].Amount)
	})

	t.Run("should keep limits per user", func(t *testing.T) {
		budgets, err := repo.GetCategoryBudgets(ctx, 456)

		require.NoError(t, err)
		assert.Empty(t, budgets)
	})
}
