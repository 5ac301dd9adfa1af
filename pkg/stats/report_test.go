package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentUsed(t *testing.T) {
	t.Run("should clamp utilization at 100", func(t *testing.T) {
		percent, ok := PercentUsed(120000, 100000)

		assert.True(t, ok)
		assert.Equal(t, 100.0, percent)
		assert.Equal(t, "red", BarColor(percent))
	})

	t.Run("should compute partial utilization", func(t *testing.T) {
		percent, ok := PercentUsed(75000, 100000)

		assert.True(t, ok)
		assert.InDelta(t, 75.0, percent, 0.001)
		assert.Equal(t, "yellow", BarColor(percent))
	})

	t.Run("should be undefined without a budget", func(t *testing.T) {
		_, ok := PercentUsed(75000, 0)

		assert.False(t, ok)
	})
}

func TestBarColor(t *testing.T) {
	assert.Equal(t, "blue", BarColor(70))
	assert.Equal(t, "yellow", BarColor(70.1))
	assert.Equal(t, "yellow", BarColor(90))
	assert.Equal(t, "red", BarColor(90.1))
}

func TestHealth(t *testing.T) {
	t.Run("should be excellent when both periods are satisfied", func(t *testing.T) {
		health := Health(
			PeriodStatus{Spent: 50000, Budget: 60000},
			PeriodStatus{Spent: 400000, Budget: 500000},
		)
		assert.Equal(t, HealthExcellent, health)
	})

	t.Run("should treat a missing budget as satisfied", func(t *testing.T) {
		health := Health(
			PeriodStatus{Spent: 50000, Budget: 0},
			PeriodStatus{Spent: 400000, Budget: 0},
		)
		assert.Equal(t, HealthExcellent, health)
	})

	t.Run("should be critical when both periods are over", func(t *testing.T) {
		health := Health(
			PeriodStatus{Spent: 70000, Budget: 60000},
			PeriodStatus{Spent: 600000, Budget: 500000},
		)
		assert.Equal(t, HealthCritical, health)
	})

	t.Run("should need attention when one period is over", func(t *testing.T) {
		health := Health(
			PeriodStatus{Spent: 50000, Budget: 60000},
			PeriodStatus{Spent: 500000, Budget: 400000},
		)
		assert.Equal(t, HealthNeedsAttention, health)
	})
}

func TestNarrative(t *testing.T) {
	t.Run("should name the overage when over budget", func(t *testing.T) {
		sentence := Narrative(PeriodMonthly, PeriodStatus{Spent: 500000, Budget: 400000})

		assert.Contains(t, sentence, "over budget")
		assert.Contains(t, sentence, "NPR 5000.00")
		assert.Contains(t, sentence, "exceeding it by NPR 1000.00")
		assert.Contains(t, sentence, "125.0%")
	})

	t.Run("should name the remainder when on track", func(t *testing.T) {
		sentence := Narrative(PeriodWeekly, PeriodStatus{Spent: 50000, Budget: 60000})

		assert.Contains(t, sentence, "on track")
		assert.Contains(t, sentence, "leaving you with NPR 100.00")
	})

	t.Run("should state when no limit is set", func(t *testing.T) {
		sentence := Narrative(PeriodYearly, PeriodStatus{Spent: 50000, Budget: 0})

		assert.Contains(t, sentence, "No budget limit has been set")
	})
}
