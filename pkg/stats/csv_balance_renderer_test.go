package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsvBalanceRenderer(t *testing.T) {
	t.Run("should render the sheet with income and expense sections", func(t *testing.T) {
		// given
		sheet := BalanceSheet{
			Period:    PeriodMonthly,
			StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
			IncomeRows: []SourceTotal{
				{Source: "Salary", Total: 5000000},
			},
			ExpenseRows: []CategoryTotal{
				{CategoryName: "Food", Total: 45000},
				{CategoryName: "Transport", Total: 20000},
			},
			TotalIncome:  5000000,
			TotalExpense: 65000,
			NetBalance:   4935000,
		}
		renderer := NewCsvBalanceRenderer()

		// when
		output, err := renderer.RenderBalanceSheet(sheet)

		// then
		require.NoError(t, err)
		expected := ",Credit (Income),Debit (Expense)\n" +
			"Income Sources,,\n" +
			"Salary,50000.00,\n" +
			"Expense Categories,,\n" +
			"Food,,450.00\n" +
			"Transport,,200.00\n" +
			"Sub-Totals,50000.00,650.00\n" +
			"Net Balance,49350.00,\n"
		assert.Equal(t, expected, output)
	})

	t.Run("should render an empty sheet without row sections", func(t *testing.T) {
		renderer := NewCsvBalanceRenderer()

		output, err := renderer.RenderBalanceSheet(BalanceSheet{Period: PeriodWeekly})

		require.NoError(t, err)
		assert.Contains(t, output, "Sub-Totals,0.00,0.00\n")
	})
}
