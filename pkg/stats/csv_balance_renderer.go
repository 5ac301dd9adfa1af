package stats

import (
	"bytes"
	"encoding/csv"

	log "github.com/sirupsen/logrus"
)

// BalanceRenderer turns a balance sheet into a downloadable representation.
type BalanceRenderer interface {
	RenderBalanceSheet(sheet BalanceSheet) (string, error)
}

type CsvBalanceRendererImpl struct {
}

func NewCsvBalanceRenderer() *CsvBalanceRendererImpl {
	return &CsvBalanceRendererImpl{}
}

func (t *CsvBalanceRendererImpl) RenderBalanceSheet(sheet BalanceSheet) (string, error) {
	data := make([][]string, 0, len(sheet.IncomeRows)+len(sheet.ExpenseRows)+5)
	data = append(data, []string{"", "Credit (Income)", "Debit (Expense)"})

	data = append(data, []string{"Income Sources", "", ""})
	for _, row := range sheet.IncomeRows {
		data = append(data, []string{row.Source, row.Total.String(), ""})
	}

	data = append(data, []string{"Expense Categories", "", ""})
	for _, row := range sheet.ExpenseRows {
		data = append(data, []string{row.CategoryName, "", row.Total.String()})
	}

	data = append(data,
		[]string{"Sub-Totals", sheet.TotalIncome.String(), sheet.TotalExpense.String()},
		[]string{"Net Balance", sheet.NetBalance.String(), ""},
	)

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error flushing csv: %v", err)
		return "", err
	}
	return b.String(), nil
}
