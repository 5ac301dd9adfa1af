package budget

import (
	"time"

	"github.com/kharcha/kharcha/internal/utils"
)

type EntryType string

const (
	EntryTypeWeekly  EntryType = "weekly"
	EntryTypeMonthly EntryType = "monthly"
	EntryTypeYearly  EntryType = "yearly"
)

// Entry is one budget target for a period type. History is retained: the most
// recent entry per type is the active one the dashboard compares against.
type Entry struct {
	ID        int
	Type      EntryType
	Amount    utils.Money
	CreatedAt time.Time
}

// CategoryBudget is a soft per-category spending limit. It is never enforced;
// it only drives progress indication.
type CategoryBudget struct {
	CategoryID int
	Amount     utils.Money
}

func IsValidEntryType(entryType EntryType) bool {
	switch entryType {
	case EntryTypeWeekly, EntryTypeMonthly, EntryTypeYearly:
		return true
	}
	return false
}
