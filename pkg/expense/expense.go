package expense

import (
	"time"

	"github.com/kharcha/kharcha/internal/utils"
)

// Status is the lifecycle state of an expense record. A record dated in the
// future is created as StatusScheduled and moves to StatusConfirmed through an
// explicit confirmation; everything else is confirmed from the start.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
)

type Source string

const (
	SourceCash   Source = "Cash"
	SourceOnline Source = "Online"
	SourceCheque Source = "Cheque"
)

// MaxScheduledDescriptionLen limits the free-text note on a scheduled expense.
const MaxScheduledDescriptionLen = 100

type Expense struct {
	ID     int
	Amount utils.Money
	// CategoryID is required; SubCategoryID of 0 means "none".
	CategoryID    int
	SubCategoryID int
	// Date is a calendar day; the time portion is not significant.
	Date        time.Time
	Source      Source
	Description string
	Status      Status
	CreatedAt   time.Time
}

// IsValidSource reports whether s is one of the accepted payment sources.
func IsValidSource(s Source) bool {
	switch s {
	case SourceCash, SourceOnline, SourceCheque:
		return true
	}
	return false
}

// DateOnly truncates t to its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
