package income

import (
	"time"

	"github.com/kharcha/kharcha/internal/utils"
)

// Income is a single earning record: where the money came from, how much,
// and the day it arrived.
type Income struct {
	ID          int
	Source      string
	Amount      utils.Money
	Date        time.Time
	Description string
	CreatedAt   time.Time
}
