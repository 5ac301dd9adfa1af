package expense

import (
	"context"

	"github.com/kharcha/kharcha/internal/event_bus"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/user"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// DueReminder scans for scheduled expenses that fall due on the current day
// and announces each one on the event bus.
type DueReminder struct {
	repo     Repository
	eventBus *event_bus.EventBus
	clock    utils.Clock
	cron     *cron.Cron
}

func NewDueReminder(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock) *DueReminder {
	return &DueReminder{
		repo:     repo,
		eventBus: eventBus,
		clock:    clock,
		cron:     cron.New(),
	}
}

// Start schedules the daily scan. The schedule uses standard cron syntax,
// e.g. "0 8 * * *" for every day at 08:00.
func (d *DueReminder) Start(schedule string) error {
	if _, err := d.cron.AddFunc(schedule, d.Scan); err != nil {
		return err
	}
	d.cron.Start()
	log.Infof("Due expense reminder scheduled: %s", schedule)
	return nil
}

func (d *DueReminder) Stop() {
	d.cron.Stop()
}

// Scan runs one pass over all users. Exported so the scan can be triggered
// outside the cron schedule.
func (d *DueReminder) Scan() {
	ctx := context.Background()
	today := DateOnly(d.clock.Now())

	dueByUser, err := d.repo.GetDueForAllUsers(ctx, today)
	if err != nil {
		log.Errorf("due expense scan failed: %v", err)
		return
	}

	for userId, expenses := range dueByUser {
		userCtx := user.WithUser(ctx, user.User{Id: userId})
		for _, expense := range expenses {
			err := d.eventBus.Publish(event_bus.NewEvent(userCtx, event_bus.ExpenseDueEvent, event_bus.ExpenseChanged{
				Id:        expense.ID,
				Amount:    expense.Amount,
				Date:      expense.Date,
				Scheduled: true,
			}))
			if err != nil {
				log.Errorf("failed to publish %s event: %v", event_bus.ExpenseDueEvent, err)
			}
		}
		log.Debugf("Reminded user %d about %d due expense(s)", userId, len(expenses))
	}
}
