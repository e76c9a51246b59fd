package scheduler

import (
	"context"
	"time"

	"github.com/jmhodges/clock"
	"go.uber.org/zap"

	"github.com/evgenshkuropat/shiftmate-bot/internal/domain"
	"github.com/evgenshkuropat/shiftmate-bot/internal/store"
)

// DefaultInterval bounds worst-case delivery latency after a reminder's
// notify time.
const DefaultInterval = 30 * time.Second

// Sender is the minimal delivery interface the scheduler needs.
// telegram.Router implements it.
type Sender interface {
	SendMessage(chatID int64, text string) error
}

// Scheduler periodically scans for due reminders and delivers each at most
// once. Delivery failures are logged and the reminder is still marked sent;
// there is no retry queue.
type Scheduler struct {
	store    *store.Store
	log      *zap.Logger
	sender   Sender
	clk      clock.Clock
	loc      *time.Location
	interval time.Duration
}

func New(st *store.Store, log *zap.Logger, sender Sender, clk clock.Clock, loc *time.Location, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		store:    st,
		log:      log,
		sender:   sender,
		clk:      clk,
		loc:      loc,
		interval: interval,
	}
}

// Run drives the due-check loop until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopping")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick performs one due-check pass: collect due reminders (earliest notify
// time first), deliver, then flip the sent flags and persist once.
func (s *Scheduler) tick(ctx context.Context) {
	now := s.clk.Now().In(s.loc)

	due := s.store.DueNow(now)
	if len(due) == 0 {
		return
	}

	for _, r := range due {
		if err := s.sender.SendMessage(r.ChatID, reminderText(r)); err != nil {
			s.log.Error("reminder send failed",
				zap.Error(err),
				zap.Int64("chatID", r.ChatID),
			)
		}
	}

	s.store.MarkSent(ctx, due)
	s.log.Info("reminders delivered", zap.Int("count", len(due)))
}

func reminderText(r *domain.Reminder) string {
	return "🔔 Reminder:\n" + r.Title + "\n🗓 " + r.EventAt.Format("02.01 15:04")
}
