package shifts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmhodges/clock"

	"github.com/evgenshkuropat/shiftmate-bot/internal/domain"
	"github.com/evgenshkuropat/shiftmate-bot/internal/store"
)

// Telegram rejects messages over 4096 chars; stay safely under.
const msgLimit = 3900

const dateFmt = "02.01"

// Forecaster renders a weather block for a date range. Failures inside the
// implementation must degrade to a fallback string, never an error.
type Forecaster interface {
	Block(ctx context.Context, start, end time.Time) string
}

// Service answers shift questions for a user from their stored anchor.
type Service struct {
	store *store.Store
	fc    Forecaster
	clk   clock.Clock
	loc   *time.Location
}

func New(st *store.Store, fc Forecaster, clk clock.Clock, loc *time.Location) *Service {
	return &Service{store: st, fc: fc, clk: clk, loc: loc}
}

func (s *Service) now() time.Time {
	return s.clk.Now().In(s.loc)
}

// Save anchors the chosen shift to the effective Monday: the current week's
// on Mon–Fri, next week's when chosen on the weekend.
func (s *Service) Save(ctx context.Context, chatID int64, t domain.ShiftType) {
	anchor := domain.Anchor{
		Monday: domain.EffectiveMonday(s.now()),
		Type:   t,
	}
	s.store.SetAnchor(ctx, chatID, anchor)
}

// HasAnchor reports whether the user has picked a shift yet.
func (s *Service) HasAnchor(chatID int64) bool {
	_, ok := s.store.Anchor(chatID)
	return ok
}

// WeekInfo summarizes the stored anchor.
func (s *Service) WeekInfo(chatID int64) string {
	a, ok := s.store.Anchor(chatID)
	if !ok {
		return "Shift not set up."
	}
	return "Week of " + a.Monday.Format(dateFmt) + " — " + a.Type.Label()
}

// CurrentShiftText describes today's shift. The Sunday night gets special
// wording: it belongs to the starting NIGHT week and begins at 21:00.
func (s *Service) CurrentShiftText(chatID int64) string {
	a, ok := s.store.Anchor(chatID)
	if !ok {
		return "Shift not set up. Open «My shift» and pick your week's shift 👇"
	}

	now := s.now()
	shift := domain.ShiftForDate(a, now)

	if !domain.IsWorkingDay(now, shift) {
		return "Today is a day off 💤\n(" + s.WeekInfo(chatID) + ")"
	}

	if shift == domain.ShiftNight {
		if now.Weekday() == time.Sunday {
			if now.Hour() < 21 {
				return "Night shift today, starts at 21:00 ⏳\n(" + s.WeekInfo(chatID) + ")"
			}
			return "Night shift in progress 🌙 (21:00–06:00)\n(" + s.WeekInfo(chatID) + ")"
		}
		return "Today: Night (22:00–06:00)\n(" + s.WeekInfo(chatID) + ")"
	}

	return "Today: " + shift.Label() + "\n(" + s.WeekInfo(chatID) + ")"
}

// ScheduleNDays renders the shift plan for the next days, optionally
// prefixed with a weather block for the same range.
func (s *Service) ScheduleNDays(ctx context.Context, chatID int64, days int, includeWeather bool) string {
	a, ok := s.store.Anchor(chatID)
	if !ok {
		return "Pick your week's shift first: «My shift» 👇"
	}

	today := domain.Midnight(s.now())

	var sb strings.Builder
	if includeWeather && s.fc != nil {
		sb.WriteString(s.fc.Block(ctx, today, today.AddDate(0, 0, days-1)))
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "📅 Schedule for %d days:\n\n", days)

	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i)

		var label string
		switch i {
		case 0:
			label = "Today"
		case 1:
			label = "Tomorrow"
		default:
			label = date.Format("Mon")
		}

		shift := domain.ShiftForDate(a, date)

		var shiftText string
		switch {
		case !domain.IsWorkingDay(date, shift):
			shiftText = "Day off"
		case shift == domain.ShiftNight && date.Weekday() == time.Sunday:
			shiftText = "Night (starts 21:00)"
		case shift == domain.ShiftNight:
			shiftText = "Night (22:00–06:00)"
		default:
			shiftText = shift.Label()
		}

		fmt.Fprintf(&sb, "%s (%s) — %s\n", label, date.Format(dateFmt), shiftText)
	}

	out := sb.String()
	if len(out) > msgLimit {
		out = out[:msgLimit] + "\n…(truncated)"
	}
	return out
}
