package shifts

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jmhodges/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/evgenshkuropat/shiftmate-bot/internal/domain"
	"github.com/evgenshkuropat/shiftmate-bot/internal/store"
)

type nopRepo struct{}

func (nopRepo) LoadAll(context.Context) (map[int64]domain.Anchor, map[int64][]*domain.Reminder, error) {
	return map[int64]domain.Anchor{}, map[int64][]*domain.Reminder{}, nil
}
func (nopRepo) SaveAll(context.Context, map[int64]domain.Anchor, map[int64][]*domain.Reminder) error {
	return nil
}
func (nopRepo) Close() error { return nil }

type stubForecaster struct{ block string }

func (s stubForecaster) Block(context.Context, time.Time, time.Time) string { return s.block }

func newTestService(t *testing.T, at time.Time) (*Service, *store.Store) {
	t.Helper()
	clk := clock.NewFake()
	clk.Set(at)
	st := store.New(nopRepo{}, zap.NewNop())
	return New(st, stubForecaster{block: "📍Kolín\n🌦 Weather:\nstub"}, clk, at.Location()), st
}

func praha(t *testing.T, y int, m time.Month, d, hh int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Prague")
	require.NoError(t, err)
	return time.Date(y, m, d, hh, 0, 0, 0, loc)
}

func TestSave_WeekdayAnchorsCurrentWeek(t *testing.T) {
	// Wednesday 2024-06-05.
	now := praha(t, 2024, time.June, 5, 10)
	svc, st := newTestService(t, now)

	svc.Save(context.Background(), 1, domain.ShiftEarly)

	a, ok := st.Anchor(1)
	require.True(t, ok)
	assert.True(t, a.Monday.Equal(praha(t, 2024, time.June, 3, 0)))
	assert.Equal(t, domain.ShiftEarly, a.Type)
}

func TestSave_WeekendAnchorsNextWeek(t *testing.T) {
	// Saturday 2024-06-08.
	now := praha(t, 2024, time.June, 8, 10)
	svc, st := newTestService(t, now)

	svc.Save(context.Background(), 1, domain.ShiftNight)

	a, ok := st.Anchor(1)
	require.True(t, ok)
	assert.True(t, a.Monday.Equal(praha(t, 2024, time.June, 10, 0)))
}

func TestCurrentShiftText_NoAnchor(t *testing.T) {
	svc, _ := newTestService(t, praha(t, 2024, time.June, 5, 10))
	assert.Contains(t, svc.CurrentShiftText(1), "Shift not set up")
}

func TestCurrentShiftText_DayOff(t *testing.T) {
	// EARLY week, Saturday.
	now := praha(t, 2024, time.June, 8, 10)
	svc, st := newTestService(t, now)
	st.SetAnchor(context.Background(), 1, domain.Anchor{
		Monday: praha(t, 2024, time.June, 3, 0), Type: domain.ShiftEarly,
	})

	assert.Contains(t, svc.CurrentShiftText(1), "day off")
}

func TestCurrentShiftText_SundayNight(t *testing.T) {
	// NIGHT week of Monday 2024-06-10; Sunday 2024-06-09 belongs to it.
	ctx := context.Background()
	anchor := domain.Anchor{Monday: praha(t, 2024, time.June, 10, 0), Type: domain.ShiftNight}

	before, st1 := newTestService(t, praha(t, 2024, time.June, 9, 15))
	st1.SetAnchor(ctx, 1, anchor)
	assert.Contains(t, before.CurrentShiftText(1), "starts at 21:00")

	after, st2 := newTestService(t, praha(t, 2024, time.June, 9, 22))
	st2.SetAnchor(ctx, 1, anchor)
	assert.Contains(t, after.CurrentShiftText(1), "in progress")
}

func TestCurrentShiftText_WeekdayNight(t *testing.T) {
	now := praha(t, 2024, time.June, 11, 10) // Tuesday
	svc, st := newTestService(t, now)
	st.SetAnchor(context.Background(), 1, domain.Anchor{
		Monday: praha(t, 2024, time.June, 10, 0), Type: domain.ShiftNight,
	})

	assert.Contains(t, svc.CurrentShiftText(1), "Night (22:00–06:00)")
}

func TestScheduleNDays(t *testing.T) {
	// EARLY week starting Monday 2024-06-03; next week is NIGHT.
	now := praha(t, 2024, time.June, 3, 8)
	svc, st := newTestService(t, now)
	ctx := context.Background()
	st.SetAnchor(ctx, 1, domain.Anchor{
		Monday: praha(t, 2024, time.June, 3, 0), Type: domain.ShiftEarly,
	})

	out := svc.ScheduleNDays(ctx, 1, 7, true)

	assert.Contains(t, out, "🌦 Weather:")
	assert.Contains(t, out, "📅 Schedule for 7 days:")
	assert.Contains(t, out, "Today (03.06) — Early (6-14)")
	assert.Contains(t, out, "Tomorrow (04.06) — Early (6-14)")
	assert.Contains(t, out, "Sat (08.06) — Day off")
	// Sunday 09.06 opens the NIGHT week: working, starts 21:00.
	assert.Contains(t, out, "Sun (09.06) — Night (starts 21:00)")

	lines := strings.Count(out, "\n")
	assert.Greater(t, lines, 8)
}

func TestScheduleNDays_NoWeather(t *testing.T) {
	now := praha(t, 2024, time.June, 3, 8)
	svc, st := newTestService(t, now)
	ctx := context.Background()
	st.SetAnchor(ctx, 1, domain.Anchor{
		Monday: praha(t, 2024, time.June, 3, 0), Type: domain.ShiftDay,
	})

	out := svc.ScheduleNDays(ctx, 1, 7, false)
	assert.NotContains(t, out, "Weather")
}

func TestScheduleNDays_NoAnchor(t *testing.T) {
	svc, _ := newTestService(t, praha(t, 2024, time.June, 3, 8))
	assert.Contains(t, svc.ScheduleNDays(context.Background(), 1, 7, true), "Pick your week's shift first")
}
