package domain

import "time"

// Reminder is a finalized future notification. Fields never change after
// creation except Sent, which flips false -> true exactly once.
type Reminder struct {
	ChatID   int64
	Title    string
	EventAt  time.Time
	NotifyAt time.Time
	Sent     bool
}

// Step of the reminder draft conversation.
type Step int

const (
	StepNone   Step = iota
	StepDate        // waiting for the event date
	StepTime        // waiting for the time of day
	StepOffset      // waiting for the lead-time choice
)

// Draft is a reminder under construction, advanced one answer at a time.
// Every transition returns a new value; the caller replaces the stored draft
// only once a transition fully applies, so an abandoned transition leaves no
// partial update behind. A draft with no terminal input stays around until
// cancelled or completed; there is no timeout.
type Draft struct {
	Step    Step
	Title   string
	Date    time.Time
	EventAt time.Time
}

// Begin starts a fresh draft for the chosen category, discarding any
// half-filled fields from a previous attempt.
func (d Draft) Begin(title string) Draft {
	return Draft{Step: StepDate, Title: title}
}

// WithDate stores the event date and advances to the time step.
func (d Draft) WithDate(date time.Time) Draft {
	d.Date = date
	d.Step = StepTime
	return d
}

// WithClock combines the stored date with a time of day into the event time.
// An event more than a minute in the past moves forward exactly one year so
// a yearless date entered late in the year still lands in the future.
// Returns ok=false when no date is stored (the draft went off the rails);
// the returned draft is repaired back to the date step.
func (d Draft) WithClock(hh, mm int, now time.Time) (Draft, bool) {
	if d.Date.IsZero() {
		d.Step = StepDate
		return d, false
	}

	eventAt := time.Date(d.Date.Year(), d.Date.Month(), d.Date.Day(), hh, mm, 0, 0, now.Location())
	if eventAt.Before(now.Add(-time.Minute)) {
		eventAt = eventAt.AddDate(1, 0, 0)
		d.Date = Midnight(eventAt)
	}

	d.EventAt = eventAt
	d.Step = StepOffset
	return d, true
}

// Finish subtracts the lead-time offset and emits the finished reminder,
// resetting the draft. A notify time already in the past clamps to now+5s so
// the reminder still fires on the next scheduler pass. Returns ok=false when
// the draft has no event time yet; the returned draft is repaired back to
// the date step.
func (d Draft) Finish(chatID int64, offset time.Duration, now time.Time) (Draft, *Reminder, bool) {
	if d.EventAt.IsZero() {
		d.Step = StepDate
		return d, nil, false
	}

	notifyAt := d.EventAt.Add(-offset)
	if notifyAt.Before(now) {
		notifyAt = now.Add(5 * time.Second)
	}

	r := &Reminder{
		ChatID:   chatID,
		Title:    d.Title,
		EventAt:  d.EventAt,
		NotifyAt: notifyAt,
	}
	return Draft{}, r, true
}
