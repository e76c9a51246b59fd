package domain

import (
	"fmt"
	"time"
)

// ShiftType is the shift worked during one calendar week of the rotation.
type ShiftType int

const (
	ShiftEarly ShiftType = iota // 06:00–14:00
	ShiftNight                  // 22:00–06:00, work-week Sun–Fri
	ShiftDay                    // 14:00–22:00
)

// Next returns the shift worked the following week.
// The rotation cycles EARLY -> NIGHT -> DAY -> EARLY with period 3.
func (s ShiftType) Next() ShiftType {
	switch s {
	case ShiftEarly:
		return ShiftNight
	case ShiftNight:
		return ShiftDay
	default:
		return ShiftEarly
	}
}

// String returns the storage tag of the shift type.
func (s ShiftType) String() string {
	switch s {
	case ShiftEarly:
		return "EARLY"
	case ShiftNight:
		return "NIGHT"
	case ShiftDay:
		return "DAY"
	}
	return "UNKNOWN"
}

// Label returns the user-facing button label.
func (s ShiftType) Label() string {
	switch s {
	case ShiftEarly:
		return "Early (6-14)"
	case ShiftNight:
		return "Night (22-06)"
	default:
		return "Day (14-22)"
	}
}

// ParseShiftType restores a ShiftType from its storage tag.
func ParseShiftType(tag string) (ShiftType, error) {
	switch tag {
	case "EARLY":
		return ShiftEarly, nil
	case "NIGHT":
		return ShiftNight, nil
	case "DAY":
		return ShiftDay, nil
	}
	return ShiftEarly, fmt.Errorf("unknown shift type %q", tag)
}

// Anchor is the single data point the rotation extrapolates from: the shift
// type in effect for the calendar week starting at Monday.
type Anchor struct {
	Monday time.Time // always a Monday at midnight
	Type   ShiftType
}

// Midnight truncates t to the start of its civil day, keeping the location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AnchorMonday maps a date to the Monday that owns it for rotation purposes.
// A Sunday belongs to the following week: the night shift's work-week runs
// Sunday evening through Friday morning, so Sunday counts against the
// upcoming Monday's rotation bucket.
func AnchorMonday(date time.Time) time.Time {
	d := Midnight(date)
	if d.Weekday() == time.Sunday {
		return d.AddDate(0, 0, 1)
	}
	return d.AddDate(0, 0, -(int(d.Weekday()) - 1))
}

// ShiftForDate computes the shift type in effect on date, extrapolated from
// the anchor both forward and backward.
func ShiftForDate(a Anchor, date time.Time) ShiftType {
	weeks := daysBetween(a.Monday, AnchorMonday(date)) / 7
	steps := floorMod(weeks, 3)

	shift := a.Type
	for i := 0; i < steps; i++ {
		shift = shift.Next()
	}
	return shift
}

// IsWorkingDay reports whether date is a working day under the given week
// shift. EARLY/DAY work Monday–Friday. NIGHT works every day but Saturday:
// the Sunday-evening night belongs to the week yet physically starts on
// Sunday, so NIGHT covers six nights.
func IsWorkingDay(date time.Time, shift ShiftType) bool {
	dow := date.Weekday()
	if shift == ShiftNight {
		return dow != time.Saturday
	}
	return dow != time.Saturday && dow != time.Sunday
}

// EffectiveMonday returns the Monday a shift selected today should anchor to.
// Selecting on Saturday or Sunday pins the anchor to next week's Monday so
// the already-decided week finishes first.
func EffectiveMonday(today time.Time) time.Time {
	d := Midnight(today)
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d.AddDate(0, 0, -(int(d.Weekday()) - 1))
	}
}

// daysBetween counts civil days from a to b, negative when b precedes a.
// Both are re-anchored to UTC midnight first so DST transitions in the
// civil zone cannot skew the division.
func daysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au) / (24 * time.Hour))
}

// floorMod is a modulo that stays in [0, m) for negative dividends, unlike
// Go's % operator. Pre-anchor dates produce negative week deltas and must
// still land on the right rotation step.
func floorMod(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}
