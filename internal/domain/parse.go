package domain

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrBadDate   = errors.New("unrecognized date")
	ErrBadClock  = errors.New("unrecognized time")
	ErrBadOffset = errors.New("unrecognized offset")
)

// Lead-time buttons shown at the offset step. ParseOffset recognizes exactly
// this set; anything else re-prompts without a state change.
const (
	Offset30Min = "🔔 30 min before"
	Offset1Hour = "🔔 1 hour before"
	Offset3Hour = "🔔 3 hours before"
	Offset1Day  = "🔔 1 day before"
	OffsetNone  = "🔔 No advance notice"
)

var (
	reDateFull  = regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`)
	reDateShort = regexp.MustCompile(`^\d{1,2}\.\d{1,2}$`)
	reClockDot  = regexp.MustCompile(`^(\d{1,2})\.(\d{2})$`)
	reClock     = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})$`)
	reHourOnly  = regexp.MustCompile(`^\d{1,2}$`)
)

// ParseDate accepts "d.m" and "d.m.yyyy". A yearless date gets the current
// year; if that is already strictly before today it rolls forward one year,
// so "23.02" keeps meaning the next 23rd of February all year round.
func ParseDate(s string, today time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)

	switch {
	case reDateFull.MatchString(s):
		d, err := time.ParseInLocation("2.1.2006", s, today.Location())
		if err != nil {
			return time.Time{}, ErrBadDate
		}
		return d, nil

	case reDateShort.MatchString(s):
		d, err := time.ParseInLocation("2.1.2006", s+"."+strconv.Itoa(today.Year()), today.Location())
		if err != nil {
			return time.Time{}, ErrBadDate
		}
		if d.Before(Midnight(today)) {
			d = d.AddDate(1, 0, 0)
		}
		return d, nil
	}

	return time.Time{}, ErrBadDate
}

// ParseClock accepts "14:00", "14.00" and bare "14" (minute 00).
func ParseClock(s string) (hh, mm int, err error) {
	s = strings.TrimSpace(s)

	if m := reClockDot.FindStringSubmatch(s); m != nil {
		s = m[1] + ":" + m[2]
	}
	if reHourOnly.MatchString(s) {
		s += ":00"
	}

	m := reClock.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, ErrBadClock
	}
	hh, _ = strconv.Atoi(m[1])
	mm, _ = strconv.Atoi(m[2])
	if hh > 23 || mm > 59 {
		return 0, 0, ErrBadClock
	}
	return hh, mm, nil
}

// ParseOffset maps a lead-time button to its duration.
func ParseOffset(s string) (time.Duration, error) {
	switch strings.TrimSpace(s) {
	case Offset30Min:
		return 30 * time.Minute, nil
	case Offset1Hour:
		return time.Hour, nil
	case Offset3Hour:
		return 3 * time.Hour, nil
	case Offset1Day:
		return 24 * time.Hour, nil
	case OffsetNone:
		return 0, nil
	}
	return 0, ErrBadOffset
}

// HumanOffset renders an offset for the confirmation message.
func HumanOffset(d time.Duration) string {
	switch d {
	case 0:
		return "no advance notice"
	case 30 * time.Minute:
		return "30 minutes before"
	case time.Hour:
		return "1 hour before"
	case 3 * time.Hour:
		return "3 hours before"
	case 24 * time.Hour:
		return "1 day before"
	}
	return strconv.Itoa(int(d.Minutes())) + " minutes before"
}
