package domain

import (
	"testing"
	"time"
)

// helper: date at midnight in a fixed civil zone
func mustDate(t *testing.T, y int, m time.Month, d int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Prague")
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func TestAnchorMonday_StableAcrossWeek(t *testing.T) {
	mon := mustDate(t, 2024, time.January, 1) // a Monday

	// Monday through Saturday all map to the same Monday.
	for i := 0; i <= 5; i++ {
		got := AnchorMonday(mon.AddDate(0, 0, i))
		if !got.Equal(mon) {
			t.Fatalf("day +%d: want %v, got %v", i, mon, got)
		}
	}

	// Sunday belongs to the following week.
	sun := mon.AddDate(0, 0, 6)
	got := AnchorMonday(sun)
	want := mon.AddDate(0, 0, 7)
	if !got.Equal(want) {
		t.Fatalf("sunday: want %v, got %v", want, got)
	}
}

func TestShiftForDate_ThreeWeekPeriod(t *testing.T) {
	anchor := Anchor{Monday: mustDate(t, 2024, time.January, 1), Type: ShiftEarly}

	d := mustDate(t, 2023, time.November, 14)
	for i := 0; i < 20; i++ {
		a := ShiftForDate(anchor, d)
		b := ShiftForDate(anchor, d.AddDate(0, 0, 21))
		if a != b {
			t.Fatalf("%v: %v != %v 3 weeks later (%v)", d, a, b, d.AddDate(0, 0, 21))
		}
		d = d.AddDate(0, 0, 5)
	}
}

func TestShiftForDate_Scenario(t *testing.T) {
	anchor := Anchor{Monday: mustDate(t, 2024, time.January, 1), Type: ShiftEarly}

	if got := ShiftForDate(anchor, mustDate(t, 2024, time.January, 22)); got != ShiftEarly {
		t.Fatalf("3 weeks later: want EARLY, got %v", got)
	}
	if got := ShiftForDate(anchor, mustDate(t, 2024, time.January, 15)); got != ShiftNight {
		t.Fatalf("1 week later: want NIGHT, got %v", got)
	}
	if got := ShiftForDate(anchor, mustDate(t, 2024, time.January, 8)); got != ShiftNight {
		t.Fatalf("1 week later mid-week anchor check: want NIGHT, got %v", got)
	}
}

func TestShiftForDate_BeforeAnchor(t *testing.T) {
	// Dates before the anchor produce negative week deltas; the floored mod
	// must still land on the right rotation step.
	anchor := Anchor{Monday: mustDate(t, 2024, time.January, 15), Type: ShiftNight}

	cases := []struct {
		date time.Time
		want ShiftType
	}{
		{mustDate(t, 2024, time.January, 8), ShiftDay},     // -1 week -> 2 steps
		{mustDate(t, 2024, time.January, 1), ShiftEarly},   // -2 weeks -> 1 step
		{mustDate(t, 2023, time.December, 25), ShiftNight}, // -3 weeks -> full cycle
	}
	for _, c := range cases {
		if got := ShiftForDate(anchor, c.date); got != c.want {
			t.Fatalf("%v: want %v, got %v", c.date, c.want, got)
		}
	}
}

func TestShiftForDate_SundayUsesNextWeek(t *testing.T) {
	anchor := Anchor{Monday: mustDate(t, 2024, time.January, 1), Type: ShiftEarly}

	// Sunday 2024-01-07 rotates with the week of Monday 2024-01-08 (NIGHT),
	// not with the EARLY week it calendar-wise closes.
	if got := ShiftForDate(anchor, mustDate(t, 2024, time.January, 7)); got != ShiftNight {
		t.Fatalf("sunday: want NIGHT, got %v", got)
	}
}

func TestIsWorkingDay(t *testing.T) {
	mon := mustDate(t, 2024, time.January, 1)

	countWorking := func(shift ShiftType) int {
		n := 0
		for i := 0; i < 7; i++ {
			if IsWorkingDay(mon.AddDate(0, 0, i), shift) {
				n++
			}
		}
		return n
	}

	if got := countWorking(ShiftEarly); got != 5 {
		t.Fatalf("EARLY working days: want 5, got %d", got)
	}
	if got := countWorking(ShiftDay); got != 5 {
		t.Fatalf("DAY working days: want 5, got %d", got)
	}
	if got := countWorking(ShiftNight); got != 6 {
		t.Fatalf("NIGHT working days: want 6, got %d", got)
	}

	sat := mon.AddDate(0, 0, 5)
	if IsWorkingDay(sat, ShiftNight) {
		t.Fatal("NIGHT saturday must be off")
	}
	sun := mon.AddDate(0, 0, 6)
	if !IsWorkingDay(sun, ShiftNight) {
		t.Fatal("NIGHT sunday must be working")
	}
}

func TestEffectiveMonday(t *testing.T) {
	mon := mustDate(t, 2024, time.June, 3) // a Monday
	nextMon := mon.AddDate(0, 0, 7)

	// Mon..Fri anchor to the current week's Monday.
	for i := 0; i <= 4; i++ {
		if got := EffectiveMonday(mon.AddDate(0, 0, i)); !got.Equal(mon) {
			t.Fatalf("weekday +%d: want %v, got %v", i, mon, got)
		}
	}
	// Sat and Sun anchor to next week's Monday.
	for i := 5; i <= 6; i++ {
		if got := EffectiveMonday(mon.AddDate(0, 0, i)); !got.Equal(nextMon) {
			t.Fatalf("weekend +%d: want %v, got %v", i, nextMon, got)
		}
	}
}

func TestShiftTypeRoundTrip(t *testing.T) {
	for _, s := range []ShiftType{ShiftEarly, ShiftNight, ShiftDay} {
		got, err := ParseShiftType(s.String())
		if err != nil {
			t.Fatalf("parse %v: %v", s, err)
		}
		if got != s {
			t.Fatalf("round trip: want %v, got %v", s, got)
		}
	}
	if _, err := ParseShiftType("LATE"); err == nil {
		t.Fatal("unknown tag must fail")
	}
}

func TestShiftTypeCycle(t *testing.T) {
	if got := ShiftEarly.Next().Next().Next(); got != ShiftEarly {
		t.Fatalf("cycle period: want EARLY, got %v", got)
	}
}
