package book

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func bookWithBirthdays(t *testing.T, entries ...[2]string) *AddressBook {
	t.Helper()
	b := New()
	for _, e := range entries {
		r := newRecord(t, e[0])
		if e[1] != "" {
			if err := r.AddBirthday(e[1]); err != nil {
				t.Fatalf("AddBirthday(%q) error = %v", e[1], err)
			}
		}
		b.AddRecord(r)
	}
	return b
}

type entry struct {
	name, date string
}

func entries(ups []Upcoming) []entry {
	out := make([]entry, len(ups))
	for i, u := range ups {
		out[i] = entry{u.Name, u.FormattedDate()}
	}
	return out
}

func equalEntries(a, b []entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestUpcomingBirthdays_WeekdayNoShift(t *testing.T) {
	// Given Anna born 10.03.2000 and today Wednesday 08.03.2023
	b := bookWithBirthdays(t, [2]string{"Anna", "10.03.2000"})

	got := entries(b.UpcomingBirthdays(WithToday(date(2023, time.March, 8))))

	// Then she is congratulated on Friday 10.03.2023
	want := []entry{{"Anna", "10.03.2023"}}
	if !equalEntries(got, want) {
		t.Errorf("UpcomingBirthdays() = %v, want %v", got, want)
	}
}

func TestUpcomingBirthdays_WeekendShiftsToMonday(t *testing.T) {
	// 11.03.2023 is a Saturday, 12.03.2023 a Sunday.
	b := bookWithBirthdays(t,
		[2]string{"Bob", "11.03.1990"},
		[2]string{"Cleo", "12.03.1985"},
	)

	got := entries(b.UpcomingBirthdays(WithToday(date(2023, time.March, 8))))

	want := []entry{{"Bob", "13.03.2023"}, {"Cleo", "13.03.2023"}}
	if !equalEntries(got, want) {
		t.Errorf("UpcomingBirthdays() = %v, want %v", got, want)
	}
}

func TestUpcomingBirthdays_WindowBounds(t *testing.T) {
	today := date(2023, time.March, 8)

	tests := []struct {
		name     string
		birthday string
		want     bool
	}{
		{"today is included", "08.03.1990", true},
		{"last day is included", "15.03.1990", true},
		{"day after window", "16.03.1990", false},
		{"yesterday", "07.03.1990", false},
		{"months away", "01.09.1990", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bookWithBirthdays(t, [2]string{"X", tt.birthday})
			got := len(b.UpcomingBirthdays(WithToday(today))) == 1
			if got != tt.want {
				t.Errorf("birthday %s upcoming = %v, want %v", tt.birthday, got, tt.want)
			}
		})
	}
}

func TestUpcomingBirthdays_NoBirthdays(t *testing.T) {
	b := bookWithBirthdays(t, [2]string{"Anna", ""}, [2]string{"Bob", ""})

	if got := b.UpcomingBirthdays(WithToday(date(2023, time.March, 8))); len(got) != 0 {
		t.Errorf("UpcomingBirthdays() = %v, want empty", got)
	}
	if got := New().UpcomingBirthdays(); len(got) != 0 {
		t.Errorf("empty book UpcomingBirthdays() = %v, want empty", got)
	}
}

func TestUpcomingBirthdays_SkipsRecordsWithoutBirthday(t *testing.T) {
	b := bookWithBirthdays(t,
		[2]string{"NoDate", ""},
		[2]string{"Anna", "10.03.2000"},
	)

	got := entries(b.UpcomingBirthdays(WithToday(date(2023, time.March, 8))))
	if want := []entry{{"Anna", "10.03.2023"}}; !equalEntries(got, want) {
		t.Errorf("UpcomingBirthdays() = %v, want %v", got, want)
	}
}

func TestUpcomingBirthdays_BookOrderNotDateOrder(t *testing.T) {
	b := bookWithBirthdays(t,
		[2]string{"Late", "14.03.1990"},
		[2]string{"Early", "09.03.1990"},
		[2]string{"Mid", "10.03.1990"},
	)

	got := entries(b.UpcomingBirthdays(WithToday(date(2023, time.March, 8))))
	want := []entry{{"Late", "14.03.2023"}, {"Early", "09.03.2023"}, {"Mid", "10.03.2023"}}
	if !equalEntries(got, want) {
		t.Errorf("UpcomingBirthdays() = %v, want %v", got, want)
	}
}

func TestUpcomingBirthdays_YearBoundary(t *testing.T) {
	// Monday 29.12.2025: the window runs to 05.01.2026.
	today := date(2025, time.December, 29)
	b := bookWithBirthdays(t,
		[2]string{"Eve", "30.12.1990"},
		[2]string{"Jan", "02.01.1990"},
		[2]string{"Late", "06.01.1990"},
	)

	t.Run("dates wrap into next year", func(t *testing.T) {
		got := entries(b.UpcomingBirthdays(WithToday(today)))
		want := []entry{{"Eve", "30.12.2025"}, {"Jan", "02.01.2026"}}
		if !equalEntries(got, want) {
			t.Errorf("UpcomingBirthdays() = %v, want %v", got, want)
		}
	})

	t.Run("legacy ordinals miss the whole window", func(t *testing.T) {
		got := b.UpcomingBirthdays(WithToday(today), WithLegacyYearBoundary())
		if len(got) != 0 {
			t.Errorf("legacy UpcomingBirthdays() = %v, want empty", entries(got))
		}
	})
}

func TestUpcomingBirthdays_LegacyMatchesWithinYear(t *testing.T) {
	b := bookWithBirthdays(t,
		[2]string{"Anna", "10.03.2000"},
		[2]string{"Bob", "11.03.1990"},
	)

	got := entries(b.UpcomingBirthdays(WithToday(date(2023, time.March, 8)), WithLegacyYearBoundary()))
	want := []entry{{"Anna", "10.03.2023"}, {"Bob", "13.03.2023"}}
	if !equalEntries(got, want) {
		t.Errorf("legacy UpcomingBirthdays() = %v, want %v", got, want)
	}
}

func TestUpcomingBirthdays_WeekendShiftCrossesYear(t *testing.T) {
	// 31.12.2022 is a Saturday.
	b := bookWithBirthdays(t, [2]string{"Nye", "31.12.1999"})

	got := entries(b.UpcomingBirthdays(WithToday(date(2022, time.December, 28))))
	if want := []entry{{"Nye", "02.01.2023"}}; !equalEntries(got, want) {
		t.Errorf("UpcomingBirthdays() = %v, want %v", got, want)
	}
}

func TestUpcomingBirthdays_LeapDayInCommonYear(t *testing.T) {
	// Saturday 25.02.2023; 29 February falls back to Wednesday 01.03.2023.
	b := bookWithBirthdays(t, [2]string{"Leap", "29.02.2000"})

	got := entries(b.UpcomingBirthdays(WithToday(date(2023, time.February, 25))))
	if want := []entry{{"Leap", "01.03.2023"}}; !equalEntries(got, want) {
		t.Errorf("UpcomingBirthdays() = %v, want %v", got, want)
	}
}

func TestUpcomingBirthdays_CustomWindow(t *testing.T) {
	b := bookWithBirthdays(t, [2]string{"Anna", "20.03.2000"})
	today := date(2023, time.March, 8)

	if got := b.UpcomingBirthdays(WithToday(today)); len(got) != 0 {
		t.Errorf("7-day window = %v, want empty", entries(got))
	}
	got := entries(b.UpcomingBirthdays(WithToday(today), WithWindow(14)))
	if want := []entry{{"Anna", "20.03.2023"}}; !equalEntries(got, want) {
		t.Errorf("14-day window = %v, want %v", got, want)
	}
}

func TestUpcomingBirthdays_IgnoresClockAndZone(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	lateEvening := time.Date(2023, time.March, 8, 23, 30, 0, 0, loc)
	b := bookWithBirthdays(t, [2]string{"Anna", "08.03.2000"})

	got := entries(b.UpcomingBirthdays(WithToday(lateEvening)))
	if want := []entry{{"Anna", "08.03.2023"}}; !equalEntries(got, want) {
		t.Errorf("UpcomingBirthdays() = %v, want %v", got, want)
	}
}
