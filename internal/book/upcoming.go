package book

import (
	"time"

	"github.com/smileynet/addressbook/internal/field"
)

// DefaultWindowDays is the length of the upcoming-birthday window.
const DefaultWindowDays = 7

// Upcoming is one contact to congratulate and the date to do it on.
type Upcoming struct {
	Name string
	Date time.Time
}

// FormattedDate renders Date as DD.MM.YYYY.
func (u Upcoming) FormattedDate() string {
	return u.Date.Format(field.DateLayout)
}

type upcomingConfig struct {
	today  time.Time
	window int
	legacy bool
}

// UpcomingOption configures UpcomingBirthdays.
type UpcomingOption func(*upcomingConfig)

// WithToday sets the reference date. Only its calendar date is used.
func WithToday(t time.Time) UpcomingOption {
	return func(c *upcomingConfig) { c.today = t }
}

// WithWindow sets the number of days after today included in the window.
func WithWindow(days int) UpcomingOption {
	return func(c *upcomingConfig) { c.window = days }
}

// WithLegacyYearBoundary compares day-of-year ordinals within today's year.
// Windows that cross 31 December then miss birthdays in early January.
func WithLegacyYearBoundary() UpcomingOption {
	return func(c *upcomingConfig) { c.legacy = true }
}

// UpcomingBirthdays lists contacts whose birthday falls within
// [today, today+window] and the date to congratulate them, with Saturday and
// Sunday moved to the following Monday. Results follow book order.
func (b *AddressBook) UpcomingBirthdays(opts ...UpcomingOption) []Upcoming {
	cfg := upcomingConfig{today: time.Now(), window: DefaultWindowDays}
	for _, opt := range opts {
		opt(&cfg)
	}

	today := civilDate(cfg.today)
	end := today.AddDate(0, 0, cfg.window)

	var out []Upcoming
	for pair := b.records.Oldest(); pair != nil; pair = pair.Next() {
		bd, ok := pair.Value.Birthday()
		if !ok {
			continue
		}

		// time.Date normalizes 29 February to 1 March in non-leap years.
		next := time.Date(today.Year(), bd.Month(), bd.Day(), 0, 0, 0, 0, time.UTC)

		var inWindow bool
		if cfg.legacy {
			inWindow = today.YearDay() <= next.YearDay() && next.YearDay() <= end.YearDay()
		} else {
			if next.Before(today) {
				next = time.Date(today.Year()+1, bd.Month(), bd.Day(), 0, 0, 0, 0, time.UTC)
			}
			inWindow = !next.After(end)
		}
		if !inWindow {
			continue
		}

		out = append(out, Upcoming{
			Name: pair.Key,
			Date: congratulationDate(next),
		})
	}
	return out
}

// congratulationDate moves a weekend date to the following Monday.
func congratulationDate(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}

// civilDate drops the clock and zone, keeping the calendar date as seen in t's
// own location.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
