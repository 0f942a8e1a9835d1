// Package calendar builds renderable month grids from dated events.
// Everything here is a pure function over caller-supplied state.
package calendar

import (
	"time"

	"github.com/shulehub/shule/core"
)

// MaxVisibleEvents is the number of events shown per day cell before the
// "+N more" indicator takes over.
const MaxVisibleEvents = 2

// Event is a dated entry to place on the grid. The builder only groups
// events, it never mutates or reorders them.
type Event struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Date  core.Date `json:"date"`
	Time  string    `json:"time"`
	Type  string    `json:"type"`
}

// DayCell is one grid square. Invalid cells are the leading/trailing blanks
// that pad the month out to full weeks.
type DayCell struct {
	Day    int     `json:"day"`
	Valid  bool    `json:"valid"`
	Today  bool    `json:"today"`
	Events []Event `json:"events"`
}

// Visible returns the events to render inline, in caller order.
func (c DayCell) Visible() []Event {
	if len(c.Events) <= MaxVisibleEvents {
		return c.Events
	}
	return c.Events[:MaxVisibleEvents]
}

// Overflow returns the N of the "+N more" indicator; 0 when everything fits.
func (c DayCell) Overflow() int {
	if n := len(c.Events) - MaxVisibleEvents; n > 0 {
		return n
	}
	return 0
}

// DaysInMonth returns the number of days in the month; day 0 of the following
// month is the last day of this one, which handles leap years for free.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of day 1 of the month, 0=Sunday .. 6=Saturday.
func FirstWeekday(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// IsToday reports whether the given calendar day matches now's date components.
func IsToday(year int, month time.Month, day int, now time.Time) bool {
	y, m, d := now.Date()
	return year == y && month == m && day == d
}

// BuildGrid lays the month out as day cells: FirstWeekday leading blanks, one
// cell per day annotated with the events dated on it, then trailing blanks up
// to the next multiple of 7 so the grid always renders full weeks. Trailing
// cells never wrap into the next month.
func BuildGrid(year int, month time.Month, events []Event, now time.Time) []DayCell {
	days := DaysInMonth(year, month)
	lead := FirstWeekday(year, month)

	byDay := make(map[int][]Event)
	for _, ev := range events {
		if ev.Date.Year == year && ev.Date.Month == month {
			byDay[ev.Date.Day] = append(byDay[ev.Date.Day], ev)
		}
	}

	total := lead + days
	if rem := total % 7; rem != 0 {
		total += 7 - rem
	}

	grid := make([]DayCell, 0, total)
	for i := 0; i < lead; i++ {
		grid = append(grid, DayCell{})
	}
	for day := 1; day <= days; day++ {
		grid = append(grid, DayCell{
			Day:    day,
			Valid:  true,
			Today:  IsToday(year, month, day, now),
			Events: byDay[day],
		})
	}
	for len(grid) < total {
		grid = append(grid, DayCell{})
	}
	return grid
}
