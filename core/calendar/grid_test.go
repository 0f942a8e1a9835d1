package calendar

import (
	"testing"
	"time"

	"github.com/shulehub/shule/core"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{name: "Feb leap year", year: 2024, month: time.February, want: 29},
		{name: "Feb non-leap year", year: 2023, month: time.February, want: 28},
		{name: "Feb century non-leap", year: 1900, month: time.February, want: 28},
		{name: "Feb 400-year leap", year: 2000, month: time.February, want: 29},
		{name: "30-day month", year: 2025, month: time.June, want: 30},
		{name: "31-day month", year: 2025, month: time.July, want: 31},
		{name: "December", year: 2025, month: time.December, want: 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysInMonth(tt.year, tt.month); got != tt.want {
				t.Errorf("DaysInMonth() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFirstWeekday(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{name: "Sunday start", year: 2025, month: time.June, want: 0},
		{name: "Monday start", year: 2025, month: time.September, want: 1},
		{name: "Saturday start", year: 2025, month: time.March, want: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstWeekday(tt.year, tt.month); got != tt.want {
				t.Errorf("FirstWeekday() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildGrid(t *testing.T) {
	now := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

	events := []Event{
		{ID: "1", Title: "Math exam", Date: core.NewDate(2025, time.June, 15)},
		{ID: "2", Title: "Quran recital", Date: core.NewDate(2025, time.June, 15)},
		{ID: "3", Title: "Sports day", Date: core.NewDate(2025, time.June, 20)},
		{ID: "4", Title: "Other month", Date: core.NewDate(2025, time.July, 1)},
		{ID: "5", Title: "Other year", Date: core.NewDate(2024, time.June, 15)},
	}

	grid := BuildGrid(2025, time.June, events, now)

	// June 2025: starts Sunday, 30 days -> 35 cells
	if len(grid) != 35 {
		t.Fatalf("len(grid) = %d, want 35", len(grid))
	}
	if len(grid)%7 != 0 {
		t.Error("grid length must be a multiple of 7")
	}
	if !grid[0].Valid || grid[0].Day != 1 {
		t.Errorf("grid[0] = %+v, want valid day 1", grid[0])
	}
	for i := 30; i < 35; i++ {
		if grid[i].Valid {
			t.Errorf("grid[%d] must be a trailing blank", i)
		}
	}

	day15 := grid[14]
	if len(day15.Events) != 2 {
		t.Fatalf("day 15 has %d events, want 2", len(day15.Events))
	}
	// caller order is preserved
	if day15.Events[0].ID != "1" || day15.Events[1].ID != "2" {
		t.Errorf("day 15 events out of order: %+v", day15.Events)
	}
	if !day15.Today {
		t.Error("day 15 must be flagged as today")
	}
	if grid[13].Today {
		t.Error("day 14 must not be flagged as today")
	}

	if len(grid[19].Events) != 1 {
		t.Errorf("day 20 has %d events, want 1", len(grid[19].Events))
	}
	for i, cell := range grid {
		for _, ev := range cell.Events {
			if ev.ID == "4" || ev.ID == "5" {
				t.Errorf("grid[%d] contains an out-of-month event %q", i, ev.ID)
			}
		}
	}
}

func TestBuildGrid_leadingBlanks(t *testing.T) {
	// March 2025 starts on a Saturday: 6 leading blanks, 31 days -> 42 cells
	grid := BuildGrid(2025, time.March, nil, time.Time{})

	if len(grid) != 42 {
		t.Fatalf("len(grid) = %d, want 42", len(grid))
	}
	for i := 0; i < 6; i++ {
		if grid[i].Valid {
			t.Errorf("grid[%d] must be a leading blank", i)
		}
	}
	if !grid[6].Valid || grid[6].Day != 1 {
		t.Errorf("grid[6] = %+v, want valid day 1", grid[6])
	}
	if !grid[36].Valid || grid[36].Day != 31 {
		t.Errorf("grid[36] = %+v, want valid day 31", grid[36])
	}
}

func TestBuildGrid_exactWeeks(t *testing.T) {
	// Feb 2026 starts on a Sunday and has 28 days: exactly 4 weeks, no padding
	grid := BuildGrid(2026, time.February, nil, time.Time{})
	if len(grid) != 28 {
		t.Fatalf("len(grid) = %d, want 28", len(grid))
	}
	for i, cell := range grid {
		if !cell.Valid {
			t.Errorf("grid[%d] must be a real day", i)
		}
	}
}

func TestDayCell_VisibleOverflow(t *testing.T) {
	tests := []struct {
		name         string
		events       int
		wantVisible  int
		wantOverflow int
	}{
		{name: "no events", events: 0, wantVisible: 0, wantOverflow: 0},
		{name: "under cap", events: 1, wantVisible: 1, wantOverflow: 0},
		{name: "at cap", events: 2, wantVisible: 2, wantOverflow: 0},
		{name: "over cap", events: 5, wantVisible: 2, wantOverflow: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := DayCell{Day: 1, Valid: true, Events: make([]Event, tt.events)}
			if got := len(cell.Visible()); got != tt.wantVisible {
				t.Errorf("Visible() = %v, want %v", got, tt.wantVisible)
			}
			if got := cell.Overflow(); got != tt.wantOverflow {
				t.Errorf("Overflow() = %v, want %v", got, tt.wantOverflow)
			}
		})
	}
}
