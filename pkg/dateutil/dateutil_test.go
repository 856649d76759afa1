package dateutil

import (
	"testing"
	"time"
)

func TestEaster(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2024, time.March, 31},
		{2025, time.April, 20},
		{2026, time.April, 5},
		{2027, time.March, 28},
		{2000, time.April, 23},
	}

	for _, tt := range tests {
		got := Easter(tt.year)
		if got.Year() != tt.year || got.Month() != tt.month || got.Day() != tt.day {
			t.Errorf("Easter(%d) = %v, want %d-%02d-%02d",
				tt.year, got.Format("2006-01-02"), tt.year, tt.month, tt.day)
		}
		if got.Weekday() != time.Sunday {
			t.Errorf("Easter(%d) = %v, not a Sunday", tt.year, got.Weekday())
		}
	}
}

func TestIsValidDate(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		day   int
		want  bool
	}{
		{"regular day", 2025, time.November, 26, true},
		{"leap day in leap year", 2024, time.February, 29, true},
		{"leap day in non-leap year", 2025, time.February, 29, false},
		{"31 April", 2025, time.April, 31, false},
		{"day zero", 2025, time.January, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidDate(tt.year, tt.month, tt.day); got != tt.want {
				t.Errorf("IsValidDate(%d, %v, %d) = %v, want %v",
					tt.year, tt.month, tt.day, got, tt.want)
			}
		})
	}
}

func TestISOWeekStart(t *testing.T) {
	tests := []struct {
		year int
		week int
		want string
	}{
		{2025, 1, "2024-12-30"},
		{2025, 42, "2025-10-13"},
		{2024, 1, "2024-01-01"},
		{2026, 53, "2026-12-28"},
	}

	for _, tt := range tests {
		got := ISOWeekStart(tt.year, tt.week)
		if got.Format("2006-01-02") != tt.want {
			t.Errorf("ISOWeekStart(%d, %d) = %v, want %v",
				tt.year, tt.week, got.Format("2006-01-02"), tt.want)
		}
		if got.Weekday() != time.Monday {
			t.Errorf("ISOWeekStart(%d, %d) is a %v, not a Monday", tt.year, tt.week, got.Weekday())
		}
		isoYear, isoWeek := got.ISOWeek()
		if isoYear != tt.year || isoWeek != tt.week {
			t.Errorf("ISOWeekStart(%d, %d).ISOWeek() = %d, %d", tt.year, tt.week, isoYear, isoWeek)
		}
	}
}

func TestWeekdayInISOWeek(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		week    int
		weekday time.Weekday
		want    string
	}{
		{"Monday week 42 2025", 2025, 42, time.Monday, "2025-10-13"},
		{"Friday week 42 2025", 2025, 42, time.Friday, "2025-10-17"},
		{"Sunday week 42 2025", 2025, 42, time.Sunday, "2025-10-19"},
		{"Wednesday week 1 2025", 2025, 1, time.Wednesday, "2025-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekdayInISOWeek(tt.year, tt.week, tt.weekday)
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("WeekdayInISOWeek(%d, %d, %v) = %v, want %v",
					tt.year, tt.week, tt.weekday, got.Format("2006-01-02"), tt.want)
			}
			if got.Weekday() != tt.weekday {
				t.Errorf("resolved day is a %v, want %v", got.Weekday(), tt.weekday)
			}
			_, isoWeek := got.ISOWeek()
			if isoWeek != tt.week {
				t.Errorf("resolved day falls in ISO week %d, want %d", isoWeek, tt.week)
			}
		})
	}
}

func TestIsSameDay(t *testing.T) {
	a := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	b := time.Date(2025, 1, 15, 23, 30, 0, 0, time.UTC)
	c := time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)

	if !IsSameDay(a, b) {
		t.Error("IsSameDay same day with different clock = false, want true")
	}
	if IsSameDay(a, c) {
		t.Error("IsSameDay adjacent days = true, want false")
	}
}
