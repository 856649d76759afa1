package dateutil

import "time"

// Date returns the given calendar day at midnight UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// IsValidDate reports whether the day/month combination exists in the
// given year. time.Date normalizes overflowing values (29 February in a
// non-leap year becomes 1 March), so a round-trip mismatch means the
// input was not a real calendar day.
func IsValidDate(year int, month time.Month, day int) bool {
	t := Date(year, month, day)
	return t.Year() == year && t.Month() == month && t.Day() == day
}

// Easter returns Easter Sunday for the given year in the Gregorian
// calendar, computed with the Meeus/Jones/Butcher algorithm.
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return Date(year, time.Month(month), day)
}

// ISOWeekStart returns the Monday of the given ISO 8601 week.
func ISOWeekStart(year, week int) time.Time {
	// 4 January is always inside ISO week 1.
	jan4 := Date(year, time.January, 4)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday = 7
	}
	monday := jan4.AddDate(0, 0, 1-weekday)
	return monday.AddDate(0, 0, (week-1)*7)
}

// WeekdayInISOWeek returns the date of the given weekday within ISO week
// `week` of `year`. ISO weeks run Monday through Sunday.
func WeekdayInISOWeek(year, week int, weekday time.Weekday) time.Time {
	monday := ISOWeekStart(year, week)
	offset := int(weekday) - 1
	if weekday == time.Sunday {
		offset = 6
	}
	return monday.AddDate(0, 0, offset)
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}
