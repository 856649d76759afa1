package kalender

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// RuleKind enumerates the recognized standard rule shapes.
type RuleKind int

const (
	RuleLiteral RuleKind = iota + 1
	RuleEaster
	RuleWeekday
	RuleRange
)

// Rule is one parsed standard rule line. Each line is parsed into
// exactly one kind up front; resolution happens separately so date
// arithmetic stays out of the string matching.
type Rule struct {
	Kind RuleKind
	Raw  string

	Label   string
	Color   string // "#RRGGBB", empty when the line carries no marker
	Flag    string // flag word after the marker, usually "flag"
	Slashes int    // marker depth (1 or 2), 0 when unmarked

	// RuleLiteral
	Day   int
	Month time.Month

	// RuleEaster
	Offset int // signed day offset from Easter Sunday

	// RuleWeekday
	Weekday time.Weekday
	Week    int

	// RuleRange
	FromDay, ToDay     int
	FromMonth, ToMonth time.Month
}

var monthNames = map[string]time.Month{
	"januar":    time.January,
	"februar":   time.February,
	"marts":     time.March,
	"april":     time.April,
	"maj":       time.May,
	"juni":      time.June,
	"juli":      time.July,
	"august":    time.August,
	"september": time.September,
	"oktober":   time.October,
	"november":  time.November,
	"december":  time.December,
}

var weekdayNames = map[string]time.Weekday{
	"mandag":  time.Monday,
	"tirsdag": time.Tuesday,
	"onsdag":  time.Wednesday,
	"torsdag": time.Thursday,
	"fredag":  time.Friday,
	"lørdag":  time.Saturday,
	"søndag":  time.Sunday,
}

var (
	markerRe      = regexp.MustCompile(`^(/{1,2})(#[0-9A-Fa-f]{6})\s+(.*)$`)
	flagRe        = regexp.MustCompile(`^(flag)\s+(.*)$`)
	numericDateRe = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.?$`)
	namedDateRe   = regexp.MustCompile(`^(\d{1,2})\.?\s+([a-zæøåA-ZÆØÅ]+)\.?$`)
	easterRe      = regexp.MustCompile(`^påske(?:\s+(plus|minus)\s+(\d+)\s+dage?)?$`)
	weekRe        = regexp.MustCompile(`^([a-zæøåA-ZÆØÅ]+)\s+i\s+uge\s+(\d{1,2})$`)
	rangeRe       = regexp.MustCompile(`^fra\s+(\d{1,2})\.(\d{1,2})\.?\s+til\s+(\d{1,2})\.(\d{1,2})\.?$`)
)

// ParseRule parses one standard rule line into a tagged Rule. A line
// that matches none of the recognized grammars is a fatal input error;
// the raw line is always included so the author can find it.
func ParseRule(raw string) (Rule, error) {
	rule := Rule{Raw: raw}
	rest := strings.TrimSpace(raw)

	if rest == "" {
		return rule, fmt.Errorf("standard rule is empty")
	}

	// Optional color marker: "/#RRGGBB" or "//#RRGGBB", optionally
	// followed by a flag word.
	if m := markerRe.FindStringSubmatch(rest); m != nil {
		rule.Slashes = len(m[1])
		rule.Color = m[2]
		rest = m[3]
		if fm := flagRe.FindStringSubmatch(rest); fm != nil {
			rule.Flag = fm[1]
			rest = fm[2]
		}
	}

	// Optional label after the first colon. None of the date grammars
	// contain a colon, so the first one always separates the label.
	body := rest
	if idx := strings.Index(rest, ":"); idx >= 0 {
		body = strings.TrimSpace(rest[:idx])
		rule.Label = strings.TrimSpace(rest[idx+1:])
	}
	lowered := strings.ToLower(body)

	switch {
	case rangeRe.MatchString(lowered):
		m := rangeRe.FindStringSubmatch(lowered)
		rule.Kind = RuleRange
		rule.FromDay, _ = strconv.Atoi(m[1])
		fromMonth, err := parseMonthNumber(m[2])
		if err != nil {
			return rule, fmt.Errorf("standard rule %q: %w", raw, err)
		}
		rule.FromMonth = fromMonth
		rule.ToDay, _ = strconv.Atoi(m[3])
		toMonth, err := parseMonthNumber(m[4])
		if err != nil {
			return rule, fmt.Errorf("standard rule %q: %w", raw, err)
		}
		rule.ToMonth = toMonth
		if rule.Slashes == 0 {
			return rule, fmt.Errorf("standard rule %q: range rules require a /#RRGGBB marker", raw)
		}
		return rule, nil

	case easterRe.MatchString(lowered):
		m := easterRe.FindStringSubmatch(lowered)
		rule.Kind = RuleEaster
		if m[1] != "" {
			n, _ := strconv.Atoi(m[2])
			if m[1] == "minus" {
				n = -n
			}
			rule.Offset = n
		}
		if rule.Label == "" {
			rule.Label = "Påske"
		}
		return rule, nil

	case weekRe.MatchString(lowered):
		m := weekRe.FindStringSubmatch(lowered)
		weekday, ok := weekdayNames[m[1]]
		if !ok {
			return rule, fmt.Errorf("standard rule %q: unknown weekday %q", raw, m[1])
		}
		week, _ := strconv.Atoi(m[2])
		if week < 1 || week > 53 {
			return rule, fmt.Errorf("standard rule %q: ISO week %d out of range", raw, week)
		}
		rule.Kind = RuleWeekday
		rule.Weekday = weekday
		rule.Week = week
		return rule, nil

	case numericDateRe.MatchString(lowered) || namedDateRe.MatchString(lowered):
		day, month, err := parseDayMonth(body)
		if err != nil {
			return rule, fmt.Errorf("standard rule %q: %w", raw, err)
		}
		rule.Kind = RuleLiteral
		rule.Day = day
		rule.Month = month
		return rule, nil
	}

	return rule, fmt.Errorf("standard rule %q matches no recognized grammar", raw)
}

// parseDayMonth parses a day-month string in either numeric ("26.11")
// or named ("26. november") form.
func parseDayMonth(s string) (int, time.Month, error) {
	s = strings.TrimSpace(s)

	if m := numericDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, err := parseMonthNumber(m[2])
		if err != nil {
			return 0, 0, err
		}
		return day, month, nil
	}

	if m := namedDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, ok := monthNames[strings.ToLower(m[2])]
		if !ok {
			return 0, 0, fmt.Errorf("unknown month name %q", m[2])
		}
		return day, month, nil
	}

	return 0, 0, fmt.Errorf("%q is not a day-month entry", s)
}

func parseMonthNumber(s string) (time.Month, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 12 {
		return 0, fmt.Errorf("month %q out of range", s)
	}
	return time.Month(n), nil
}

var fullDateNumericRe = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`)
var fullDateNamedRe = regexp.MustCompile(`^(\d{1,2})\.?\s+([a-zæøåA-ZÆØÅ]+)\s+(\d{4})$`)
var fullDateISORe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// parseFullDate parses an explicit full date as used by adhoc entries
// and standalone events: "26. november 2024", "26.11.2024" or
// "2024-11-26".
func parseFullDate(s string) (year int, month time.Month, day int, err error) {
	s = strings.TrimSpace(s)

	if m := fullDateNumericRe.FindStringSubmatch(s); m != nil {
		day, _ = strconv.Atoi(m[1])
		month, err = parseMonthNumber(m[2])
		if err != nil {
			return 0, 0, 0, err
		}
		year, _ = strconv.Atoi(m[3])
		return year, month, day, nil
	}

	if m := fullDateNamedRe.FindStringSubmatch(s); m != nil {
		day, _ = strconv.Atoi(m[1])
		var ok bool
		month, ok = monthNames[strings.ToLower(m[2])]
		if !ok {
			return 0, 0, 0, fmt.Errorf("unknown month name %q", m[2])
		}
		year, _ = strconv.Atoi(m[3])
		return year, month, day, nil
	}

	if m := fullDateISORe.FindStringSubmatch(s); m != nil {
		year, _ = strconv.Atoi(m[1])
		n, _ := strconv.Atoi(m[2])
		if n < 1 || n > 12 {
			return 0, 0, 0, fmt.Errorf("month %q out of range", m[2])
		}
		month = time.Month(n)
		day, _ = strconv.Atoi(m[3])
		return year, month, day, nil
	}

	return 0, 0, 0, fmt.Errorf("unable to parse date %q", s)
}
