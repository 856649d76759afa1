package kalender

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/madsdyd/grv-scripts/pkg/dateutil"
)

// ResolvedEvent is one concrete calendar line: date, label, color and
// optional flag marker. Constructed during a single resolution pass and
// serialized immediately; never persisted.
type ResolvedEvent struct {
	Date    time.Time
	Label   string
	Color   string
	Flag    string
	Slashes int

	// seq is the declaration position, used to keep same-date events in
	// declaration order through the final sort.
	seq int
}

// Resolve converts the whole plan into sorted resolved events. Any
// malformed rule or calendrically invalid entry aborts the run; no
// partial result is returned.
func Resolve(plan *Plan, logger *zap.Logger) ([]ResolvedEvent, error) {
	var events []ResolvedEvent
	seq := 0

	standard, err := resolveStandard(plan)
	if err != nil {
		return nil, err
	}
	events = append(events, standard...)
	seq = len(plan.Standard)

	for _, group := range plan.Groups {
		groupEvents, next, err := resolveGroup(plan, group, seq, logger)
		if err != nil {
			return nil, err
		}
		events = append(events, groupEvents...)
		seq = next
	}

	for _, event := range plan.Events {
		year, month, day, err := parseFullDate(event.Date)
		if err != nil {
			return nil, fmt.Errorf("begivenhed %q: %w", event.Label, err)
		}
		if !dateutil.IsValidDate(year, month, day) {
			return nil, fmt.Errorf("begivenhed %q: %q is not a valid date", event.Label, event.Date)
		}
		color, err := plan.ResolveColor(event.Color)
		if err != nil {
			return nil, fmt.Errorf("begivenhed %q: %w", event.Label, err)
		}
		events = append(events, ResolvedEvent{
			Date:    dateutil.Date(year, month, day),
			Label:   event.Label,
			Color:   color,
			Slashes: 2,
			seq:     seq,
		})
		seq++
	}

	// Sort by date ascending; same-date events keep declaration order.
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].seq < events[j].seq
	})

	return events, nil
}

// resolveStandard resolves the standard rule list. Single-date rules are
// resolved first so range expansion can see which boundary dates are
// already claimed; seq numbers follow the declared line order either way.
func resolveStandard(plan *Plan) ([]ResolvedEvent, error) {
	rules := make([]Rule, len(plan.Standard))
	for i, raw := range plan.Standard {
		rule, err := ParseRule(raw)
		if err != nil {
			return nil, err
		}
		rules[i] = rule
	}

	var events []ResolvedEvent
	claimed := make(map[string]bool) // "d.m.yyyy/#RRGGBB" for single-date rules

	for i, rule := range rules {
		if rule.Kind == RuleRange {
			continue
		}

		date, err := resolveSingle(plan.Year, rule)
		if err != nil {
			return nil, err
		}
		events = append(events, ResolvedEvent{
			Date:    date,
			Label:   rule.Label,
			Color:   rule.Color,
			Flag:    rule.Flag,
			Slashes: rule.Slashes,
			seq:     i,
		})
		claimed[claimKey(date, rule.Color)] = true
	}

	for i, rule := range rules {
		if rule.Kind != RuleRange {
			continue
		}

		if !dateutil.IsValidDate(plan.Year, rule.FromMonth, rule.FromDay) {
			return nil, fmt.Errorf("standard rule %q: %d.%d is not a valid date in %d", rule.Raw, rule.FromDay, rule.FromMonth, plan.Year)
		}
		start := dateutil.Date(plan.Year, rule.FromMonth, rule.FromDay)
		endYear := plan.Year
		end := dateutil.Date(endYear, rule.ToMonth, rule.ToDay)
		if end.Before(start) {
			// Ranges spanning a year boundary end in the following year.
			endYear++
			end = dateutil.Date(endYear, rule.ToMonth, rule.ToDay)
		}
		if !dateutil.IsValidDate(endYear, rule.ToMonth, rule.ToDay) {
			return nil, fmt.Errorf("standard rule %q: %d.%d is not a valid date in %d", rule.Raw, rule.ToDay, rule.ToMonth, endYear)
		}

		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			if claimed[claimKey(day, rule.Color)] {
				// A standalone rule with the same color already emits this
				// boundary date with its own text.
				continue
			}
			events = append(events, ResolvedEvent{
				Date:    day,
				Label:   rule.Label,
				Color:   rule.Color,
				Flag:    rule.Flag,
				Slashes: rule.Slashes,
				seq:     i,
			})
		}
	}

	return events, nil
}

func resolveSingle(year int, rule Rule) (time.Time, error) {
	switch rule.Kind {
	case RuleLiteral:
		if !dateutil.IsValidDate(year, rule.Month, rule.Day) {
			return time.Time{}, fmt.Errorf("standard rule %q: %d. %s is not a valid date in %d", rule.Raw, rule.Day, danishMonth(rule.Month), year)
		}
		return dateutil.Date(year, rule.Month, rule.Day), nil
	case RuleEaster:
		return dateutil.Easter(year).AddDate(0, 0, rule.Offset), nil
	case RuleWeekday:
		date := dateutil.WeekdayInISOWeek(year, rule.Week, rule.Weekday)
		// Week 53 only exists in long ISO years; past the last week the
		// arithmetic lands in the next year's week 1.
		if isoYear, isoWeek := date.ISOWeek(); isoYear != year || isoWeek != rule.Week {
			return time.Time{}, fmt.Errorf("standard rule %q: %d has no ISO week %d", rule.Raw, year, rule.Week)
		}
		return date, nil
	default:
		return time.Time{}, fmt.Errorf("standard rule %q: unexpected rule kind %d", rule.Raw, rule.Kind)
	}
}

// resolveGroup resolves one meeting group: per-year entries first, then
// ad-hoc entries, which either override a generated entry for the same
// date or add a new event for the group.
func resolveGroup(plan *Plan, group Group, seq int, logger *zap.Logger) ([]ResolvedEvent, int, error) {
	color, err := plan.ResolveColor(group.Color)
	if err != nil {
		return nil, seq, fmt.Errorf("group %q: %w", group.Name, err)
	}

	var events []ResolvedEvent

	for _, yearList := range group.Years {
		for _, raw := range yearList.Entries {
			day, month, err := parseDayMonth(raw)
			if err != nil {
				return nil, seq, fmt.Errorf("group %q, year %d: entry %q: %w", group.Name, yearList.Year, raw, err)
			}
			if !dateutil.IsValidDate(yearList.Year, month, day) {
				return nil, seq, fmt.Errorf("group %q, year %d: entry %q is not a valid date", group.Name, yearList.Year, raw)
			}
			date := dateutil.Date(yearList.Year, month, day)
			events = append(events, ResolvedEvent{
				Date:    date,
				Label:   group.Name,
				Color:   color,
				Slashes: 2,
				seq:     seq,
			})
			seq++
		}
	}

	for _, adhoc := range group.AdHoc {
		year, month, day, err := parseFullDate(adhoc.Date)
		if err != nil {
			return nil, seq, fmt.Errorf("group %q: adhoc entry %q: %w", group.Name, adhoc.Date, err)
		}
		if !dateutil.IsValidDate(year, month, day) {
			return nil, seq, fmt.Errorf("group %q: adhoc entry %q is not a valid date", group.Name, adhoc.Date)
		}
		date := dateutil.Date(year, month, day)

		replaced := false
		for i := range events {
			if dateutil.IsSameDay(events[i].Date, date) {
				// The ad-hoc label replaces the generated line for that date.
				events[i].Label = adhoc.Label
				replaced = true
				break
			}
		}
		if replaced {
			continue
		}

		logger.Warn("ad-hoc entry matched no generated entry; added as a new event",
			zap.String("group", group.Name),
			zap.String("dato", adhoc.Date),
			zap.String("label", adhoc.Label))
		events = append(events, ResolvedEvent{
			Date:    date,
			Label:   adhoc.Label,
			Color:   color,
			Slashes: 2,
			seq:     seq,
		})
		seq++
	}

	return events, seq, nil
}

func claimKey(t time.Time, color string) string {
	return t.Format("2006-01-02") + "/" + color
}

var danishMonths = [...]string{
	"januar", "februar", "marts", "april", "maj", "juni",
	"juli", "august", "september", "oktober", "november", "december",
}

func danishMonth(m time.Month) string {
	return danishMonths[int(m)-1]
}
