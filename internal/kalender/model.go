package kalender

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Plan is the parsed meeting plan: the full declarative input for one
// resolver run. The file is hand-maintained, so every load validates
// eagerly and errors carry enough context to fix the YAML by hand.
type Plan struct {
	// Year is the governing year for standard rules without an explicit
	// year of their own.
	Year int `yaml:"år"`

	// Colors maps color anchor names (e.g. "bestyrelse") to hex values.
	// Group and event colors may name an anchor instead of a literal hex
	// color.
	Colors map[string]string `yaml:"farver"`

	// Standard is the flat list of standard rule strings (holidays,
	// movable feasts, week rules, ranges).
	Standard []string `yaml:"standard"`

	// Groups holds the recurring meeting series.
	Groups []Group `yaml:"møde"`

	// Events holds standalone full-date events.
	Events []Event `yaml:"begivenhed"`
}

// Group is a named recurring meeting series with a shared color,
// per-year day-month lists and optional ad-hoc overrides.
type Group struct {
	Name  string
	Color string
	Years []YearEntries
	AdHoc []AdHocEntry
}

// YearEntries is the ordered day-month list declared under one year key.
type YearEntries struct {
	Year    int
	Entries []string
}

// AdHocEntry is a one-off full-date override or addition for a group.
type AdHocEntry struct {
	Date  string `yaml:"dato"`
	Label string `yaml:"label"`
}

// Event is a standalone event with its own label and color.
type Event struct {
	Date  string `yaml:"dato"`
	Label string `yaml:"label"`
	Color string `yaml:"farve"`
}

// UnmarshalYAML decodes a meeting group. Year lists live under dynamic
// integer keys next to the fixed navn/farve/adhoc keys, so the mapping
// is walked by hand. Year order in the file is preserved.
func (g *Group) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("meeting group must be a mapping, got %s", nodeKind(node))
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		val := node.Content[i+1]

		switch key.Value {
		case "navn":
			g.Name = val.Value
		case "farve":
			g.Color = val.Value
		case "adhoc":
			if err := val.Decode(&g.AdHoc); err != nil {
				return fmt.Errorf("group %q: invalid adhoc list: %w", g.Name, err)
			}
		default:
			year, err := strconv.Atoi(key.Value)
			if err != nil {
				return fmt.Errorf("group %q: unknown key %q (expected navn, farve, adhoc or a year)", g.Name, key.Value)
			}
			var entries []string
			if err := val.Decode(&entries); err != nil {
				return fmt.Errorf("group %q, year %d: expected a list of day-month entries: %w", g.Name, year, err)
			}
			g.Years = append(g.Years, YearEntries{Year: year, Entries: entries})
		}
	}

	if g.Name == "" || g.Color == "" {
		return fmt.Errorf("each meeting group must have 'navn' and 'farve' (got navn=%q)", g.Name)
	}

	return nil
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	default:
		return "unknown"
	}
}

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ResolveColor resolves a literal hex color or a named anchor from the
// plan's farver map.
func (p *Plan) ResolveColor(color string) (string, error) {
	if hexColorRe.MatchString(color) {
		return color, nil
	}
	if resolved, ok := p.Colors[color]; ok {
		if !hexColorRe.MatchString(resolved) {
			return "", fmt.Errorf("color anchor %q resolves to %q, not a #RRGGBB value", color, resolved)
		}
		return resolved, nil
	}
	return "", fmt.Errorf("color %q is neither a #RRGGBB value nor a known anchor", color)
}

// ParsePlan parses the YAML meeting plan and validates its overall shape.
func ParsePlan(data []byte) (*Plan, error) {
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse meeting plan YAML: %w", err)
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	return &plan, nil
}

// LoadPlan reads and parses a meeting plan file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read meeting plan: %w", err)
	}
	return ParsePlan(data)
}

// Validate checks the plan invariants that do not require resolution.
func (p *Plan) Validate() error {
	if len(p.Standard) > 0 && p.Year == 0 {
		return fmt.Errorf("'år' is required when the plan declares standard rules")
	}

	for name, value := range p.Colors {
		if !hexColorRe.MatchString(value) {
			return fmt.Errorf("color anchor %q must be a #RRGGBB value, got %q", name, value)
		}
	}

	for _, group := range p.Groups {
		if _, err := p.ResolveColor(group.Color); err != nil {
			return fmt.Errorf("group %q: %w", group.Name, err)
		}
		for _, adhoc := range group.AdHoc {
			if adhoc.Date == "" || adhoc.Label == "" {
				return fmt.Errorf("group %q: each adhoc entry must have 'dato' and 'label'", group.Name)
			}
		}
	}

	for _, event := range p.Events {
		if event.Date == "" || event.Label == "" || event.Color == "" {
			return fmt.Errorf("each begivenhed must have 'dato', 'label' and 'farve' (got dato=%q label=%q)", event.Date, event.Label)
		}
		if _, err := p.ResolveColor(event.Color); err != nil {
			return fmt.Errorf("begivenhed %q: %w", event.Label, err)
		}
	}

	return nil
}
