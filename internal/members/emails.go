package members

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// MatchGroup names a set of members to build an e-mail list for
type MatchGroup struct {
	Name    string   `json:"name"`
	Matches []string `json:"matches"`
	Color   string   `json:"color,omitempty"`
}

// LoadGroups reads the match-group definitions
func LoadGroups(path string) ([]MatchGroup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read match groups %s: %w", path, err)
	}

	var groups []MatchGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("failed to parse match groups %s: %w", path, err)
	}

	return groups, nil
}

// BuildEmailIndex builds a normalized-name to e-mail map. Duplicate
// names with conflicting e-mails keep the first non-empty address, with
// a warning, the same way the membership office has always resolved it.
func BuildEmailIndex(members []Member, logger *zap.Logger) map[string]string {
	index := make(map[string]string)

	for _, m := range members {
		key := Normalize(m.Name)
		if key == "" {
			if m.Email != "" {
				logger.Warn("Row has e-mail but no name, ignored",
					zap.String("email", m.Email))
			}
			continue
		}

		prev, seen := index[key]
		if !seen {
			index[key] = m.Email
			continue
		}
		if prev != "" && m.Email != "" && prev != m.Email {
			logger.Warn("Duplicate name with different e-mails, keeping first",
				zap.String("name", m.Name),
				zap.String("kept", prev),
				zap.String("dropped", m.Email))
		} else if prev == "" && m.Email != "" {
			index[key] = m.Email
		}
	}

	return index
}

// FormatEntry formats one list entry: "Name" <email>, with a visible
// placeholder when the e-mail is missing.
func FormatEntry(name, email string) string {
	if email == "" {
		return fmt.Sprintf("%q <mangler email>", name)
	}
	return fmt.Sprintf("%q <%s>", name, email)
}

// GroupLine renders one group's e-mail list in match order. Members
// missing from the index are included without an address and warned
// about.
func GroupLine(group MatchGroup, index map[string]string, logger *zap.Logger) string {
	entries := make([]string, 0, len(group.Matches))
	for _, person := range group.Matches {
		key := Normalize(person)
		email, ok := index[key]
		if !ok {
			logger.Warn("Person not found in member spreadsheet",
				zap.String("group", group.Name),
				zap.String("person", person))
		}
		entries = append(entries, FormatEntry(person, email))
	}
	return group.Name + ": " + strings.Join(entries, ", ")
}
