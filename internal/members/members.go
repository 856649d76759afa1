package members

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Column names in the membership export. The export has a merged
// "Adresse" banner in row 1, so the real headers sit in row 2.
const (
	colName       = "Navn"
	colEmail      = "E-mail"
	colStreet     = "Vej, husnr. og evt. etage"
	colPostalCity = "Postnummer og by"
	colBirthday   = "Fødselsdag"
)

// Member is one row of the membership spreadsheet
type Member struct {
	Name       string
	Email      string
	Street     string
	PostalCity string
	Birthday   string
}

// HasAddress reports whether both address fields are filled in
func (m Member) HasAddress() bool {
	return m.Street != "" && m.PostalCity != ""
}

// CleanAddress returns the member's address with unit details after the
// first comma stripped, joined with the postal city. Geocoders resolve
// "Buddingevej 1, 2860 Søborg" but choke on floor/door suffixes.
func (m Member) CleanAddress() string {
	street := m.Street
	if idx := strings.Index(street, ","); idx >= 0 {
		street = street[:idx]
	}
	return strings.TrimSpace(street) + ", " + m.PostalCity
}

// DisplayBirthday returns the birthday, or a placeholder when unknown
func (m Member) DisplayBirthday() string {
	if m.Birthday == "" {
		return "Fødselsdato ukendt"
	}
	return m.Birthday
}

// Normalize normalizes a name for robust matching: trim plus casefold.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Load reads the membership spreadsheet. The first sheet is used; the
// header row is expected in row 2 below the merged banner row.
func Load(path string, logger *zap.Logger) ([]Member, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open member spreadsheet %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("spreadsheet %s has no header row", path)
	}

	header := rows[1]
	index := make(map[string]int)
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colName, colEmail} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("spreadsheet %s is missing column %q", path, required)
		}
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var members []Member
	for _, row := range rows[2:] {
		m := Member{
			Name:       cell(row, colName),
			Email:      cell(row, colEmail),
			Street:     cell(row, colStreet),
			PostalCity: cell(row, colPostalCity),
			Birthday:   cell(row, colBirthday),
		}
		if m.Name == "" && m.Email == "" {
			continue
		}
		members = append(members, m)
	}

	logger.Info("Member spreadsheet loaded",
		zap.String("file", path),
		zap.Int("members", len(members)))

	return members, nil
}
