package members

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/madsdyd/grv-scripts/pkg/random"
)

// Test fixtures for the other commands: a synthetic membership
// spreadsheet with plausible Gladsaxe addresses, so the real member
// file never has to leave the membership system during development.

var postalCodes = []struct {
	Code string
	City string
}{
	{"2800", "Kongens Lyngby"},
	{"2860", "Søborg"},
	{"2880", "Bagsværd"},
}

var postalWeights = []float64{0.1, 0.35, 0.55}

// Real street names per postal code, so most generated addresses
// actually geocode.
var roadsByPostalCode = map[string][]string{
	"2800": {"Nybro Vænge", "Sandkrogen", "Mogens Alle", "Møllevænget", "Nørgaardsvej", "Stengårds Allé", "Christoffers Alle", "Gammelmosevej", "Amundsensvej"},
	"2860": {"Buddingevej", "Gladsaxevej", "Mørkhøjvej", "Søborg Hovedgade", "Grønnemose Alle", "Maglestien", "Kildebakken", "Vandtårnsvej", "Wergelands Alle", "Niels Finsens Alle", "Høje Gladsaxe", "Rugmarken"},
	"2880": {"Aldershvilevej", "Bagsværd Hovedgade", "Bondehavevej", "Elmevænget", "Krogmosevej", "Skovalleen", "Skovdiget", "Vadstrupvej", "Værebrovej", "Østerhegn"},
}

var firstNames = []string{"Aksel", "Astrid", "Freja", "Emil", "Lærke", "Rasmus", "Karen", "Malthe", "Sofie", "Mikkel", "Karla", "Sigrid", "Viggo", "Jens", "Emma", "Gustav", "Katinka", "Matilde", "Martin"}

var lastNameAffixes = []string{"Frihed", "Lighed", "Velfærd", "Klima", "Tolerans", "Bro", "Mangfold", "Liberal", "Social", "Åben", "Kreativ", "Forandring", "Udvikling"}

var memberTypes = []string{"Medlem", "Støttemedlem", "Æresmedlem"}

// SynthMember is one generated spreadsheet row
type SynthMember struct {
	MemberType  string
	StartDate   time.Time
	MemberNo    string
	FirstJoined time.Time
	Name        string
	Email       string
	Mobile      string
	Phone       string
	Street      string
	PostalCity  string
	Birthday    *time.Time
}

// Generate produces n synthetic members; the same seed gives the same
// members.
func Generate(n int, seed int64) []SynthMember {
	rnd := random.New(seed)

	members := make([]SynthMember, 0, n)
	for i := 1; i <= n; i++ {
		first := rnd.Pick(firstNames)
		last := rnd.Pick(lastNameAffixes) + strings.ToLower(rnd.Pick(lastNameAffixes))

		postal := postalCodes[rnd.Weighted(postalWeights)]
		street := fmt.Sprintf("%s %d", rnd.Pick(roadsByPostalCode[postal.Code]), rnd.IntBetween(1, 100))

		var birthday *time.Time
		if rnd.Chance(0.8) {
			b := rnd.DateBetween(1950, 2000)
			birthday = &b
		}

		members = append(members, SynthMember{
			MemberType:  rnd.Pick(memberTypes),
			StartDate:   rnd.DateBetween(2020, 2024),
			MemberNo:    fmt.Sprintf("%d", 10000000+i),
			FirstJoined: rnd.DateBetween(2010, 2020),
			Name:        first + " " + last,
			Email:       fmt.Sprintf("%s.%s@example.com", strings.ToLower(first), strings.ToLower(last)),
			Mobile:      danishPhone(rnd),
			Phone:       danishPhone(rnd),
			Street:      street,
			PostalCity:  postal.Code + " " + postal.City,
			Birthday:    birthday,
		})
	}

	return members
}

// danishPhone generates an 8-digit Danish number, sometimes prefixed
// with +45, sometimes left blank like real registrations.
func danishPhone(rnd *random.Source) string {
	if rnd.Chance(0.2) {
		return ""
	}
	number := fmt.Sprintf("%d", rnd.IntBetween(10000000, 99999999))
	if rnd.Chance(0.3) {
		return "+45 " + number
	}
	return number
}

var synthHeaders = []string{
	"Medlemstype",
	"Startdato for aktuel medlemstype",
	"Medlemsnr.",
	"Første indmeldelsesdato",
	"Navn",
	"E-mail",
	"Mobil",
	"Telefon",
	"Vej, husnr. og evt. etage",
	"Postnummer og by",
	"Fødselsdag",
}

// WriteSynthetic writes a synthetic member spreadsheet in the exact
// shape of the membership export: merged "Adresse" banner over the
// address columns in row 1, headers in row 2, data from row 3, date
// columns formatted DD-MM-YYYY.
func WriteSynthetic(path string, n int, seed int64, logger *zap.Logger) error {
	members := Generate(n, seed)

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	if err := f.MergeCell(sheet, "I1", "J1"); err != nil {
		return fmt.Errorf("failed to merge banner cells: %w", err)
	}
	if err := f.SetCellValue(sheet, "I1", "Adresse"); err != nil {
		return fmt.Errorf("failed to set banner: %w", err)
	}

	for col, header := range synthHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header %q: %w", header, err)
		}
	}

	dateFormat := "DD-MM-YYYY"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFormat})
	if err != nil {
		return fmt.Errorf("failed to create date style: %w", err)
	}

	for i, m := range members {
		row := i + 3
		values := []interface{}{
			m.MemberType,
			m.StartDate,
			m.MemberNo,
			m.FirstJoined,
			m.Name,
			m.Email,
			m.Mobile,
			m.Phone,
			m.Street,
			m.PostalCity,
		}
		if m.Birthday != nil {
			values = append(values, *m.Birthday)
		} else {
			values = append(values, "")
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	lastRow := len(members) + 2
	for _, col := range []string{"B", "D", "K"} {
		from := fmt.Sprintf("%s3", col)
		to := fmt.Sprintf("%s%d", col, lastRow)
		if err := f.SetCellStyle(sheet, from, to, dateStyle); err != nil {
			return fmt.Errorf("failed to style date column %s: %w", col, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save spreadsheet: %w", err)
	}

	logger.Info("Synthetic member data written",
		zap.String("file", path),
		zap.Int("members", len(members)),
		zap.Int64("seed", seed))

	return nil
}
