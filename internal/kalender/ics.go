package kalender

import (
	"fmt"
	"io"
	"os"

	ics "github.com/arran4/golang-ical"
)

// colorProperty carries the kalendersiden color on exported events so a
// later import can round-trip it.
const colorProperty = "X-GRV-COLOR"

// WriteICS serializes the resolved events as all-day VEVENTs, for
// members who prefer subscribing in their own calendar application over
// the kalendersiden page.
func WriteICS(w io.Writer, events []ResolvedEvent) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//grv-scripts//kalender//DA")

	for i, ev := range events {
		uid := fmt.Sprintf("%s-%d@grv-scripts", ev.Date.Format("20060102"), i)
		e := cal.AddEvent(uid)
		e.SetAllDayStartAt(ev.Date)
		e.SetAllDayEndAt(ev.Date.AddDate(0, 0, 1))
		e.SetSummary(ev.Label)
		if ev.Color != "" {
			e.SetProperty(ics.ComponentProperty(colorProperty), ev.Color)
		}
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("failed to serialize ICS: %w", err)
	}
	return nil
}

// WriteICSFile writes the ICS export to path.
func WriteICSFile(path string, events []ResolvedEvent) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create ICS file: %w", err)
	}

	if err := WriteICS(f, events); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close ICS file: %w", err)
	}
	return nil
}
