package kalender

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFormatLine(t *testing.T) {
	tests := []struct {
		name string
		ev   ResolvedEvent
		want string
	}{
		{
			name: "group meeting line",
			ev:   ResolvedEvent{Date: day(2025, 1, 7), Label: "Bestyrelsesmøde", Color: "#FF0000", Slashes: 2},
			want: "//#FF0000 7.1.2025: Bestyrelsesmøde",
		},
		{
			name: "single slash marker",
			ev:   ResolvedEvent{Date: day(2025, 6, 5), Label: "Grundlovsdag", Color: "#00A000", Slashes: 1},
			want: "/#00A000 5.6.2025: Grundlovsdag",
		},
		{
			name: "flag marker",
			ev:   ResolvedEvent{Date: day(2025, 4, 9), Label: "Besættelsen", Color: "#FF0000", Flag: "flag", Slashes: 2},
			want: "//#FF0000 flag 9.4.2025: Besættelsen",
		},
		{
			name: "unmarked literal",
			ev:   ResolvedEvent{Date: day(2025, 12, 24), Label: "Juleaften"},
			want: "24.12.2025: Juleaften",
		},
		{
			name: "empty label omits separator",
			ev:   ResolvedEvent{Date: day(2025, 7, 2), Color: "#C0C0C0", Slashes: 1},
			want: "/#C0C0C0 2.7.2025",
		},
		{
			name: "no leading zeros",
			ev:   ResolvedEvent{Date: day(2024, 11, 26), Label: "Bestyrelses-julemøde", Color: "#FF0000", Slashes: 2},
			want: "//#FF0000 26.11.2024: Bestyrelses-julemøde",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLine(tt.ev); got != tt.want {
				t.Errorf("FormatLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteLines(t *testing.T) {
	events := []ResolvedEvent{
		{Date: day(2025, 1, 7), Label: "Bestyrelsesmøde", Color: "#FF0000", Slashes: 2},
		{Date: day(2025, 3, 1), Label: "Generalforsamling", Color: "#0000FF", Slashes: 2},
	}

	var buf bytes.Buffer
	if err := WriteLines(&buf, events); err != nil {
		t.Fatalf("WriteLines failed: %v", err)
	}

	want := "//#FF0000 7.1.2025: Bestyrelsesmøde\n//#0000FF 1.3.2025: Generalforsamling\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriteICS(t *testing.T) {
	events := []ResolvedEvent{
		{Date: day(2025, 1, 7), Label: "Bestyrelsesmøde", Color: "#FF0000", Slashes: 2},
	}

	var buf bytes.Buffer
	if err := WriteICS(&buf, events); err != nil {
		t.Fatalf("WriteICS failed: %v", err)
	}

	out := buf.String()
	for _, needle := range []string{"BEGIN:VCALENDAR", "BEGIN:VEVENT", "SUMMARY:Bestyrelsesmøde", "X-GRV-COLOR:#FF0000", "END:VCALENDAR"} {
		if !strings.Contains(out, needle) {
			t.Errorf("ICS output missing %q:\n%s", needle, out)
		}
	}
}

func TestResolveErrorProducesNoEvents(t *testing.T) {
	plan := mustPlan(t, `
møde:
  - navn: Bestyrelsesmøde
    farve: "#FF0000"
    2025:
      - "29. februar"
`)

	events, err := Resolve(plan, zap.NewNop())
	if err == nil {
		t.Fatal("expected resolve error")
	}
	if events != nil {
		t.Error("failed resolve returned partial events; callers would write an incomplete file")
	}
}

func TestWriteFile(t *testing.T) {
	outPath := t.TempDir() + "/kalender.txt"
	events := []ResolvedEvent{
		{Date: day(2025, 1, 7), Label: "Bestyrelsesmøde", Color: "#FF0000", Slashes: 2},
	}

	if err := WriteFile(outPath, events); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output failed: %v", err)
	}
	if string(data) != "//#FF0000 7.1.2025: Bestyrelsesmøde\n" {
		t.Errorf("file content = %q", string(data))
	}
}
