package kalender

import (
	"strings"
	"testing"
)

func TestParsePlanGroupShape(t *testing.T) {
	plan := mustPlan(t, `
møde:
  - navn: Bestyrelsesmøde
    farve: "#FF0000"
    2024:
      - "26. november"
    2025:
      - "7. januar"
    adhoc:
      - dato: "26. november 2024"
        label: "Bestyrelses-julemøde"
`)

	if len(plan.Groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(plan.Groups))
	}
	g := plan.Groups[0]
	if g.Name != "Bestyrelsesmøde" || g.Color != "#FF0000" {
		t.Errorf("group = %+v", g)
	}
	if len(g.Years) != 2 || g.Years[0].Year != 2024 || g.Years[1].Year != 2025 {
		t.Errorf("years not preserved in declaration order: %+v", g.Years)
	}
	if len(g.AdHoc) != 1 || g.AdHoc[0].Label != "Bestyrelses-julemøde" {
		t.Errorf("adhoc = %+v", g.AdHoc)
	}
}

func TestParsePlanErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "group without name",
			yaml: `
møde:
  - farve: "#FF0000"
    2024:
      - "26. november"
`,
			wantErr: "navn",
		},
		{
			name: "group with unknown key",
			yaml: `
møde:
  - navn: Bestyrelsesmøde
    farve: "#FF0000"
    formand: Jens
`,
			wantErr: "unknown key",
		},
		{
			name: "standard rules without governing year",
			yaml: `
standard:
  - "1. januar: Nytårsdag"
`,
			wantErr: "år",
		},
		{
			name: "event missing color",
			yaml: `
begivenhed:
  - dato: "1. marts 2025"
    label: Generalforsamling
`,
			wantErr: "farve",
		},
		{
			name: "bad anchor value",
			yaml: `
farver:
  bestyrelse: rødlig
`,
			wantErr: "RRGGBB",
		},
		{
			name: "unknown anchor reference",
			yaml: `
møde:
  - navn: Bestyrelsesmøde
    farve: ukendtfarve
`,
			wantErr: "anchor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePlan([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}
