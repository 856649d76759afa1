package kort

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/madsdyd/grv-scripts/internal/geocode"
)

const testBoundaries = `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"label_dk":"Gladsaxe"},"geometry":{"type":"Polygon","coordinates":[[[12.4,55.7],[12.5,55.7],[12.5,55.8],[12.4,55.7]]]}}]}`

func TestFetchGeoJSONCaches(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(testBoundaries))
	}))
	defer server.Close()

	cache := filepath.Join(t.TempDir(), "municipalities.json")
	logger := zap.NewNop()

	first, err := FetchGeoJSON(server.URL, cache, logger)
	if err != nil {
		t.Fatalf("first fetch returned error: %v", err)
	}
	second, err := FetchGeoJSON(server.URL, cache, logger)
	if err != nil {
		t.Fatalf("second fetch returned error: %v", err)
	}

	if requests != 1 {
		t.Errorf("expected 1 server request, got %d", requests)
	}
	if string(first) != string(second) {
		t.Error("cached boundaries differ from fetched boundaries")
	}
}

func TestFetchGeoJSONRejectsBadResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	cache := filepath.Join(t.TempDir(), "municipalities.json")
	if _, err := FetchGeoJSON(server.URL, cache, zap.NewNop()); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
	if _, err := os.Stat(cache); !os.IsNotExist(err) {
		t.Error("invalid response must not be cached")
	}
}

func TestBuildPinsGroupsSharedAddresses(t *testing.T) {
	shared := geocode.Coord{Lat: 55.73, Lon: 12.47}
	located := map[string]geocode.Coord{
		"Buddingevej 1, 2860 Søborg": shared,
		"Skovalleen 12, 2880 Bagsværd": {Lat: 55.76, Lon: 12.45},
	}
	members := map[string][]PinMember{
		"Buddingevej 1, 2860 Søborg": {
			{Name: "Karen Frihedlighed", Address: "Buddingevej 1, 2860 Søborg"},
			{Name: "Aksel Frihedlighed", Address: "Buddingevej 1, 2860 Søborg"},
		},
		"Skovalleen 12, 2880 Bagsværd": {
			{Name: "Emil Klimabro", Address: "Skovalleen 12, 2880 Bagsværd"},
		},
	}

	pins := BuildPins(located, members)
	if len(pins) != 2 {
		t.Fatalf("expected 2 pins, got %d", len(pins))
	}

	var sharedPin *Pin
	for i := range pins {
		if pins[i].Lat == shared.Lat && pins[i].Lon == shared.Lon {
			sharedPin = &pins[i]
		}
	}
	if sharedPin == nil {
		t.Fatal("shared address pin not found")
	}
	if len(sharedPin.Members) != 2 {
		t.Fatalf("expected 2 members on shared pin, got %d", len(sharedPin.Members))
	}
	if sharedPin.Members[0].Name != "Aksel Frihedlighed" {
		t.Errorf("popup members not sorted by name: %q first", sharedPin.Members[0].Name)
	}
}

func TestRenderHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kort.html")
	data := MapData{
		KommuneNavn: "Gladsaxe",
		CenterLat:   55.7333,
		CenterLon:   12.4667,
		Zoom:        12,
		Pins: []Pin{
			{Lat: 55.73, Lon: 12.47, Members: []PinMember{
				{Name: "Karen Frihedlighed", Address: "Buddingevej 1, 2860 Søborg", Birthday: "01-02-1970"},
			}},
		},
		Failed: []string{"Ukendtvej 99, 2860 Søborg"},
	}

	if err := RenderHTML(path, data, []byte(testBoundaries), zap.NewNop()); err != nil {
		t.Fatalf("RenderHTML returned error: %v", err)
	}

	html, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read rendered map: %v", err)
	}
	page := string(html)

	for _, want := range []string{
		"FORTROLIGT",
		"leaflet",
		"label_dk",
		"Karen Frihedlighed",
		"Ukendtvej 99",
		`data-ready`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("rendered map missing %q", want)
		}
	}
}

func TestRenderHTMLRejectsInvalidBoundaries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kort.html")
	err := RenderHTML(path, MapData{KommuneNavn: "Gladsaxe"}, []byte("not json"), zap.NewNop())
	if err == nil {
		t.Fatal("expected error for invalid boundaries")
	}
}
