package kort

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/madsdyd/grv-scripts/internal/geocode"
)

// Pin is one marker on the map. Several members can share a coordinate
// when they live at the same address.
type Pin struct {
	Lat     float64
	Lon     float64
	Members []PinMember
}

// PinMember is the popup content for one member at a pin
type PinMember struct {
	Name     string
	Address  string
	Birthday string
}

// MapData is everything the map page needs
type MapData struct {
	KommuneNavn string
	CenterLat   float64
	CenterLon   float64
	Zoom        int
	Pins        []Pin
	Failed      []string
	Boundaries  template.JS
}

// BuildPins groups geocoded members by coordinate so shared addresses
// become one marker with a combined popup.
func BuildPins(located map[string]geocode.Coord, members map[string][]PinMember) []Pin {
	byCoord := make(map[geocode.Coord][]PinMember)
	for address, coord := range located {
		byCoord[coord] = append(byCoord[coord], members[address]...)
	}

	pins := make([]Pin, 0, len(byCoord))
	for coord, list := range byCoord {
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
		pins = append(pins, Pin{Lat: coord.Lat, Lon: coord.Lon, Members: list})
	}
	sort.Slice(pins, func(i, j int) bool {
		if pins[i].Lat != pins[j].Lat {
			return pins[i].Lat < pins[j].Lat
		}
		return pins[i].Lon < pins[j].Lon
	})

	return pins
}

// RenderHTML writes the member map as a single self-contained HTML page
// using Leaflet. The page is meant to be opened locally and never
// published, hence the warning banner.
func RenderHTML(path string, data MapData, boundaries json.RawMessage, logger *zap.Logger) error {
	if !json.Valid(boundaries) {
		return fmt.Errorf("municipality boundaries are not valid JSON")
	}
	data.Boundaries = template.JS(boundaries)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create map file %s: %w", path, err)
	}
	defer f.Close()

	if err := mapTemplate.Execute(f, data); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to render map: %w", err)
	}

	logger.Info("Member map written",
		zap.String("file", path),
		zap.Int("pins", len(data.Pins)),
		zap.Int("failed", len(data.Failed)))

	return nil
}

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html lang="da">
<head>
<meta charset="utf-8">
<title>Medlemskort: {{.KommuneNavn}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
  body { margin: 0; font-family: sans-serif; }
  #warning { background: #c0392b; color: white; padding: 8px 16px; }
  #map { height: 85vh; }
  #failed { padding: 8px 16px; }
</style>
</head>
<body>
<div id="warning">FORTROLIGT: kortet indeholder medlemsdata og m&aring; ikke deles.</div>
<div id="map"></div>
{{if .Failed}}
<div id="failed">
<strong>Adresser der ikke kunne findes:</strong>
<ul>
{{range .Failed}}<li>{{.}}</li>
{{end}}</ul>
</div>
{{end}}
<script>
var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLon}}], {{.Zoom}});
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

var kommune = {{.KommuneNavn}};
var boundaries = {{.Boundaries}};
L.geoJSON(boundaries, {
  style: function (feature) {
    if (feature.properties && feature.properties.label_dk === kommune) {
      return { color: '#2c3e50', weight: 2, fillColor: '#3498db', fillOpacity: 0.1 };
    }
    return { color: '#95a5a6', weight: 1, fillOpacity: 0 };
  }
}).addTo(map);

{{range .Pins}}
L.marker([{{.Lat}}, {{.Lon}}]).addTo(map).bindPopup(
  {{range $i, $m := .Members}}{{if $i}} + '<hr>' + {{end}}'<b>' + {{$m.Name}} + '</b><br>' + {{$m.Address}} + '<br>' + {{$m.Birthday}}{{end}}
);
{{end}}

map.whenReady(function () {
  document.body.setAttribute('data-ready', 'true');
});
</script>
</body>
</html>
`))
