package geocode

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geocache.json")
	logger := zap.NewNop()

	cache := NewCache(path, logger)
	if err := cache.Load(); err != nil {
		t.Fatalf("Load on missing file failed: %v", err)
	}

	cache.Put("Søborg Hovedgade 1, 2860 Søborg", Coord{Lat: 55.73, Lon: 12.50})
	if err := cache.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded := NewCache(path, logger)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	coord, ok := reloaded.Get("Søborg Hovedgade 1, 2860 Søborg")
	if !ok {
		t.Fatal("address missing after reload")
	}
	if coord.Lat != 55.73 || coord.Lon != 12.50 {
		t.Errorf("coord = %+v", coord)
	}
}

func TestLookup(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		switch r.URL.Query().Get("q") {
		case "Buddingevej 1, 2860 Søborg":
			fmt.Fprint(w, `[{"lat":"55.7366","lon":"12.5021","display_name":"Buddingevej 1"}]`)
		default:
			fmt.Fprint(w, `[]`)
		}
	}))
	defer server.Close()

	cache := NewCache(filepath.Join(t.TempDir(), "cache.json"), zap.NewNop())
	client := NewClient(server.URL, "test-agent", 0, cache, zap.NewNop())

	coord, ok, err := client.Lookup("Buddingevej 1, 2860 Søborg")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if coord.Lat != 55.7366 || coord.Lon != 12.5021 {
		t.Errorf("coord = %+v", coord)
	}

	// Second lookup must come from cache, not the server.
	if _, _, err := client.Lookup("Buddingevej 1, 2860 Søborg"); err != nil {
		t.Fatalf("cached Lookup failed: %v", err)
	}
	if requests != 1 {
		t.Errorf("server saw %d requests, want 1", requests)
	}

	// Unknown address is a miss, not an error.
	_, ok, err = client.Lookup("Atlantis Allé 1")
	if err != nil {
		t.Fatalf("Lookup miss errored: %v", err)
	}
	if ok {
		t.Error("expected a miss for unknown address")
	}
}
