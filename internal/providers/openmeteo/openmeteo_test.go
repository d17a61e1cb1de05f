package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mwiater/travvy/internal/tools"
)

func TestGeocodeThenCurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			if r.URL.Query().Get("q") != "Boise, ID" {
				t.Errorf("unexpected query %q", r.URL.RawQuery)
			}
			_, _ = w.Write([]byte(`[{"lat":"43.6","lon":"-116.2","display_name":"Boise, Idaho"}]`))
		case "/v1/forecast":
			if r.URL.Query().Get("latitude") != "43.6" || r.URL.Query().Get("temperature_unit") != "fahrenheit" {
				t.Errorf("unexpected forecast query %q", r.URL.RawQuery)
			}
			_, _ = w.Write([]byte(`{"timezone":"America/Boise","current":{"temperature_2m":71.2},"current_units":{"temperature_2m":"°F"}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c := New(server.URL, server.URL, "travvy-test", time.Second)
	place, err := c.Geocode(context.Background(), "Boise, ID")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	f, err := c.Current(context.Background(), place)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if f.Timezone != "America/Boise" || f.Current.Temperature == nil || *f.Current.Temperature != 71.2 {
		t.Fatalf("unexpected forecast %+v", f)
	}
	if f.Current.RelativeHumidity != nil {
		t.Fatal("absent variable should stay nil")
	}
}

func TestGeocodeNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := New(server.URL, server.URL, "ua", time.Second).Geocode(context.Background(), "Atlantis")
	if tools.KindOf(err) != tools.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
