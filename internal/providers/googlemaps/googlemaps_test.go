package googlemaps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mwiater/travvy/internal/tools"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, "maps-key", time.Second)
}

func TestGeocode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/api/geocode/json" || r.URL.Query().Get("key") != "maps-key" || r.URL.Query().Get("address") != "1600 Amphitheatre Pkwy" {
			t.Errorf("unexpected request %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"formatted_address":"1600 Amphitheatre Pkwy, Mountain View, CA","place_id":"abc","geometry":{"location":{"lat":37.42,"lng":-122.08}}}]}`))
	})
	res, err := c.Geocode(context.Background(), "1600 Amphitheatre Pkwy")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if len(res) != 1 || res[0].PlaceID != "abc" || res[0].Geometry.Location.Lat != 37.42 {
		t.Fatalf("unexpected results %+v", res)
	}
}

func TestZeroResultsIsNotAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	})
	res, err := c.SearchPlaces(context.Background(), "nothing here", &LatLng{Lat: 1, Lng: 2}, 500)
	if err != nil || len(res) != 0 {
		t.Fatalf("expected empty success, got %v %v", res, err)
	}
}

func TestDeniedStatusIsProviderError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid."}`))
	})
	_, err := c.Directions(context.Background(), "a", "b", "driving")
	if tools.KindOf(err) != tools.KindProvider || !strings.Contains(err.Error(), "API key is invalid") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestPlaceDetailsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"NOT_FOUND"}`))
	})
	_, found, err := c.PlaceDetails(context.Background(), "missing")
	if err != nil || found {
		t.Fatalf("expected not found without error, got found=%v err=%v", found, err)
	}
}

func TestElevationJoinsLocations(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("locations"); got != "39.7391536,-104.9847034|36.455556,-116.866667" {
			t.Errorf("unexpected locations %q", got)
		}
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"elevation":1608.6},{"elevation":-50.8}]}`))
	})
	res, err := c.Elevation(context.Background(), []LatLng{{39.7391536, -104.9847034}, {36.455556, -116.866667}})
	if err != nil || len(res) != 2 || *res[1].Elevation != -50.8 {
		t.Fatalf("unexpected elevation %v %v", res, err)
	}
}

func TestMissingKey(t *testing.T) {
	c := New("http://127.0.0.1:1", "", time.Second)
	if _, err := c.Geocode(context.Background(), "x"); tools.KindOf(err) != tools.KindConfiguration {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
