package booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mwiater/travvy/internal/tools"
)

func TestSearchDestinations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/hotels/searchDestination" || r.URL.Query().Get("query") != "Paris" {
			t.Errorf("unexpected request %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"status":true,"data":[{"name":"Paris","dest_id":"-1456928","city_ufi":-1456928,"country":"France","latitude":48.85}]}`))
	}))
	defer server.Close()

	dests, err := New("booking-com15.p.rapidapi.com", server.URL, "k", time.Second).SearchDestinations(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("SearchDestinations: %v", err)
	}
	if len(dests) != 1 || dests[0].CityUFI != "-1456928" || dests[0].Longitude != nil {
		t.Fatalf("unexpected destinations %+v", dests)
	}
}

func TestSearchHotels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("search_type") != "CITY" || q.Get("arrival_date") != "2025-03-01" || q.Get("adults") != "2" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"status":true,"data":{"hotels":[{"hotel_id":42,"property":{"name":"Hotel Lutetia","reviewScore":8.9}}]}}`))
	}))
	defer server.Close()

	hotels, err := New("h", server.URL, "k", time.Second).SearchHotels(context.Background(), HotelQuery{
		DestinationID: "-1456928", Checkin: "2025-03-01", Checkout: "2025-03-04", Adults: 2,
	})
	if err != nil {
		t.Fatalf("SearchHotels: %v", err)
	}
	if len(hotels) != 1 || hotels[0].HotelID != "42" || hotels[0].Property.Name != "Hotel Lutetia" {
		t.Fatalf("unexpected hotels %+v", hotels)
	}
}

func TestMissingKeyIsConfigurationError(t *testing.T) {
	_, err := New("h", "http://127.0.0.1:1", "", time.Second).SearchDestinations(context.Background(), "Paris")
	if tools.KindOf(err) != tools.KindConfiguration {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
