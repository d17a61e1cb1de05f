package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mwiater/travvy/internal/tools"
)

func TestGetEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-RapidAPI-Host") != "irctc1.p.rapidapi.com" || r.Header.Get("X-RapidAPI-Key") != "key" {
			t.Errorf("missing rapidapi headers: %v", r.Header)
		}
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"status":true,"message":"Success","data":[{"name":"x"}]}`))
		case "/rejected":
			_, _ = w.Write([]byte(`{"status":false,"message":[{"pnrNumber":"Invalid PNR"}]}`))
		case "/empty":
			_, _ = w.Write([]byte(`{"status":true,"data":null}`))
		}
	}))
	defer server.Close()

	c := NewRapidAPI("IRCTC", "irctc1.p.rapidapi.com", server.URL, "key", time.Second)

	var out []struct {
		Name string `json:"name"`
	}
	if err := c.GetEnvelope(context.Background(), "Unable to fetch", "/ok", nil, &out); err != nil {
		t.Fatalf("ok: %v", err)
	}
	if len(out) != 1 || out[0].Name != "x" {
		t.Fatalf("unexpected data %+v", out)
	}

	err := c.GetEnvelope(context.Background(), "Unable to fetch PNR status", "/rejected", nil, &out)
	if tools.KindOf(err) != tools.KindProvider || err.Error() != "Unable to fetch PNR status: pnrNumber: Invalid PNR" {
		t.Fatalf("unexpected rejection error %v", err)
	}

	out = nil
	if err := c.GetEnvelope(context.Background(), "Unable to fetch", "/empty", nil, &out); err != nil || out != nil {
		t.Fatalf("expected empty data to leave out untouched, got %v %v", out, err)
	}
}

func TestNewRapidAPIDefaultsBaseURL(t *testing.T) {
	c := NewRapidAPI("BOOKING", "booking-com15.p.rapidapi.com", "", "k", time.Second)
	if c.BaseURL != "https://booking-com15.p.rapidapi.com" {
		t.Fatalf("unexpected base url %s", c.BaseURL)
	}
}
