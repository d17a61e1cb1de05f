package nws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mwiater/travvy/internal/tools"
)

func TestForecastFollowsPointsLink(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "travvy-test" {
			t.Errorf("missing user agent, got %q", ua)
		}
		switch r.URL.Path {
		case "/points/37.7749,-122.4194":
			_, _ = w.Write([]byte(`{"properties":{"forecast":"` + server.URL + `/gridpoints/MTR/85,105/forecast"}}`))
		case "/gridpoints/MTR/85,105/forecast":
			_, _ = w.Write([]byte(`{"properties":{"periods":[{"name":"Tonight","temperature":51,"temperatureUnit":"F"},{"name":"Monday"}]}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := New(server.URL, "travvy-test", time.Second)
	periods, err := c.Forecast(context.Background(), 37.77490001, -122.4194)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if len(periods) != 2 || periods[0].Name != "Tonight" || periods[1].Temperature != nil {
		t.Fatalf("unexpected periods %+v", periods)
	}
	if *periods[0].Temperature != 51 {
		t.Fatalf("unexpected temperature %v", *periods[0].Temperature)
	}
}

func TestForecastWithoutGridIsProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"properties":{}}`))
	}))
	defer server.Close()

	_, err := New(server.URL, "ua", time.Second).Forecast(context.Background(), 10, 10)
	if tools.KindOf(err) != tools.KindProvider {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestActiveAlertsUppercasesState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/alerts/active/area/CA") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"features":[{"properties":{"event":"Wind Advisory","severity":"Moderate"}},{"properties":{}}]}`))
	}))
	defer server.Close()

	alerts, err := New(server.URL, "ua", time.Second).ActiveAlerts(context.Background(), "ca")
	if err != nil {
		t.Fatalf("ActiveAlerts: %v", err)
	}
	if len(alerts) != 2 || alerts[0].Event != "Wind Advisory" {
		t.Fatalf("unexpected alerts %+v", alerts)
	}
}

func TestForecastChainSharesOneTimeout(t *testing.T) {
	release := make(chan struct{})
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/points/40,-75":
			time.Sleep(400 * time.Millisecond)
			_, _ = w.Write([]byte(`{"properties":{"forecast":"` + server.URL + `/gridpoints/PHI/1,1/forecast"}}`))
		default:
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}
	}))
	defer server.Close()
	defer close(release)

	timeout := 500 * time.Millisecond
	c := New(server.URL, "travvy-test", timeout)

	start := time.Now()
	_, err := c.Forecast(context.Background(), 40, -75)
	elapsed := time.Since(start)

	if tools.KindOf(err) != tools.KindTimeout {
		t.Fatalf("expected timeout kind, got %v (%s)", err, tools.KindOf(err))
	}
	if elapsed > 800*time.Millisecond {
		t.Fatalf("forecast chain took %v, expected about %v", elapsed, timeout)
	}
}
