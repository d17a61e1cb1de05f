package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/mwiater/travvy/internal/tools"
)

func TestGetJSONDecodesAndSendsHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/items" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "paris" {
			t.Errorf("unexpected query %q", got)
		}
		if got := r.Header.Get("X-API-Key"); got != "secret" {
			t.Errorf("unexpected api key header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Paris"}`))
	}))
	defer server.Close()

	c := New("test", server.URL+"/", time.Second, http.Header{"X-API-Key": {"secret"}})
	var out struct {
		Name string `json:"name"`
	}
	if err := c.GetJSON(context.Background(), "Unable to search", "/v1/items", url.Values{"q": {"paris"}}, &out); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if out.Name != "Paris" {
		t.Fatalf("unexpected payload %+v", out)
	}
}

func TestGetJSONAbsoluteURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New("test", "http://unused.invalid", time.Second, nil)
	if err := c.GetJSON(context.Background(), "fetch", server.URL+"/abs", nil, &struct{}{}); err != nil {
		t.Fatalf("GetJSON absolute: %v", err)
	}
}

func TestGetJSONStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := New("test", server.URL, time.Second, nil)
	err := c.GetJSON(context.Background(), "Unable to fetch forecast", "/x", nil, &struct{}{})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Unable to fetch forecast: service returned 503" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if tools.KindOf(err) != tools.KindProvider {
		t.Fatalf("expected provider kind, got %s", tools.KindOf(err))
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusServiceUnavailable || !strings.Contains(se.Body, "maintenance") {
		t.Fatalf("expected StatusError with body, got %#v", err)
	}
}

func TestGetJSONMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	c := New("test", server.URL, time.Second, nil)
	err := c.GetJSON(context.Background(), "Unable to search", "/", nil, &struct{}{})
	if tools.KindOf(err) != tools.KindProvider || !strings.Contains(err.Error(), "malformed response") {
		t.Fatalf("expected malformed provider error, got %v", err)
	}
}

func TestGetJSONTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	timeout := 100 * time.Millisecond
	c := New("test", server.URL, timeout, nil)

	start := time.Now()
	err := c.GetJSON(context.Background(), "Unable to fetch", "/slow", nil, &struct{}{})
	elapsed := time.Since(start)

	if tools.KindOf(err) != tools.KindTimeout {
		t.Fatalf("expected timeout kind, got %v (%s)", err, tools.KindOf(err))
	}
	if elapsed > timeout+time.Second {
		t.Fatalf("call took %v, expected about %v", elapsed, timeout)
	}
}

func TestGetJSONUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := server.URL
	server.Close()

	c := New("test", addr, time.Second, nil)
	err := c.GetJSON(context.Background(), "Unable to fetch", "/", nil, nil)
	if tools.KindOf(err) != tools.KindProvider || !strings.Contains(err.Error(), "could not reach service") {
		t.Fatalf("expected unreachable provider error, got %v", err)
	}
}

func TestRedactHidesKeys(t *testing.T) {
	u, _ := url.Parse("https://maps.example.com/geocode/json?address=x&key=abc")
	got := redact(u)
	if strings.Contains(got, "abc") || !strings.Contains(got, "key=REDACTED") {
		t.Fatalf("key not redacted: %s", got)
	}
}
