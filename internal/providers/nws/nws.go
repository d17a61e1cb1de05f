// internal/providers/nws/nws.go
// Package nws reads forecasts and active alerts from the US National Weather Service.
package nws

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mwiater/travvy/internal/providers/rest"
	"github.com/mwiater/travvy/internal/tools"
)

// Client talks to api.weather.gov. NWS needs no key but rejects requests without a User-Agent.
type Client struct {
	rest *rest.Client
}

// New returns a client for baseURL.
func New(baseURL, userAgent string, timeout time.Duration) *Client {
	header := http.Header{}
	header.Set("User-Agent", userAgent)
	header.Set("Accept", "application/geo+json")
	return &Client{rest: rest.New("NWS", baseURL, timeout, header)}
}

// Period is one half-day forecast period. Every field may be absent.
type Period struct {
	Number           int      `json:"number"`
	Name             string   `json:"name"`
	Temperature      *float64 `json:"temperature"`
	TemperatureUnit  string   `json:"temperatureUnit"`
	WindSpeed        string   `json:"windSpeed"`
	WindDirection    string   `json:"windDirection"`
	ShortForecast    string   `json:"shortForecast"`
	DetailedForecast string   `json:"detailedForecast"`
}

// Alert carries the properties of one active alert feature.
type Alert struct {
	Event       string `json:"event"`
	AreaDesc    string `json:"areaDesc"`
	Severity    string `json:"severity"`
	Urgency     string `json:"urgency"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
}

type pointsResponse struct {
	Properties struct {
		Forecast string `json:"forecast"`
	} `json:"properties"`
}

type forecastResponse struct {
	Properties struct {
		Periods []Period `json:"periods"`
	} `json:"properties"`
}

type alertsResponse struct {
	Features []struct {
		Properties Alert `json:"properties"`
	} `json:"features"`
}

// Forecast resolves the forecast grid for a coordinate and returns its periods
// in the order NWS lists them. Both requests share one timeout.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) ([]Period, error) {
	ctx, cancel := c.rest.Bound(ctx)
	defer cancel()

	var points pointsResponse
	path := fmt.Sprintf("/points/%s,%s", coord(lat), coord(lon))
	if err := c.rest.GetJSON(ctx, "Unable to fetch forecast grid", path, nil, &points); err != nil {
		return nil, err
	}
	forecastURL := strings.TrimSpace(points.Properties.Forecast)
	if forecastURL == "" {
		return nil, tools.Providerf("Unable to fetch forecast: no forecast is published for %s,%s", coord(lat), coord(lon))
	}

	var forecast forecastResponse
	if err := c.rest.GetJSON(ctx, "Unable to fetch forecast", forecastURL, nil, &forecast); err != nil {
		return nil, err
	}
	return forecast.Properties.Periods, nil
}

// ActiveAlerts returns the active alerts for a two-letter state or territory code.
func (c *Client) ActiveAlerts(ctx context.Context, state string) ([]Alert, error) {
	var resp alertsResponse
	path := "/alerts/active/area/" + strings.ToUpper(strings.TrimSpace(state))
	if err := c.rest.GetJSON(ctx, "Unable to fetch alerts", path, nil, &resp); err != nil {
		return nil, err
	}
	alerts := make([]Alert, 0, len(resp.Features))
	for _, f := range resp.Features {
		alerts = append(alerts, f.Properties)
	}
	return alerts, nil
}

// coord renders a coordinate with at most four decimals, which is what /points accepts.
func coord(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}
