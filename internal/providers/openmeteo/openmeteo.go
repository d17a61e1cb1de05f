// internal/providers/openmeteo/openmeteo.go
// Package openmeteo geocodes a place name with Nominatim and reads current
// conditions for it from Open-Meteo.
package openmeteo

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mwiater/travvy/internal/providers/rest"
	"github.com/mwiater/travvy/internal/tools"
)

// Client wraps both services used by the current-weather lookup.
type Client struct {
	geo     *rest.Client
	weather *rest.Client
}

// New returns a client. Nominatim's usage policy requires an identifying User-Agent.
func New(nominatimURL, openMeteoURL, userAgent string, timeout time.Duration) *Client {
	header := http.Header{}
	header.Set("User-Agent", userAgent)
	return &Client{
		geo:     rest.New("NOMINATIM", nominatimURL, timeout, header),
		weather: rest.New("OPEN-METEO", openMeteoURL, timeout, header.Clone()),
	}
}

// Bound limits ctx to one request timeout, for a Geocode and Current pair.
func (c *Client) Bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return c.geo.Bound(ctx)
}

// Place is a geocoded location.
type Place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Forecast is the subset of the Open-Meteo forecast response the formatter renders.
// Values are pointers so that an omitted variable stays distinguishable from zero.
type Forecast struct {
	Timezone     string `json:"timezone"`
	CurrentUnits struct {
		Temperature         string `json:"temperature_2m"`
		RelativeHumidity    string `json:"relative_humidity_2m"`
		Precipitation       string `json:"precipitation"`
		CloudCover          string `json:"cloud_cover"`
		WindSpeed10M        string `json:"wind_speed_10m"`
		ApparentTemperature string `json:"apparent_temperature"`
	} `json:"current_units"`
	Current struct {
		Time                string   `json:"time"`
		Temperature         *float64 `json:"temperature_2m"`
		RelativeHumidity    *float64 `json:"relative_humidity_2m"`
		IsDay               *int     `json:"is_day"`
		Precipitation       *float64 `json:"precipitation"`
		CloudCover          *float64 `json:"cloud_cover"`
		WindSpeed10M        *float64 `json:"wind_speed_10m"`
		ApparentTemperature *float64 `json:"apparent_temperature"`
	} `json:"current"`
	DailyUnits struct {
		TemperatureMax   string `json:"temperature_2m_max"`
		TemperatureMin   string `json:"temperature_2m_min"`
		PrecipitationSum string `json:"precipitation_sum"`
	} `json:"daily_units"`
	Daily struct {
		Time             []string  `json:"time"`
		TemperatureMax   []float64 `json:"temperature_2m_max"`
		TemperatureMin   []float64 `json:"temperature_2m_min"`
		Sunrise          []string  `json:"sunrise"`
		Sunset           []string  `json:"sunset"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

const (
	currentVars = "temperature_2m,relative_humidity_2m,is_day,precipitation,cloud_cover,wind_speed_10m,apparent_temperature"
	dailyVars   = "temperature_2m_max,temperature_2m_min,sunrise,sunset,precipitation_sum"
)

// Geocode returns the best Nominatim match for location.
func (c *Client) Geocode(ctx context.Context, location string) (Place, error) {
	q := url.Values{}
	q.Set("q", location)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")

	var places []Place
	if err := c.geo.GetJSON(ctx, "Unable to geocode location", "/search", q, &places); err != nil {
		return Place{}, err
	}
	if len(places) == 0 || strings.TrimSpace(places[0].Lat) == "" || strings.TrimSpace(places[0].Lon) == "" {
		return Place{}, tools.Validationf("location not found: '%s'", location)
	}
	return places[0], nil
}

// Current returns today's conditions at a geocoded place in imperial units.
func (c *Client) Current(ctx context.Context, p Place) (Forecast, error) {
	q := url.Values{}
	q.Set("latitude", p.Lat)
	q.Set("longitude", p.Lon)
	q.Set("current", currentVars)
	q.Set("daily", dailyVars)
	q.Set("timezone", "auto")
	q.Set("forecast_days", "1")
	q.Set("wind_speed_unit", "mph")
	q.Set("temperature_unit", "fahrenheit")

	var f Forecast
	if err := c.weather.GetJSON(ctx, "Unable to fetch current weather", "/v1/forecast", q, &f); err != nil {
		return Forecast{}, err
	}
	return f, nil
}
