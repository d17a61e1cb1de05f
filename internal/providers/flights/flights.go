// internal/providers/flights/flights.go
// Package flights queries a flight-search gateway that scrapes Google Flights
// and exposes the itineraries as JSON.
package flights

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mwiater/travvy/internal/providers/rest"
	"github.com/mwiater/travvy/internal/tools"
)

// Client queries the gateway. The key travels in the X-API-Key header.
type Client struct {
	rest   *rest.Client
	hasKey bool
}

// New returns a client for baseURL.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	header := http.Header{}
	if apiKey != "" {
		header.Set("X-API-Key", apiKey)
	}
	return &Client{rest: rest.New("FLIGHTS", baseURL, timeout, header), hasKey: apiKey != ""}
}

// Query selects one-way itineraries between two airports on one date.
type Query struct {
	Origin        string
	Destination   string
	Date          string
	Trip          string
	Seat          string
	Adults        int
	Children      int
	InfantsInSeat int
	InfantsOnLap  int
}

// Result is the gateway payload. CurrentPrice is the route's price level, e.g. "low".
type Result struct {
	CurrentPrice string   `json:"current_price"`
	Flights      []Flight `json:"flights"`
}

// Flight is one itinerary. Departure and arrival look like "9:40 AM on Sat, Apr 5".
type Flight struct {
	Name             string `json:"name"`
	Price            string `json:"price"`
	Departure        string `json:"departure"`
	Arrival          string `json:"arrival"`
	ArrivalTimeAhead string `json:"arrival_time_ahead"`
	Duration         string `json:"duration"`
	Stops            *Stops `json:"stops"`
	Delay            string `json:"delay"`
	IsBest           bool   `json:"is_best"`
}

// Search runs one query against the gateway.
func (c *Client) Search(ctx context.Context, q Query) (Result, error) {
	if !c.hasKey {
		return Result{}, tools.Configurationf("FLIGHTS_API_KEY is not configured")
	}
	params := url.Values{}
	params.Set("from", q.Origin)
	params.Set("to", q.Destination)
	params.Set("date", q.Date)
	params.Set("trip", q.Trip)
	params.Set("seat", q.Seat)
	params.Set("adults", strconv.Itoa(q.Adults))
	params.Set("children", strconv.Itoa(q.Children))
	params.Set("infants_in_seat", strconv.Itoa(q.InfantsInSeat))
	params.Set("infants_on_lap", strconv.Itoa(q.InfantsOnLap))

	var res Result
	if err := c.rest.GetJSON(ctx, "Unable to search flights", "/flights", params, &res); err != nil {
		return Result{}, err
	}
	return res, nil
}
