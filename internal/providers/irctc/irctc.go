// internal/providers/irctc/irctc.go
// Package irctc reads Indian Railways schedules, live status and bookings
// through the IRCTC RapidAPI service.
package irctc

import (
	"context"
	"net/url"
	"time"

	"github.com/mwiater/travvy/internal/providers/rest"
	"github.com/mwiater/travvy/internal/tools"
	"github.com/mwiater/travvy/internal/util"
)

// Client calls irctc1 on RapidAPI.
type Client struct {
	rest   *rest.Client
	hasKey bool
}

// New returns a client. baseURL may be empty to use https://{host}.
func New(host, baseURL, key string, timeout time.Duration) *Client {
	return &Client{rest: rest.NewRapidAPI("IRCTC", host, baseURL, key, timeout), hasKey: key != ""}
}

// Train is one scheduled service between two stations.
type Train struct {
	TrainNumber      rest.Text `json:"train_number"`
	TrainName        string    `json:"train_name"`
	FromStationName  string    `json:"from_station_name"`
	ToStationName    string    `json:"to_station_name"`
	DepartureTime    string    `json:"departure_time"`
	ArrivalTime      string    `json:"arrival_time"`
	FromSTD          string    `json:"from_std"`
	ToSTA            string    `json:"to_sta"`
	Duration         string    `json:"duration"`
	AvailableClasses []string  `json:"available_classes"`
	ClassType        []string  `json:"class_type"`
	RunDays          []string  `json:"run_days"`
}

// Departs returns the departure time under either field name the service uses.
func (t Train) Departs() string { return util.FirstNonEmpty(t.DepartureTime, t.FromSTD) }

// Arrives returns the arrival time under either field name the service uses.
func (t Train) Arrives() string { return util.FirstNonEmpty(t.ArrivalTime, t.ToSTA) }

// Classes returns the bookable classes under either field name.
func (t Train) Classes() []string {
	if len(t.AvailableClasses) > 0 {
		return t.AvailableClasses
	}
	return t.ClassType
}

// RouteStop is one station on a train's route. Origin has no arrival, terminus no departure.
type RouteStop struct {
	StationCode   string   `json:"station_code"`
	StationName   string   `json:"station_name"`
	ArrivalTime   *string  `json:"arrival_time"`
	DepartureTime *string  `json:"departure_time"`
	HaltTime      string   `json:"halt_time"`
	Distance      *float64 `json:"distance"`
	Day           *int     `json:"day"`
}

// PNR is a booking record.
type PNR struct {
	PNRNumber          rest.Text   `json:"pnr_number"`
	TrainNumber        rest.Text   `json:"train_number"`
	TrainName          string      `json:"train_name"`
	BoardingStation    string      `json:"boarding_station"`
	DestinationStation string      `json:"destination_station"`
	JourneyDate        string      `json:"journey_date"`
	ChartStatus        string      `json:"chart_status"`
	Passengers         []Passenger `json:"passengers"`
}

// Passenger is one traveller on a PNR.
type Passenger struct {
	Name   string `json:"name"`
	Age    *int   `json:"age"`
	Status string `json:"status"`
	Coach  string `json:"coach"`
	Berth  string `json:"berth"`
}

// Station is a station search match.
type Station struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	State string `json:"state"`
}

// Availability is the seat status on one date.
type Availability struct {
	Date          string   `json:"date"`
	CurrentStatus string   `json:"current_status"`
	TotalFare     *float64 `json:"total_fare"`
}

// SeatQuery selects availability for a train segment, class and quota.
type SeatQuery struct {
	TrainNumber string
	From        string
	To          string
	Date        string
	Class       string
	Quota       string
}

func (c *Client) get(ctx context.Context, action, path string, q url.Values, out any) error {
	if !c.hasKey {
		return tools.Configurationf("RAPIDAPI_KEY is not configured")
	}
	return c.rest.GetEnvelope(ctx, action, path, q, out)
}

// StationLiveStatus returns the live board of a station as loosely structured data.
func (c *Client) StationLiveStatus(ctx context.Context, code string) (any, error) {
	var out any
	err := c.get(ctx, "Unable to fetch station status", "/api/v3/station/live/"+code, nil, &out)
	return out, err
}

// TrainDetails returns everything the service knows about a train number.
func (c *Client) TrainDetails(ctx context.Context, number string) (any, error) {
	var out any
	err := c.get(ctx, "Unable to fetch train details", "/api/v3/trainDetails/"+number, nil, &out)
	return out, err
}

// TrainsBetween lists trains that run between two stations.
func (c *Client) TrainsBetween(ctx context.Context, from, to string) ([]Train, error) {
	var out []Train
	err := c.get(ctx, "Unable to fetch trains", "/api/v3/trains/"+from+"/"+to, nil, &out)
	return out, err
}

// TrainsOnDate lists trains between two stations running on date.
func (c *Client) TrainsOnDate(ctx context.Context, from, to, date string) ([]Train, error) {
	var out []Train
	q := url.Values{"from": {from}, "to": {to}, "date": {date}}
	err := c.get(ctx, "Unable to fetch trains on date", "/api/v3/trains/date", q, &out)
	return out, err
}

// Route returns the stops of a train in running order.
func (c *Client) Route(ctx context.Context, number string) ([]RouteStop, error) {
	var out []RouteStop
	err := c.get(ctx, "Unable to fetch train route", "/api/v3/route/"+number, nil, &out)
	return out, err
}

// PNRStatus returns a booking record.
func (c *Client) PNRStatus(ctx context.Context, pnr string) (PNR, error) {
	var out PNR
	err := c.get(ctx, "Unable to fetch PNR status", "/api/v3/pnr/"+pnr, nil, &out)
	return out, err
}

// SearchStation finds stations by name or code.
func (c *Client) SearchStation(ctx context.Context, query string) ([]Station, error) {
	var out []Station
	err := c.get(ctx, "Unable to search stations", "/api/v3/station/search", url.Values{"search": {query}}, &out)
	return out, err
}

// SeatAvailability returns per-date seat status.
func (c *Client) SeatAvailability(ctx context.Context, q SeatQuery) ([]Availability, error) {
	params := url.Values{}
	params.Set("trainNumber", q.TrainNumber)
	params.Set("fromStationCode", q.From)
	params.Set("toStationCode", q.To)
	params.Set("date", q.Date)
	params.Set("class", q.Class)
	params.Set("quota", q.Quota)

	var out []Availability
	err := c.get(ctx, "Unable to fetch seat availability", "/api/v3/seatAvailability", params, &out)
	return out, err
}
