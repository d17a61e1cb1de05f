// internal/providers/googlemaps/googlemaps.go
// Package googlemaps calls the Google Maps web services: geocoding, places,
// distance matrix, elevation and directions.
package googlemaps

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mwiater/travvy/internal/providers/rest"
	"github.com/mwiater/travvy/internal/tools"
)

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// Client authenticates with a key passed as the "key" query parameter.
type Client struct {
	rest *rest.Client
	key  string
}

// New returns a client for baseURL (normally https://maps.googleapis.com).
func New(baseURL, key string, timeout time.Duration) *Client {
	return &Client{rest: rest.New("GOOGLE-MAPS", baseURL, timeout, nil), key: key}
}

// LatLng is a coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (l LatLng) String() string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lng, 'f', -1, 64)
}

// Geometry wraps a location.
type Geometry struct {
	Location *LatLng `json:"location"`
}

// AddressComponent is one part of a structured address.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// GeocodeResult is one geocoder match.
type GeocodeResult struct {
	FormattedAddress  string             `json:"formatted_address"`
	PlaceID           string             `json:"place_id"`
	Geometry          Geometry           `json:"geometry"`
	AddressComponents []AddressComponent `json:"address_components"`
	Types             []string           `json:"types"`
}

// Place is a text-search match.
type Place struct {
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	PlaceID          string   `json:"place_id"`
	Geometry         Geometry `json:"geometry"`
	Rating           *float64 `json:"rating"`
	UserRatingsTotal *int     `json:"user_ratings_total"`
	Types            []string `json:"types"`
	BusinessStatus   string   `json:"business_status"`
}

// PlaceDetails is the details of one place.
type PlaceDetails struct {
	Name                     string        `json:"name"`
	FormattedAddress         string        `json:"formatted_address"`
	FormattedPhoneNumber     string        `json:"formatted_phone_number"`
	InternationalPhoneNumber string        `json:"international_phone_number"`
	Website                  string        `json:"website"`
	URL                      string        `json:"url"`
	Rating                   *float64      `json:"rating"`
	UserRatingsTotal         *int          `json:"user_ratings_total"`
	PriceLevel               *int          `json:"price_level"`
	Geometry                 Geometry      `json:"geometry"`
	Types                    []string      `json:"types"`
	OpeningHours             *OpeningHours `json:"opening_hours"`
	Reviews                  []Review      `json:"reviews"`
}

// OpeningHours lists weekly hours.
type OpeningHours struct {
	OpenNow     *bool    `json:"open_now"`
	WeekdayText []string `json:"weekday_text"`
}

// Review is a user review.
type Review struct {
	AuthorName string   `json:"author_name"`
	Rating     *float64 `json:"rating"`
	Text       string   `json:"text"`
}

// TextValue is a measured distance or duration.
type TextValue struct {
	Text  string   `json:"text"`
	Value *float64 `json:"value"`
}

// Matrix is a distance matrix response.
type Matrix struct {
	OriginAddresses      []string `json:"origin_addresses"`
	DestinationAddresses []string `json:"destination_addresses"`
	Rows                 []struct {
		Elements []MatrixElement `json:"elements"`
	} `json:"rows"`
}

// MatrixElement is one origin/destination pair.
type MatrixElement struct {
	Status   string     `json:"status"`
	Distance *TextValue `json:"distance"`
	Duration *TextValue `json:"duration"`
}

// Elevation is the elevation at one sample point.
type Elevation struct {
	Elevation  *float64 `json:"elevation"`
	Location   *LatLng  `json:"location"`
	Resolution *float64 `json:"resolution"`
}

// Route is one directions alternative.
type Route struct {
	Summary  string   `json:"summary"`
	Legs     []Leg    `json:"legs"`
	Warnings []string `json:"warnings"`
}

// Leg is the part of a route between two waypoints.
type Leg struct {
	StartAddress string     `json:"start_address"`
	EndAddress   string     `json:"end_address"`
	Distance     *TextValue `json:"distance"`
	Duration     *TextValue `json:"duration"`
	Steps        []Step     `json:"steps"`
}

// Step is one turn-by-turn instruction. Instructions contain HTML markup.
type Step struct {
	HTMLInstructions string     `json:"html_instructions"`
	Distance         *TextValue `json:"distance"`
	Duration         *TextValue `json:"duration"`
	TravelMode       string     `json:"travel_mode"`
}

// status carries the envelope fields every Maps web service returns.
type status struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

func (s status) err(action string) error {
	switch s.Status {
	case statusOK, statusZeroResults:
		return nil
	case "":
		return tools.Providerf("%s: response carried no status", action)
	}
	msg := s.Status
	if s.ErrorMessage != "" {
		msg = fmt.Sprintf("%s (%s)", s.ErrorMessage, s.Status)
	}
	return tools.Providerf("%s: %s", action, msg)
}

func (c *Client) get(ctx context.Context, action, path string, q url.Values, out any, st *status) error {
	if c.key == "" {
		return tools.Configurationf("GOOGLE_MAPS_API_KEY is not configured")
	}
	q.Set("key", c.key)
	if err := c.rest.GetJSON(ctx, action, path, q, out); err != nil {
		return err
	}
	return st.err(action)
}

// Geocode converts an address into coordinates.
func (c *Client) Geocode(ctx context.Context, address string) ([]GeocodeResult, error) {
	var resp struct {
		status
		Results []GeocodeResult `json:"results"`
	}
	err := c.get(ctx, "Unable to geocode address", "/maps/api/geocode/json", url.Values{"address": {address}}, &resp, &resp.status)
	return resp.Results, err
}

// ReverseGeocode converts coordinates into addresses.
func (c *Client) ReverseGeocode(ctx context.Context, at LatLng) ([]GeocodeResult, error) {
	var resp struct {
		status
		Results []GeocodeResult `json:"results"`
	}
	err := c.get(ctx, "Unable to reverse geocode", "/maps/api/geocode/json", url.Values{"latlng": {at.String()}}, &resp, &resp.status)
	return resp.Results, err
}

// SearchPlaces runs a text search, optionally biased toward near within radius meters.
func (c *Client) SearchPlaces(ctx context.Context, query string, near *LatLng, radius int) ([]Place, error) {
	q := url.Values{"query": {query}}
	if near != nil {
		q.Set("location", near.String())
	}
	if radius > 0 {
		q.Set("radius", strconv.Itoa(radius))
	}
	var resp struct {
		status
		Results []Place `json:"results"`
	}
	err := c.get(ctx, "Unable to search places", "/maps/api/place/textsearch/json", q, &resp, &resp.status)
	return resp.Results, err
}

// PlaceDetails returns details for a place id; found is false on ZERO_RESULTS or NOT_FOUND.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (PlaceDetails, bool, error) {
	var resp struct {
		status
		Result *PlaceDetails `json:"result"`
	}
	err := c.get(ctx, "Unable to fetch place details", "/maps/api/place/details/json", url.Values{"place_id": {placeID}}, &resp, &resp.status)
	if err != nil {
		if resp.Status == "NOT_FOUND" {
			return PlaceDetails{}, false, nil
		}
		return PlaceDetails{}, false, err
	}
	if resp.Result == nil {
		return PlaceDetails{}, false, nil
	}
	return *resp.Result, true, nil
}

// DistanceMatrix measures travel between every origin and destination.
func (c *Client) DistanceMatrix(ctx context.Context, origins, destinations []string, mode string) (Matrix, error) {
	q := url.Values{}
	q.Set("origins", strings.Join(origins, "|"))
	q.Set("destinations", strings.Join(destinations, "|"))
	q.Set("mode", mode)
	var resp struct {
		status
		Matrix
	}
	err := c.get(ctx, "Unable to compute distance matrix", "/maps/api/distancematrix/json", q, &resp, &resp.status)
	return resp.Matrix, err
}

// Elevation samples the elevation at each location.
func (c *Client) Elevation(ctx context.Context, locations []LatLng) ([]Elevation, error) {
	parts := make([]string, 0, len(locations))
	for _, l := range locations {
		parts = append(parts, l.String())
	}
	var resp struct {
		status
		Results []Elevation `json:"results"`
	}
	err := c.get(ctx, "Unable to fetch elevation", "/maps/api/elevation/json", url.Values{"locations": {strings.Join(parts, "|")}}, &resp, &resp.status)
	return resp.Results, err
}

// Directions returns route alternatives between two places.
func (c *Client) Directions(ctx context.Context, origin, destination, mode string) ([]Route, error) {
	q := url.Values{"origin": {origin}, "destination": {destination}, "mode": {mode}}
	var resp struct {
		status
		Routes []Route `json:"routes"`
	}
	err := c.get(ctx, "Unable to fetch directions", "/maps/api/directions/json", q, &resp, &resp.status)
	return resp.Routes, err
}
