// internal/providers/booking/booking.go
// Package booking searches destinations and hotels through the Booking.com
// RapidAPI service.
package booking

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/mwiater/travvy/internal/providers/rest"
	"github.com/mwiater/travvy/internal/tools"
)

// Client calls booking-com15 on RapidAPI.
type Client struct {
	rest   *rest.Client
	hasKey bool
}

// New returns a client. baseURL may be empty to use https://{host}.
func New(host, baseURL, key string, timeout time.Duration) *Client {
	return &Client{rest: rest.NewRapidAPI("BOOKING", host, baseURL, key, timeout), hasKey: key != ""}
}

// Destination is one searchDestination match.
type Destination struct {
	Name       string    `json:"name"`
	Label      string    `json:"label"`
	DestID     rest.Text `json:"dest_id"`
	DestType   string    `json:"dest_type"`
	SearchType string    `json:"search_type"`
	CityUFI    rest.Text `json:"city_ufi"`
	CityName   string    `json:"city_name"`
	Region     string    `json:"region"`
	Country    string    `json:"country"`
	Hotels     *int      `json:"hotels"`
	Latitude   *float64  `json:"latitude"`
	Longitude  *float64  `json:"longitude"`
}

// Hotel is one searchHotels entry.
type Hotel struct {
	HotelID            rest.Text `json:"hotel_id"`
	AccessibilityLabel string    `json:"accessibilityLabel"`
	Property           *Property `json:"property"`
}

// Property holds the listing details. Every field may be absent.
type Property struct {
	Name            string          `json:"name"`
	WishlistName    string          `json:"wishlistName"`
	ReviewScore     *float64        `json:"reviewScore"`
	ReviewCount     *int            `json:"reviewCount"`
	ReviewScoreWord string          `json:"reviewScoreWord"`
	PropertyClass   *float64        `json:"propertyClass"`
	Latitude        *float64        `json:"latitude"`
	Longitude       *float64        `json:"longitude"`
	Currency        string          `json:"currency"`
	PriceBreakdown  *PriceBreakdown `json:"priceBreakdown"`
	Checkin         *TimeWindow     `json:"checkin"`
	Checkout        *TimeWindow     `json:"checkout"`
	PhotoURLs       []string        `json:"photoUrls"`
}

// PriceBreakdown holds the current and struck-through price.
type PriceBreakdown struct {
	GrossPrice         *Price `json:"grossPrice"`
	StrikethroughPrice *Price `json:"strikethroughPrice"`
}

// Price is an amount in a currency.
type Price struct {
	Currency string   `json:"currency"`
	Value    *float64 `json:"value"`
}

// TimeWindow is a check-in or check-out window, e.g. 15:00-23:00.
type TimeWindow struct {
	FromTime  string `json:"fromTime"`
	UntilTime string `json:"untilTime"`
}

// HotelQuery selects hotels in one destination for a stay.
type HotelQuery struct {
	DestinationID string
	SearchType    string
	Checkin       string
	Checkout      string
	Adults        int
}

type hotelsData struct {
	Hotels []Hotel `json:"hotels"`
}

func (c *Client) requireKey() error {
	if !c.hasKey {
		return tools.Configurationf("RAPIDAPI_KEY is not configured")
	}
	return nil
}

// SearchDestinations finds destinations matching a city or place name.
func (c *Client) SearchDestinations(ctx context.Context, query string) ([]Destination, error) {
	if err := c.requireKey(); err != nil {
		return nil, err
	}
	var out []Destination
	err := c.rest.GetEnvelope(ctx, "Unable to search destinations", "/api/v1/hotels/searchDestination",
		url.Values{"query": {query}}, &out)
	return out, err
}

// SearchHotels lists hotels for a destination id returned by SearchDestinations.
func (c *Client) SearchHotels(ctx context.Context, q HotelQuery) ([]Hotel, error) {
	if err := c.requireKey(); err != nil {
		return nil, err
	}
	searchType := q.SearchType
	if searchType == "" {
		searchType = "CITY"
	}
	params := url.Values{}
	params.Set("dest_id", q.DestinationID)
	params.Set("search_type", searchType)
	params.Set("arrival_date", q.Checkin)
	params.Set("departure_date", q.Checkout)
	params.Set("adults", strconv.Itoa(q.Adults))

	var data hotelsData
	if err := c.rest.GetEnvelope(ctx, "Unable to search hotels", "/api/v1/hotels/searchHotels", params, &data); err != nil {
		return nil, err
	}
	return data.Hotels, nil
}
