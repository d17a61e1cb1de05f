package toolsets

import (
	"context"

	"github.com/mwiater/travvy/internal/appconfig"
	"github.com/mwiater/travvy/internal/format"
	"github.com/mwiater/travvy/internal/providers/booking"
	"github.com/mwiater/travvy/internal/tools"
)

// Accommodation returns the Booking.com destination and hotel search tools.
func Accommodation(cfg appconfig.Config) []tools.Tool {
	p := cfg.Providers
	c := booking.New(p.BookingHost, p.BookingURL, p.RapidAPIKey, cfg.RequestTimeout())
	return []tools.Tool{
		{
			Descriptor: tools.Descriptor{
				Name:        "search_destinations",
				Description: "Find Booking.com destinations (cities, districts, landmarks) and their destination ids.",
				Params: []tools.Param{
					required(minLength(str("query", "City, region or landmark name"), 2)),
				},
			},
			Handler: func(ctx context.Context, args tools.Args) (string, error) {
				query := args.String("query", "")
				dests, err := c.SearchDestinations(ctx, query)
				if err != nil {
					return "", err
				}
				return format.Destinations(query, dests), nil
			},
		},
		{
			Descriptor: tools.Descriptor{
				Name:        "search_hotels",
				Description: "Search hotels in a destination for a stay. Use search_destinations first to get the destination id.",
				Params: []tools.Param{
					required(str("destination_id", "Destination id from search_destinations")),
					required(pattern(str("checkin_date", "Check-in date (YYYY-MM-DD)"), datePattern)),
					required(pattern(str("checkout_date", "Check-out date (YYYY-MM-DD)"), datePattern)),
					integer("adults", "Number of adult guests", 1, 10, 2),
					integer("max_results", "Maximum number of hotels to show", 1, 50, 10),
				},
			},
			Handler: func(ctx context.Context, args tools.Args) (string, error) {
				checkin, err := date(args, "checkin_date")
				if err != nil {
					return "", err
				}
				checkout, err := date(args, "checkout_date")
				if err != nil {
					return "", err
				}
				if !checkout.After(checkin) {
					return "", tools.Validationf("checkout_date must be after checkin_date")
				}
				destID := args.String("destination_id", "")
				hotels, err := c.SearchHotels(ctx, booking.HotelQuery{
					DestinationID: destID,
					Checkin:       checkin.Format(dateLayout),
					Checkout:      checkout.Format(dateLayout),
					Adults:        args.Int("adults", 2),
				})
				if err != nil {
					return "", err
				}
				return format.Hotels(destID, hotels, args.Int("max_results", 10)), nil
			},
		},
	}
}
