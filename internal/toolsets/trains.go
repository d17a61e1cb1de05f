package toolsets

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwiater/travvy/internal/appconfig"
	"github.com/mwiater/travvy/internal/format"
	"github.com/mwiater/travvy/internal/providers/irctc"
	"github.com/mwiater/travvy/internal/providers/rest"
	"github.com/mwiater/travvy/internal/tools"
)

const maxTrains = 30

// Trains returns the Indian Railways tools backed by IRCTC on RapidAPI.
func Trains(cfg appconfig.Config) []tools.Tool {
	p := cfg.Providers
	c := irctc.New(p.IRCTCHost, p.IRCTCURL, p.RapidAPIKey, cfg.RequestTimeout())

	station := func(name, desc string) tools.Param {
		return required(pattern(str(name, desc), stationPattern))
	}
	train := required(pattern(str("train_number", "4 or 5 digit train number, e.g. 12951"), trainPattern))

	return []tools.Tool{
		{
			Descriptor: tools.Descriptor{
				Name:        "get_station_live_status",
				Description: "Get the live arrivals and departures board of a station.",
				Params:      []tools.Param{station("station_code", "Station code, e.g. NDLS")},
			},
			Handler: func(ctx context.Context, args tools.Args) (string, error) {
				code := stationCode(args, "station_code")
				data, err := c.StationLiveStatus(ctx, code)
				if err != nil {
					return "", err
				}
				return format.KeyValues("Live status for station "+code, data), nil
			},
		},
		{
			Descriptor: tools.Descriptor{
				Name:        "get_train_details",
				Description: "Get details of a train by number.",
				Params:      []tools.Param{train},
			},
			Handler: func(ctx context.Context, args tools.Args) (string, error) {
				number := args.String("train_number", "")
				data, err := c.TrainDetails(ctx, number)
				if err != nil {
					return "", err
				}
				return format.KeyValues("Details for train "+number, data), nil
			},
		},
		{
			Descriptor: tools.Descriptor{
				Name:        "get_trains_between_stations",
				Description: "List trains running between two stations.",
				Params: []tools.Param{
					station("from_station", "Origin station code"),
					station("to_station", "Destination station code"),
				},
			},
			Handler: func(ctx context.Context, args tools.Args) (string, error) {
				from, to := stationCode(args, "from_station"), stationCode(args, "to_station")
				trains, err := c.TrainsBetween(ctx, from, to)
				if err != nil {
					return "", err
				}
				return format.TrainList(fmt.Sprintf("Trains from %s to %s", from, to), trains, maxTrains), nil
			},
		},
		{
			Descriptor: tools.Descriptor{
				Name:        "get_train_route",
				Description: "List the stops of a train in running order.",
				Params:      []tools.Param{train},
			},
			Handler: func(ctx context.Context, args tools.Args) (string, error) {
				number := args.String("train_number", "")
				stops, err := c.Route(ctx, number)
				if err != nil {
					return "", err
				}
				return format.TrainRoute(number, stops), nil
			},
		},
		{
			Descriptor: tools.Descriptor{
				Name:        "get_trains_on_date",
				Description: "List trains between two stations running on a date.",
				Params: []tools.Param{
					station("from_station", "Origin station code"),
					station("to_station", "Destination station code"),
					required(pattern(str("date", "Travel date (YYYY-MM-DD)"), datePattern)),
				},
			},
			Handler: func(ctx context.Context, args tools.Args) (string, error) {
				day, err := date(args, "date")
				if err != nil {
					return "", err
				}
				from, to := stationCode(args, "from_station"), stationCode(args, "to_station")
				trains, err := c.TrainsOnDate(ctx, from, to, day.Format(dateLayout))
				if err != nil {
					return "", err
				}
				title := fmt.Sprintf("Trains from %s to %s on %s", from, to, day.Format(dateLayout))
				return format.TrainList(title, trains, maxTrains), nil
			},
		},
		{
			Descriptor: tools.Descriptor{
				Name:        "get_pnr_status",
				Description: "Get the booking status of a 10 digit PNR.",
				Params: []tools.Param{
					required(pattern(str("pnr_number", "10 digit PNR number"), `^[0-9]{10}$`)),
				},
			},
			Handler: func(ctx context.Context, args tools.Args) (string, error) {
				pnr, err := c.PNRStatus(ctx, args.String("pnr_number", ""))
				if err != nil {
					return "", err
				}
				if pnr.PNRNumber == "" {
					pnr.PNRNumber = rest.Text(args.String("pnr_number", ""))
				}
				return format.PNRStatus(pnr), nil
			},
		},
		{
			Descriptor: tools.Descriptor{
				Name:        "search_station",
				Description: "Find station codes by station or city name.",
				Params: []tools.Param{
					required(minLength(str("query", "Station or city name"), 2)),
				},
			},
			Handler: func(ctx context.Context, args tools.Args) (string, error) {
				query := args.String("query", "")
				stations, err := c.SearchStation(ctx, query)
				if err != nil {
					return "", err
				}
				return format.Stations(query, stations), nil
			},
		},
		{
			Descriptor: tools.Descriptor{
				Name:        "get_seat_availability",
				Description: "Check seat availability for a train segment, class and quota.",
				Params: []tools.Param{
					train,
					station("from_station", "Boarding station code"),
					station("to_station", "Destination station code"),
					required(pattern(str("date", "Travel date (YYYY-MM-DD)"), datePattern)),
					oneOf(str("class_type", "Travel class"), "SL", "1A", "2A", "3A", "3E", "SL", "CC", "EC", "2S"),
					oneOf(str("quota", "Booking quota"), "GN", "GN", "TQ", "PT", "LD", "SS", "HP"),
				},
			},
			Handler: func(ctx context.Context, args tools.Args) (string, error) {
				day, err := date(args, "date")
				if err != nil {
					return "", err
				}
				q := irctc.SeatQuery{
					TrainNumber: args.String("train_number", ""),
					From:        stationCode(args, "from_station"),
					To:          stationCode(args, "to_station"),
					Date:        day.Format(dateLayout),
					Class:       strings.ToUpper(args.String("class_type", "SL")),
					Quota:       strings.ToUpper(args.String("quota", "GN")),
				}
				avail, err := c.SeatAvailability(ctx, q)
				if err != nil {
					return "", err
				}
				return format.SeatAvailability(q, avail), nil
			},
		},
	}
}

func stationCode(args tools.Args, key string) string {
	return strings.ToUpper(args.String(key, ""))
}
