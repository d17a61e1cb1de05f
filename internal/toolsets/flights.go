package toolsets

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwiater/travvy/internal/appconfig"
	"github.com/mwiater/travvy/internal/format"
	"github.com/mwiater/travvy/internal/providers/flights"
	"github.com/mwiater/travvy/internal/tools"
)

// defaultFlightCap bounds lists from tools that take no max_results.
const defaultFlightCap = 30

// Flights returns the flight search tools backed by the flights gateway.
func Flights(cfg appconfig.Config) []tools.Tool {
	c := flights.New(cfg.Providers.FlightsURL, cfg.Providers.FlightsAPIKey, cfg.RequestTimeout())
	return []tools.Tool{
		{
			Descriptor: flightDescriptor("search_flights", "Search one-way flights between two airports on a date.",
				integer("max_results", "Maximum number of flights to show", 1, 50, 10)),
			Handler: searchFlights(c, func(args tools.Args, list []flights.Flight) ([]flights.Flight, string, int, error) {
				return list, "", args.Int("max_results", 10), nil
			}),
		},
		{
			Descriptor: flightDescriptor("get_best_flights", "Show only the flights the search marks as best options."),
			Handler: searchFlights(c, func(_ tools.Args, list []flights.Flight) ([]flights.Flight, string, int, error) {
				return flights.Best(list), "No flights are marked as best options for this search.", defaultFlightCap, nil
			}),
		},
		{
			Descriptor: flightDescriptor("get_cheapest_flights", "List flights ordered from cheapest to most expensive."),
			Handler: searchFlights(c, func(_ tools.Args, list []flights.Flight) ([]flights.Flight, string, int, error) {
				return flights.Cheapest(list), "", defaultFlightCap, nil
			}),
		},
		{
			Descriptor: flightDescriptor("get_time_filtered_flights", "List flights departing before, or at and after, a time of day.",
				required(oneOf(str("state", "Keep flights departing 'before' the target time or 'after' it (inclusive)"), "", "before", "after")),
				required(pattern(str("target_time", "Time of day such as '9:30 AM'"), `^\s*(0?[1-9]|1[0-2]):[0-5][0-9]\s*([AaPp][Mm])\s*$`)),
			),
			Handler: searchFlights(c, timeFilter, checkTimeFilter),
		},
	}
}

func flightDescriptor(name, desc string, extra ...tools.Param) tools.Descriptor {
	params := []tools.Param{
		required(pattern(str("origin", "Departure airport IATA code, e.g. JFK"), airportPattern)),
		required(pattern(str("destination", "Arrival airport IATA code, e.g. LAX"), airportPattern)),
		required(pattern(str("departure_date", "Departure date (YYYY-MM-DD)"), datePattern)),
		oneOf(str("trip_type", "Trip type"), "one-way", "one-way", "round-trip"),
		oneOf(str("seat", "Cabin class"), "economy", "economy", "premium-economy", "business", "first"),
		integer("adults", "Number of adults", 1, 0, 1),
		integer("children", "Number of children", 0, 0, 0),
		integer("infants_in_seat", "Number of infants with their own seat", 0, 0, 0),
		integer("infants_on_lap", "Number of infants on a lap", 0, 0, 0),
	}
	return tools.Descriptor{Name: name, Description: desc, Params: append(params, extra...)}
}

// selectFlights narrows a search result. It returns the flights to show, the
// text to use when the selection is empty, and the display cap.
type selectFlights func(args tools.Args, list []flights.Flight) ([]flights.Flight, string, int, error)

// searchFlights runs checks before the gateway is contacted, so argument
// errors never cost a request.
func searchFlights(c *flights.Client, sel selectFlights, checks ...func(tools.Args) error) tools.Handler {
	return func(ctx context.Context, args tools.Args) (string, error) {
		q, err := flightQuery(args)
		if err != nil {
			return "", err
		}
		for _, check := range checks {
			if err := check(args); err != nil {
				return "", err
			}
		}
		res, err := c.Search(ctx, q)
		if err != nil {
			return "", err
		}
		if len(res.Flights) == 0 {
			return fmt.Sprintf("No flights found from %s to %s on %s.", q.Origin, q.Destination, q.Date), nil
		}
		list, empty, limit, err := sel(args, res.Flights)
		if err != nil {
			return "", err
		}
		if len(list) == 0 {
			return empty, nil
		}
		return format.FlightList(flightHeader(q, res.CurrentPrice, len(list)), list, q.Origin, q.Destination, limit), nil
	}
}

func flightQuery(args tools.Args) (flights.Query, error) {
	if _, err := date(args, "departure_date"); err != nil {
		return flights.Query{}, err
	}
	return flights.Query{
		Origin:        strings.ToUpper(args.String("origin", "")),
		Destination:   strings.ToUpper(args.String("destination", "")),
		Date:          args.String("departure_date", ""),
		Trip:          args.String("trip_type", "one-way"),
		Seat:          args.String("seat", "economy"),
		Adults:        args.Int("adults", 1),
		Children:      args.Int("children", 0),
		InfantsInSeat: args.Int("infants_in_seat", 0),
		InfantsOnLap:  args.Int("infants_on_lap", 0),
	}, nil
}

func flightHeader(q flights.Query, priceLevel string, n int) string {
	noun := "flights"
	if n == 1 {
		noun = "flight"
	}
	h := fmt.Sprintf("Found %d %s from %s to %s on %s", n, noun, q.Origin, q.Destination, q.Date)
	if priceLevel = strings.TrimSpace(priceLevel); priceLevel != "" {
		h += fmt.Sprintf(" (prices are currently %s)", priceLevel)
	}
	return h + ":"
}

func checkTimeFilter(args tools.Args) error {
	switch state := args.String("state", ""); state {
	case "before", "after":
	default:
		return tools.Validationf("state must be 'before' or 'after', got '%s'", state)
	}
	if target := args.String("target_time", ""); !validClock(target) {
		return tools.Validationf("target_time must look like '9:30 AM', got '%s'", target)
	}
	return nil
}

func validClock(s string) bool {
	_, ok := flights.ParseClock(s)
	return ok
}

func timeFilter(args tools.Args, list []flights.Flight) ([]flights.Flight, string, int, error) {
	target := args.String("target_time", "")
	minutes, ok := flights.ParseClock(target)
	if !ok {
		return nil, "", 0, tools.Validationf("target_time must look like '9:30 AM', got '%s'", target)
	}
	if args.String("state", "") == "before" {
		return flights.DepartingBefore(list, minutes), fmt.Sprintf("No flights depart before %s.", target), defaultFlightCap, nil
	}
	return flights.DepartingFrom(list, minutes), fmt.Sprintf("No flights depart at or after %s.", target), defaultFlightCap, nil
}
