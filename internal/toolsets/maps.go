package toolsets

import (
	"context"

	"github.com/mwiater/travvy/internal/appconfig"
	"github.com/mwiater/travvy/internal/format"
	"github.com/mwiater/travvy/internal/providers/googlemaps"
	"github.com/mwiater/travvy/internal/tools"
)

const maxPlaces = 10

var travelModes = []string{"driving", "walking", "bicycling", "transit"}

// Maps returns the Google Maps web service tools.
func Maps(cfg appconfig.Config) []tools.Tool {
	p := cfg.Providers
	c := googlemaps.New(p.GoogleMapsURL, p.GoogleMapsAPIKey, cfg.RequestTimeout())
	mode := oneOf(str("mode", "Travel mode"), "driving", travelModes...)

	return []tools.Tool{
		{
			Descriptor: tools.Descriptor{
				Name:        "maps_geocode",
				Description: "Convert an address into coordinates.",
				Params:      []tools.Param{required(str("address", "Address to geocode"))},
			},
			Handler: func(ctx context.Context, args tools.Args) (string, error) {
				address := args.String("address", "")
				results, err := c.Geocode(ctx, address)
				if err != nil {
					return "", err
				}
				return format.Geocode(address, results), nil
			},
		},
		{
			Descriptor: tools.Descriptor{
				Name:        "maps_reverse_geocode",
				Description: "Convert coordinates into an address.",
				Params: []tools.Param{
					required(number("latitude", "Latitude", -90, 90)),
					required(number("longitude", "Longitude", -180, 180)),
				},
			},
			Handler: func(ctx context.Context, args tools.Args) (string, error) {
				at := googlemaps.LatLng{Lat: args.Float("latitude", 0), Lng: args.Float("longitude", 0)}
				results, err := c.ReverseGeocode(ctx, at)
				if err != nil {
					return "", err
				}
				return format.ReverseGeocode(at.Lat, at.Lng, results), nil
			},
		},
		{
			Descriptor: tools.Descriptor{
				Name:        "maps_search_places",
				Description: "Search for places by text, optionally biased to a location.",
				Params: []tools.Param{
					required(str("query", "What to search for, e.g. 'coffee near Union Square'")),
					number("latitude", "Latitude to bias results around", -90, 90),
					number("longitude", "Longitude to bias results around", -180, 180),
					integer("radius", "Search radius in meters", 1, 50000, 5000),
				},
			},
			Handler: func(ctx context.Context, args tools.Args) (string, error) {
				var near *googlemaps.LatLng
				switch hasLat, hasLng := args.Has("latitude"), args.Has("longitude"); {
				case hasLat && hasLng:
					near = &googlemaps.LatLng{Lat: args.Float("latitude", 0), Lng: args.Float("longitude", 0)}
				case hasLat || hasLng:
					return "", tools.Validationf("latitude and longitude must be provided together")
				}
				radius := 0
				if near != nil || args.Has("radius") {
					radius = args.Int("radius", 5000)
				}
				query := args.String("query", "")
				places, err := c.SearchPlaces(ctx, query, near, radius)
				if err != nil {
					return "", err
				}
				return format.Places(query, places, maxPlaces), nil
			},
		},
		{
			Descriptor: tools.Descriptor{
				Name:        "maps_place_details",
				Description: "Get contact details, hours and reviews of a place.",
				Params:      []tools.Param{required(str("place_id", "Place id from maps_search_places or maps_geocode"))},
			},
			Handler: func(ctx context.Context, args tools.Args) (string, error) {
				id := args.String("place_id", "")
				details, found, err := c.PlaceDetails(ctx, id)
				if err != nil {
					return "", err
				}
				if !found {
					return "", tools.NotFoundf("place not found: %s", id)
				}
				return format.PlaceDetails(details), nil
			},
		},
		{
			Descriptor: tools.Descriptor{
				Name:        "maps_distance_matrix",
				Description: "Get travel distance and time between every origin and destination.",
				Params: []tools.Param{
					required(tools.Param{Name: "origins", Type: "array", Description: "Origin addresses or 'lat,lng' pairs", Items: &tools.Param{Type: "string"}}),
					required(tools.Param{Name: "destinations", Type: "array", Description: "Destination addresses or 'lat,lng' pairs", Items: &tools.Param{Type: "string"}}),
					mode,
				},
			},
			Handler: func(ctx context.Context, args tools.Args) (string, error) {
				origins, destinations := args.Strings("origins"), args.Strings("destinations")
				if len(origins) == 0 || len(destinations) == 0 {
					return "", tools.Validationf("origins and destinations must each list at least one location")
				}
				m := args.String("mode", "driving")
				matrix, err := c.DistanceMatrix(ctx, origins, destinations, m)
				if err != nil {
					return "", err
				}
				return format.DistanceMatrix(origins, destinations, m, matrix), nil
			},
		},
		{
			Descriptor: tools.Descriptor{
				Name:        "maps_elevation",
				Description: "Get the elevation of one or more points.",
				Params: []tools.Param{
					required(tools.Param{
						Name:        "locations",
						Type:        "array",
						Description: "Points to sample",
						Items: &tools.Param{Type: "object", Fields: []tools.Param{
							required(number("latitude", "Latitude", -90, 90)),
							required(number("longitude", "Longitude", -180, 180)),
						}},
					}),
				},
			},
			Handler: func(ctx context.Context, args tools.Args) (string, error) {
				points := args.Objects("locations")
				if len(points) == 0 {
					return "", tools.Validationf("locations must list at least one point")
				}
				locations := make([]googlemaps.LatLng, 0, len(points))
				for _, pt := range points {
					locations = append(locations, googlemaps.LatLng{Lat: pt.Float("latitude", 0), Lng: pt.Float("longitude", 0)})
				}
				results, err := c.Elevation(ctx, locations)
				if err != nil {
					return "", err
				}
				return format.Elevation(results), nil
			},
		},
		{
			Descriptor: tools.Descriptor{
				Name:        "maps_directions",
				Description: "Get step-by-step directions between two places.",
				Params: []tools.Param{
					required(str("origin", "Starting address or 'lat,lng'")),
					required(str("destination", "Ending address or 'lat,lng'")),
					mode,
				},
			},
			Handler: func(ctx context.Context, args tools.Args) (string, error) {
				routes, err := c.Directions(ctx, args.String("origin", ""), args.String("destination", ""), args.String("mode", "driving"))
				if err != nil {
					return "", err
				}
				return format.Directions(routes), nil
			},
		},
	}
}
