package toolsets

import (
	"context"
	"strings"

	"github.com/mwiater/travvy/internal/appconfig"
	"github.com/mwiater/travvy/internal/format"
	"github.com/mwiater/travvy/internal/providers/nws"
	"github.com/mwiater/travvy/internal/providers/openmeteo"
	"github.com/mwiater/travvy/internal/tools"
)

// Weather returns the National Weather Service tools plus worldwide current conditions.
func Weather(cfg appconfig.Config) []tools.Tool {
	p := cfg.Providers
	gov := nws.New(p.WeatherURL, cfg.AgentString(), cfg.RequestTimeout())
	meteo := openmeteo.New(p.NominatimURL, p.OpenMeteoURL, cfg.AgentString(), cfg.RequestTimeout())
	return []tools.Tool{
		forecastTool(gov),
		alertsTool(gov),
		currentWeatherTool(meteo),
	}
}

func forecastTool(c *nws.Client) tools.Tool {
	return tools.Tool{
		Descriptor: tools.Descriptor{
			Name:        "get_weather_forecast",
			Description: "Get the weather forecast for a US location from the National Weather Service.",
			Params: []tools.Param{
				required(number("latitude", "Latitude of the location", -90, 90)),
				required(number("longitude", "Longitude of the location", -180, 180)),
				integer("days", "Number of days to forecast (two periods per day)", 1, 7, 5),
			},
		},
		Handler: func(ctx context.Context, args tools.Args) (string, error) {
			periods, err := c.Forecast(ctx, args.Float("latitude", 0), args.Float("longitude", 0))
			if err != nil {
				return "", err
			}
			if n := args.Int("days", 5) * 2; len(periods) > n {
				periods = periods[:n]
			}
			return format.Forecast(periods), nil
		},
	}
}

func alertsTool(c *nws.Client) tools.Tool {
	return tools.Tool{
		Descriptor: tools.Descriptor{
			Name:        "get_weather_alerts",
			Description: "Get active weather alerts for a US state.",
			Params: []tools.Param{
				required(pattern(str("state", "Two-letter US state code, e.g. CA or NY"), `^[A-Za-z]{2}$`)),
				integer("max_alerts", "Maximum number of alerts to show", 1, 20, 5),
			},
		},
		Handler: func(ctx context.Context, args tools.Args) (string, error) {
			state := strings.ToUpper(args.String("state", ""))
			alerts, err := c.ActiveAlerts(ctx, state)
			if err != nil {
				return "", err
			}
			return format.Alerts(state, alerts, args.Int("max_alerts", 5)), nil
		},
	}
}

func currentWeatherTool(c *openmeteo.Client) tools.Tool {
	return tools.Tool{
		Descriptor: tools.Descriptor{
			Name:        "get_current_weather",
			Description: "Get current conditions and today's outlook for any named place worldwide.",
			Params: []tools.Param{
				required(minLength(str("location", "City or place name, e.g. 'Paris, France'"), 2)),
			},
		},
		Handler: func(ctx context.Context, args tools.Args) (string, error) {
			location := args.String("location", "")
			ctx, cancel := c.Bound(ctx)
			defer cancel()
			place, err := c.Geocode(ctx, location)
			if err != nil {
				return "", err
			}
			forecast, err := c.Current(ctx, place)
			if err != nil {
				return "", err
			}
			name := place.DisplayName
			if name == "" {
				name = location
			}
			return format.CurrentWeather(name, forecast), nil
		},
	}
}
