package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/mwiater/travvy/internal/providers/nws"
	"github.com/mwiater/travvy/internal/providers/openmeteo"
)

const (
	maxDetailedForecast = 200
	maxAlertDescription = 300
)

// Forecast renders NWS forecast periods in the order given.
func Forecast(periods []nws.Period) string {
	if len(periods) == 0 {
		return "No forecast data available"
	}
	sections := make([]string, 0, len(periods))
	for i, p := range periods {
		var b block
		name := strings.TrimSpace(p.Name)
		if name == "" {
			name = fmt.Sprintf("Period %d", i+1)
		}
		b.linef("%s:", name)
		if p.Temperature != nil {
			b.field("  ", "Temperature", num(*p.Temperature)+"°"+p.TemperatureUnit)
		}
		b.field("  ", "Wind", joinPresent(" ", p.WindSpeed, p.WindDirection))
		b.field("  ", "Conditions", periodConditions(p))
		sections = append(sections, b.String())
	}
	return strings.Join(sections, "\n\n")
}

// periodConditions prefers the detailed text unless it is long.
func periodConditions(p nws.Period) string {
	detailed := strings.TrimSpace(p.DetailedForecast)
	if detailed != "" && len([]rune(detailed)) < maxDetailedForecast {
		return detailed
	}
	if short := strings.TrimSpace(p.ShortForecast); short != "" {
		return short
	}
	return truncate(detailed, maxDetailedForecast)
}

// Alerts renders active alerts for a state, showing at most limit of them.
func Alerts(state string, alerts []nws.Alert, limit int) string {
	state = strings.ToUpper(strings.TrimSpace(state))
	if len(alerts) == 0 {
		return "No active weather alerts for " + state
	}
	shown, hidden := capList(len(alerts), limit)

	sections := []string{fmt.Sprintf("Active Weather Alerts for %s:\n%s", state, strings.Repeat("=", 40))}
	for i, a := range alerts[:shown] {
		var b block
		event := strings.TrimSpace(a.Event)
		if event == "" {
			event = "Weather alert"
		}
		b.linef("%d. %s", i+1, event)
		b.field("   ", "Area", a.AreaDesc)
		level := joinPresent(" | ", labelled("Severity", a.Severity), labelled("Urgency", a.Urgency))
		if level != "" {
			b.linef("   %s", level)
		}
		b.field("   ", "Description", truncate(a.Description, maxAlertDescription))
		sections = append(sections, b.String())
	}
	if hidden > 0 {
		sections = append(sections, more(hidden, "alerts"))
	}
	return strings.Join(sections, "\n\n")
}

func labelled(label, value string) string {
	if value = strings.TrimSpace(value); value == "" {
		return ""
	}
	return label + ": " + value
}

// CurrentWeather renders Open-Meteo current conditions and today's outlook.
func CurrentWeather(place string, f openmeteo.Forecast) string {
	var b block
	header := "Current weather"
	if place = strings.TrimSpace(place); place != "" {
		header += " for " + place
	}
	if f.Timezone != "" {
		header += " (" + f.Timezone + ")"
	}
	b.linef("%s:", header)

	cur, units := f.Current, f.CurrentUnits
	temp := withUnit(cur.Temperature, units.Temperature)
	if feels := withUnit(cur.ApparentTemperature, units.ApparentTemperature); feels != "" && temp != "" {
		temp += " (feels like " + feels + ")"
	}
	b.field("  ", "Temperature", temp)
	if cur.IsDay != nil {
		if *cur.IsDay == 1 {
			b.field("  ", "Daylight", "yes")
		} else {
			b.field("  ", "Daylight", "no")
		}
	}
	b.field("  ", "Humidity", withUnit(cur.RelativeHumidity, units.RelativeHumidity))
	b.field("  ", "Cloud cover", withUnit(cur.CloudCover, units.CloudCover))
	b.field("  ", "Wind", withUnit(cur.WindSpeed10M, units.WindSpeed10M))
	b.field("  ", "Precipitation", withUnit(cur.Precipitation, units.Precipitation))

	d, du := f.Daily, f.DailyUnits
	var today block
	if len(d.TemperatureMax) > 0 {
		today.field("  ", "High", withUnit(&d.TemperatureMax[0], du.TemperatureMax))
	}
	if len(d.TemperatureMin) > 0 {
		today.field("  ", "Low", withUnit(&d.TemperatureMin[0], du.TemperatureMin))
	}
	if len(d.PrecipitationSum) > 0 {
		today.field("  ", "Total precipitation", withUnit(&d.PrecipitationSum[0], du.PrecipitationSum))
	}
	if len(d.Sunrise) > 0 {
		today.field("  ", "Sunrise", clock(d.Sunrise[0]))
	}
	if len(d.Sunset) > 0 {
		today.field("  ", "Sunset", clock(d.Sunset[0]))
	}
	if len(today.lines) > 0 {
		b.linef("Today:")
		b.lines = append(b.lines, today.lines...)
	}
	if len(b.lines) == 1 {
		b.linef("  No current conditions reported.")
	}
	return b.String()
}

// withUnit formats a reading to one decimal and appends its unit; "%" attaches without a space.
func withUnit(v *float64, unit string) string {
	if v == nil {
		return ""
	}
	unit = strings.TrimSpace(unit)
	s := fmt.Sprintf("%.1f", *v)
	if *v == float64(int64(*v)) && unit == "%" {
		s = fmt.Sprintf("%d", int64(*v))
	}
	switch unit {
	case "":
		return s
	case "%":
		return s + unit
	default:
		return s + " " + unit
	}
}

// clock turns "2006-01-02T15:04" into "3:04 PM", returning the input when it does not parse.
func clock(raw string) string {
	t, err := time.Parse("2006-01-02T15:04", raw)
	if err != nil {
		return raw
	}
	return t.Format("3:04 PM")
}
