package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mwiater/travvy/internal/providers/irctc"
)

// maxNestedItems caps each array rendered by KeyValues.
const maxNestedItems = 25

// TrainList renders trains under title, showing at most limit.
func TrainList(title string, trains []irctc.Train, limit int) string {
	if len(trains) == 0 {
		return "No trains found for the given stations."
	}
	shown, hidden := capList(len(trains), limit)

	sections := []string{fmt.Sprintf("%s (%d found):", title, len(trains))}
	for i, t := range trains[:shown] {
		var b block
		b.linef("%d. %s", i+1, joinPresent(" ", t.TrainNumber.String(), t.TrainName))
		b.field("   ", "From", t.FromStationName)
		b.field("   ", "To", t.ToStationName)
		b.field("   ", "Departs", t.Departs())
		b.field("   ", "Arrives", t.Arrives())
		b.field("   ", "Duration", t.Duration)
		b.field("   ", "Classes", strings.Join(t.Classes(), ", "))
		b.field("   ", "Runs on", strings.Join(t.RunDays, ", "))
		sections = append(sections, b.String())
	}
	if hidden > 0 {
		sections = append(sections, more(hidden, "trains"))
	}
	return strings.Join(sections, "\n\n")
}

// TrainRoute renders the stops of a train in running order.
func TrainRoute(number string, stops []irctc.RouteStop) string {
	if len(stops) == 0 {
		return fmt.Sprintf("No route information found for train %s.", number)
	}
	var b block
	b.linef("Route of train %s (%d stops):", number, len(stops))
	for i, s := range stops {
		name := joinPresent(" ", s.StationName, paren(s.StationCode))
		if name == "" {
			name = "Unknown station"
		}
		parts := []string{}
		if s.ArrivalTime != nil && strings.TrimSpace(*s.ArrivalTime) != "" {
			parts = append(parts, "arr "+strings.TrimSpace(*s.ArrivalTime))
		}
		if s.DepartureTime != nil && strings.TrimSpace(*s.DepartureTime) != "" {
			parts = append(parts, "dep "+strings.TrimSpace(*s.DepartureTime))
		}
		if h := strings.TrimSpace(s.HaltTime); h != "" {
			parts = append(parts, "halt "+h)
		}
		if s.Distance != nil {
			parts = append(parts, num(*s.Distance)+" km")
		}
		if s.Day != nil {
			parts = append(parts, fmt.Sprintf("day %d", *s.Day))
		}
		line := fmt.Sprintf("%2d. %s", i+1, name)
		if len(parts) > 0 {
			line += " | " + strings.Join(parts, " | ")
		}
		b.linef("%s", line)
	}
	return b.String()
}

// PNRStatus renders a booking record and its passengers.
func PNRStatus(p irctc.PNR) string {
	var b block
	pnr := p.PNRNumber.String()
	if pnr == "" {
		b.linef("PNR Status:")
	} else {
		b.linef("PNR Status for %s:", pnr)
	}
	b.field("  ", "Train", joinPresent(" ", p.TrainNumber.String(), p.TrainName))
	b.field("  ", "From", p.BoardingStation)
	b.field("  ", "To", p.DestinationStation)
	b.field("  ", "Journey Date", p.JourneyDate)
	b.field("  ", "Chart", p.ChartStatus)
	if len(p.Passengers) > 0 {
		b.linef("  Passengers:")
		for i, ps := range p.Passengers {
			name := strings.TrimSpace(ps.Name)
			if name == "" {
				name = fmt.Sprintf("Passenger %d", i+1)
			}
			if ps.Age != nil {
				name += fmt.Sprintf(" (%d)", *ps.Age)
			}
			seat := joinPresent("/", ps.Coach, ps.Berth)
			b.linef("    %d. %s", i+1, joinPresent(" - ", name, ps.Status, seat))
		}
	}
	return b.String()
}

// Stations renders station search matches.
func Stations(query string, stations []irctc.Station) string {
	if len(stations) == 0 {
		return fmt.Sprintf("No stations found matching '%s'.", query)
	}
	var b block
	b.linef("Stations matching '%s':", query)
	for _, s := range stations {
		b.linef("  %s", joinPresent(" - ", s.Code, s.Name, s.State))
	}
	return b.String()
}

// SeatAvailability renders per-date seat status for a train segment.
func SeatAvailability(q irctc.SeatQuery, avail []irctc.Availability) string {
	if len(avail) == 0 {
		return fmt.Sprintf("No seat availability found for train %s.", q.TrainNumber)
	}
	var b block
	b.linef("Seat availability for train %s (%s → %s, class %s, quota %s):", q.TrainNumber, q.From, q.To, q.Class, q.Quota)
	for _, a := range avail {
		line := joinPresent(": ", a.Date, a.CurrentStatus)
		if a.TotalFare != nil {
			line = joinPresent(" | ", line, "fare "+num(*a.TotalFare))
		}
		if line != "" {
			b.linef("  %s", line)
		}
	}
	return b.String()
}

// KeyValues renders loosely structured data as an indented outline. Object keys
// are walked in sorted order and arrays are capped.
func KeyValues(title string, data any) string {
	var b block
	if title != "" {
		b.linef("%s:", title)
	}
	switch data.(type) {
	case nil:
		b.linef("  No data returned.")
	default:
		outline(&b, "  ", "", data)
	}
	return b.String()
}

func outline(b *block, indent, label string, v any) {
	prefix := indent
	if label != "" {
		prefix += label + ":"
	}
	switch val := v.(type) {
	case map[string]any:
		if label != "" {
			b.linef("%s", prefix)
			indent += "  "
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if val[k] == nil {
				continue
			}
			outline(b, indent, k, val[k])
		}
	case []any:
		if len(val) == 0 {
			return
		}
		if label != "" {
			b.linef("%s", prefix)
			indent += "  "
		}
		shown, hidden := capList(len(val), maxNestedItems)
		for i, item := range val[:shown] {
			outline(b, indent, fmt.Sprintf("[%d]", i+1), item)
		}
		if hidden > 0 {
			b.linef("%s%s", indent, more(hidden, "items"))
		}
	case nil:
	default:
		s := strings.TrimSpace(scalar(val))
		if s == "" {
			return
		}
		if label == "" {
			b.linef("%s%s", indent, s)
			return
		}
		b.linef("%s %s", prefix, s)
	}
}

func scalar(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return num(val)
	case bool:
		if val {
			return "yes"
		}
		return "no"
	default:
		return fmt.Sprint(val)
	}
}

func paren(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return ""
	}
	return "(" + s + ")"
}
