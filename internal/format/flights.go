package format

import (
	"fmt"
	"strings"

	"github.com/mwiater/travvy/internal/providers/flights"
)

// FlightList renders itineraries under header, showing at most limit of them.
func FlightList(header string, list []flights.Flight, origin, destination string, limit int) string {
	if len(list) == 0 {
		return "No flights found for the specified route and dates."
	}
	shown, hidden := capList(len(list), limit)

	var sections []string
	if header = strings.TrimSpace(header); header != "" {
		sections = append(sections, header)
	}
	for i, f := range list[:shown] {
		sections = append(sections, flight(i+1, f, origin, destination))
	}
	if hidden > 0 {
		sections = append(sections, more(hidden, "flights"))
	}
	return strings.Join(sections, "\n\n")
}

func flight(index int, f flights.Flight, origin, destination string) string {
	var b block
	title := fmt.Sprintf("Flight %d", index)
	if desc := joinPresent(" - ", f.Name, f.Price); desc != "" {
		title += ": " + desc
	}
	if f.IsBest {
		title += " ⭐ (Best option)"
	}
	b.linef("%s", title)
	if origin != "" && destination != "" {
		b.field("  ", "Route", origin+" → "+destination)
	}
	b.field("  ", "Departure", f.Departure)
	arrival := strings.TrimSpace(f.Arrival)
	if ahead := strings.TrimSpace(f.ArrivalTimeAhead); ahead != "" && arrival != "" {
		arrival += " (" + ahead + ")"
	}
	b.field("  ", "Arrival", arrival)

	duration := strings.TrimSpace(f.Duration)
	if stops := stopsText(f.Stops); stops != "" {
		if duration != "" {
			duration += " (" + stops + ")"
		} else {
			duration = stops
		}
		b.field("  ", "Duration", duration)
	} else {
		b.field("  ", "Duration", duration)
	}
	b.field("  ", "Delay", f.Delay)
	return b.String()
}

func stopsText(s *flights.Stops) string {
	if !s.Known() {
		return ""
	}
	n := int(*s)
	if n == 0 {
		return "non-stop"
	}
	return fmt.Sprintf("%d %s", n, plural(n, "stop", "stops"))
}
