package format

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/mwiater/travvy/internal/providers/googlemaps"
	"github.com/mwiater/travvy/internal/util"
)

const (
	maxGeocodeResults = 5
	maxPlaceReviews   = 3
	maxReviewText     = 200
	maxRouteSteps     = 25
)

// NoResults is returned for a ZERO_RESULTS answer from the maps service.
const NoResults = "No results found."

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// Geocode renders address matches.
func Geocode(address string, results []googlemaps.GeocodeResult) string {
	if len(results) == 0 {
		return NoResults
	}
	shown, hidden := capList(len(results), maxGeocodeResults)
	sections := []string{fmt.Sprintf("Geocoding results for '%s':", address)}
	for i, r := range results[:shown] {
		var b block
		b.linef("%d. %s", i+1, orUnknown(r.FormattedAddress))
		b.field("   ", "Location", latLng(r.Geometry.Location))
		b.field("   ", "Place ID", r.PlaceID)
		b.field("   ", "Types", strings.Join(r.Types, ", "))
		sections = append(sections, b.String())
	}
	if hidden > 0 {
		sections = append(sections, more(hidden, "results"))
	}
	return strings.Join(sections, "\n\n")
}

// ReverseGeocode renders the addresses found at a coordinate with their components.
func ReverseGeocode(lat, lng float64, results []googlemaps.GeocodeResult) string {
	if len(results) == 0 {
		return NoResults
	}
	shown, hidden := capList(len(results), maxGeocodeResults)
	sections := []string{fmt.Sprintf("Addresses near %s, %s:", num(lat), num(lng))}
	for i, r := range results[:shown] {
		var b block
		b.linef("%d. %s", i+1, orUnknown(r.FormattedAddress))
		b.field("   ", "Place ID", r.PlaceID)
		for _, c := range r.AddressComponents {
			if len(c.Types) == 0 || strings.TrimSpace(c.LongName) == "" {
				continue
			}
			b.field("   ", c.Types[0], c.LongName)
		}
		sections = append(sections, b.String())
	}
	if hidden > 0 {
		sections = append(sections, more(hidden, "results"))
	}
	return strings.Join(sections, "\n\n")
}

// Places renders a text search, showing at most limit places.
func Places(query string, places []googlemaps.Place, limit int) string {
	if len(places) == 0 {
		return NoResults
	}
	shown, hidden := capList(len(places), limit)
	sections := []string{fmt.Sprintf("Places matching '%s' (%d found):", query, len(places))}
	for i, p := range places[:shown] {
		var b block
		b.linef("%d. %s", i+1, orUnknown(p.Name))
		b.field("   ", "Address", p.FormattedAddress)
		b.field("   ", "Rating", ratingCount(p.Rating, p.UserRatingsTotal))
		b.field("   ", "Status", p.BusinessStatus)
		b.field("   ", "Location", latLng(p.Geometry.Location))
		b.field("   ", "Place ID", p.PlaceID)
		sections = append(sections, b.String())
	}
	if hidden > 0 {
		sections = append(sections, more(hidden, "places"))
	}
	return strings.Join(sections, "\n\n")
}

// PlaceDetails renders one place.
func PlaceDetails(d googlemaps.PlaceDetails) string {
	var b block
	b.linef("%s", orUnknown(d.Name))
	b.field("  ", "Address", d.FormattedAddress)
	b.field("  ", "Phone", util.FirstNonEmpty(d.FormattedPhoneNumber, d.InternationalPhoneNumber))
	b.field("  ", "Website", d.Website)
	b.field("  ", "Google Maps", d.URL)
	b.field("  ", "Rating", ratingCount(d.Rating, d.UserRatingsTotal))
	if d.PriceLevel != nil {
		b.field("  ", "Price level", strings.Repeat("$", max(*d.PriceLevel, 1)))
	}
	b.field("  ", "Location", latLng(d.Geometry.Location))
	b.field("  ", "Types", strings.Join(d.Types, ", "))
	if oh := d.OpeningHours; oh != nil {
		if oh.OpenNow != nil {
			b.field("  ", "Open now", scalar(*oh.OpenNow))
		}
		if len(oh.WeekdayText) > 0 {
			b.linef("  Hours:")
			for _, day := range oh.WeekdayText {
				b.linef("    %s", day)
			}
		}
	}
	if len(d.Reviews) > 0 {
		shown, _ := capList(len(d.Reviews), maxPlaceReviews)
		b.linef("  Reviews:")
		for _, r := range d.Reviews[:shown] {
			who := orUnknown(r.AuthorName)
			if r.Rating != nil {
				who += fmt.Sprintf(" (%s/5)", num(*r.Rating))
			}
			b.linef("    - %s", joinPresent(": ", who, truncate(r.Text, maxReviewText)))
		}
	}
	return b.String()
}

// DistanceMatrix renders every origin/destination pair.
func DistanceMatrix(origins, destinations []string, mode string, m googlemaps.Matrix) string {
	if len(m.Rows) == 0 {
		return NoResults
	}
	var b block
	b.linef("Distance matrix (%s):", mode)
	for i, row := range m.Rows {
		from := pick(m.OriginAddresses, origins, i)
		for j, el := range row.Elements {
			to := pick(m.DestinationAddresses, destinations, j)
			b.linef("  %s → %s", from, to)
			if el.Status != "" && el.Status != "OK" {
				b.field("    ", "Status", el.Status)
				continue
			}
			b.field("    ", "Distance", textValue(el.Distance))
			b.field("    ", "Duration", textValue(el.Duration))
		}
	}
	return b.String()
}

// Elevation renders elevation samples in meters.
func Elevation(results []googlemaps.Elevation) string {
	if len(results) == 0 {
		return NoResults
	}
	var b block
	b.linef("Elevation results:")
	for i, r := range results {
		line := fmt.Sprintf("  %d.", i+1)
		if loc := latLng(r.Location); loc != "" {
			line += " " + loc
		}
		if r.Elevation != nil {
			line += fmt.Sprintf(": %.2f m", *r.Elevation)
		} else {
			line += ": unknown"
		}
		if r.Resolution != nil {
			line += fmt.Sprintf(" (resolution %.2f m)", *r.Resolution)
		}
		b.linef("%s", line)
	}
	return b.String()
}

// Directions renders the first route with its step-by-step instructions.
func Directions(routes []googlemaps.Route) string {
	if len(routes) == 0 {
		return NoResults
	}
	r := routes[0]
	var b block
	if s := strings.TrimSpace(r.Summary); s != "" {
		b.linef("Route via %s:", s)
	} else {
		b.linef("Route:")
	}
	for _, leg := range r.Legs {
		b.field("  ", "From", leg.StartAddress)
		b.field("  ", "To", leg.EndAddress)
		b.field("  ", "Distance", textValue(leg.Distance))
		b.field("  ", "Duration", textValue(leg.Duration))
		shown, hidden := capList(len(leg.Steps), maxRouteSteps)
		if shown > 0 {
			b.linef("  Steps:")
		}
		for i, s := range leg.Steps[:shown] {
			line := fmt.Sprintf("    %d. %s", i+1, stripHTML(s.HTMLInstructions))
			if d := textValue(s.Distance); d != "" {
				line += " (" + d + ")"
			}
			b.linef("%s", line)
		}
		if hidden > 0 {
			b.linef("    %s", more(hidden, "steps"))
		}
	}
	for _, w := range r.Warnings {
		b.field("  ", "Warning", w)
	}
	if len(routes) > 1 {
		b.linef("%d alternative %s available.", len(routes)-1, plural(len(routes)-1, "route", "routes"))
	}
	return b.String()
}

func stripHTML(s string) string {
	s = htmlTag.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}

func latLng(l *googlemaps.LatLng) string {
	if l == nil {
		return ""
	}
	return num(l.Lat) + ", " + num(l.Lng)
}

func textValue(tv *googlemaps.TextValue) string {
	if tv == nil {
		return ""
	}
	if t := strings.TrimSpace(tv.Text); t != "" {
		return t
	}
	return numPtr(tv.Value)
}

func ratingCount(rating *float64, total *int) string {
	if rating == nil {
		return ""
	}
	s := num(*rating) + "/5"
	if total != nil {
		s += fmt.Sprintf(" (%d ratings)", *total)
	}
	return s
}

// pick prefers the address the service resolved, falling back to the input.
func pick(resolved, input []string, i int) string {
	if i < len(resolved) && strings.TrimSpace(resolved[i]) != "" {
		return strings.TrimSpace(resolved[i])
	}
	if i < len(input) {
		return input[i]
	}
	return fmt.Sprintf("#%d", i+1)
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "Unknown"
	}
	return s
}
