package format

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/mwiater/travvy/internal/providers/booking"
	"github.com/mwiater/travvy/internal/util"
)

var roomPattern = regexp.MustCompile(`(Hotel room|Entire villa|Entire apartment|Entire home|Private suite|Private room)[^.]*`)

// Destinations renders destination matches for a search query.
func Destinations(query string, dests []booking.Destination) string {
	if len(dests) == 0 {
		return "No destinations found matching your query."
	}
	entries := make([]string, 0, len(dests))
	for _, d := range dests {
		var b block
		b.field("", "Name", util.FirstNonEmpty(d.Name, d.Label))
		b.field("", "Type", d.DestType)
		b.field("", "Destination ID", d.DestID.String())
		b.field("", "City ID", d.CityUFI.String())
		b.field("", "Region", d.Region)
		b.field("", "Country", d.Country)
		b.field("", "Hotels", intPtr(d.Hotels))
		b.field("", "Coordinates", coords(d.Latitude, d.Longitude))
		if len(b.lines) == 0 {
			b.linef("Unnamed destination")
		}
		entries = append(entries, b.String())
	}
	return fmt.Sprintf("Found %d %s for '%s':\n\n", len(dests), plural(len(dests), "destination", "destinations"), query) + strings.Join(entries, "\n---\n")
}

// Hotels renders hotel listings for a destination, showing at most limit.
func Hotels(destinationID string, hotels []booking.Hotel, limit int) string {
	if len(hotels) == 0 {
		return "No hotels found for this destination and dates."
	}
	shown, hidden := capList(len(hotels), limit)

	sections := []string{fmt.Sprintf("Found %d %s for destination %s:", len(hotels), plural(len(hotels), "hotel", "hotels"), destinationID)}
	for i, h := range hotels[:shown] {
		sections = append(sections, hotel(i+1, h))
	}
	if hidden > 0 {
		sections = append(sections, more(hidden, "hotels"))
	}
	return strings.Join(sections, "\n\n")
}

func hotel(index int, h booking.Hotel) string {
	p := h.Property
	if p == nil {
		return fmt.Sprintf("Hotel %d: Information not available", index)
	}
	var b block
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = "Unnamed property"
	}
	b.linef("Hotel %d: %s", index, name)
	b.field("  ", "Location", p.WishlistName)
	b.field("  ", "Rating", rating(p))
	if room := roomPattern.FindString(h.AccessibilityLabel); room != "" {
		b.field("  ", "Room", room)
	}
	if pb := p.PriceBreakdown; pb != nil && pb.GrossPrice != nil && pb.GrossPrice.Value != nil {
		b.field("  ", "Price", money(pb.GrossPrice))
		if pct := discount(pb); pct > 0 {
			b.field("  ", "Discount", fmt.Sprintf("%d%% off", pct))
		}
	}
	if p.PropertyClass != nil && *p.PropertyClass > 0 {
		b.field("  ", "Stars", num(*p.PropertyClass))
	}
	b.field("  ", "Coordinates", coords(p.Latitude, p.Longitude))
	if p.Checkin != nil {
		b.field("  ", "Check-in", joinPresent("-", p.Checkin.FromTime, p.Checkin.UntilTime))
	}
	if p.Checkout != nil && strings.TrimSpace(p.Checkout.UntilTime) != "" {
		b.field("  ", "Check-out", "by "+strings.TrimSpace(p.Checkout.UntilTime))
	}
	if len(p.PhotoURLs) > 0 {
		b.field("  ", "Photo", p.PhotoURLs[0])
	}
	return b.String()
}

func rating(p *booking.Property) string {
	if p.ReviewScore == nil {
		return ""
	}
	s := num(*p.ReviewScore) + "/10"
	if p.ReviewCount != nil && strings.TrimSpace(p.ReviewScoreWord) != "" {
		s += fmt.Sprintf(" (%d reviews - %s)", *p.ReviewCount, strings.TrimSpace(p.ReviewScoreWord))
	} else if p.ReviewCount != nil {
		s += fmt.Sprintf(" (%d reviews)", *p.ReviewCount)
	}
	return s
}

func money(p *booking.Price) string {
	amount := fmt.Sprintf("%.2f", *p.Value)
	if c := strings.TrimSpace(p.Currency); c != "" {
		return c + " " + amount
	}
	return amount
}

// discount returns the whole-percent saving against the struck-through price.
func discount(pb *booking.PriceBreakdown) int {
	if pb.StrikethroughPrice == nil || pb.StrikethroughPrice.Value == nil {
		return 0
	}
	current, original := *pb.GrossPrice.Value, *pb.StrikethroughPrice.Value
	if original <= current || original <= 0 {
		return 0
	}
	return int(math.Round((1 - current/original) * 100))
}
