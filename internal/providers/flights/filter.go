package flights

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Stops is the number of stops; -1 means the gateway did not know.
type Stops int

// UnmarshalJSON accepts a number, a numeric string, or anything else as unknown.
func (s *Stops) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = -1
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = Stops(n)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
			*s = Stops(n)
			return nil
		}
	}
	*s = -1
	return nil
}

// Known reports whether the stop count was provided.
func (s *Stops) Known() bool { return s != nil && *s >= 0 }

// Best keeps only the itineraries flagged as best, in gateway order.
func Best(in []Flight) []Flight {
	var out []Flight
	for _, f := range in {
		if f.IsBest {
			out = append(out, f)
		}
	}
	return out
}

// Cheapest returns a copy sorted by price ascending. Ties keep gateway order and
// unparseable prices sort last.
func Cheapest(in []Flight) []Flight {
	out := append([]Flight(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, okI := ParsePrice(out[i].Price)
		pj, okJ := ParsePrice(out[j].Price)
		switch {
		case okI && okJ:
			return pi < pj
		case okI:
			return true
		default:
			return false
		}
	})
	return out
}

// ParsePrice reads "$1,234" style prices.
func ParsePrice(price string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, price)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// clockLayout matches target times like "7:00PM" once spaces are removed.
const clockLayout = "3:04PM"

// ParseClock parses "H:MM AM/PM" into minutes after midnight. Spacing and case
// are ignored, so "9:30am" and "9:30 AM" are the same time.
func ParseClock(s string) (int, bool) {
	t, err := time.Parse(clockLayout, strings.ToUpper(strings.Join(strings.Fields(s), "")))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// departureClock extracts the clock time from "9:40 AM on Sat, Apr 5".
func departureClock(departure string) (int, bool) {
	fields := strings.Fields(departure)
	if len(fields) < 2 {
		return 0, false
	}
	return ParseClock(fields[0] + " " + fields[1])
}

// DepartingBefore keeps flights leaving strictly before minutes after midnight.
// Flights with an unreadable departure time are dropped.
func DepartingBefore(in []Flight, minutes int) []Flight {
	return filterByClock(in, func(m int) bool { return m < minutes })
}

// DepartingFrom keeps flights leaving at or after minutes after midnight.
func DepartingFrom(in []Flight, minutes int) []Flight {
	return filterByClock(in, func(m int) bool { return m >= minutes })
}

func filterByClock(in []Flight, keep func(int) bool) []Flight {
	var out []Flight
	for _, f := range in {
		if m, ok := departureClock(f.Departure); ok && keep(m) {
			out = append(out, f)
		}
	}
	return out
}
