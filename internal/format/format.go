// Package format renders provider payloads as the plain-text summaries returned
// by tools. Every function is pure: absent fields are left out, long lists are
// cut with an "... and N more" line, and map data is walked in sorted key order.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mwiater/travvy/internal/util"
)

// block accumulates output lines and skips empty values.
type block struct {
	lines []string
}

func (b *block) linef(format string, args ...any) {
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

// field appends "indent label: value" when value is not blank.
func (b *block) field(indent, label, value string) {
	if value = strings.TrimSpace(value); value != "" {
		b.lines = append(b.lines, indent+label+": "+value)
	}
}

func (b *block) String() string {
	return strings.Join(b.lines, "\n")
}

// more renders the truncation marker for hidden list items.
func more(hidden int, noun string) string {
	return fmt.Sprintf("... and %d more %s", hidden, noun)
}

// capList reports how many of n items to show under limit; limit <= 0 shows all.
func capList(n, limit int) (shown, hidden int) {
	if limit <= 0 || n <= limit {
		return n, 0
	}
	return limit, n - limit
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func numPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return num(*v)
}

func intPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// joinPresent joins the non-blank parts with sep.
func joinPresent(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func coords(lat, lon *float64) string {
	if lat == nil || lon == nil {
		return ""
	}
	return num(*lat) + ", " + num(*lon)
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

func truncate(s string, max int) string {
	return util.TruncateRunes(strings.TrimSpace(s), max)
}
