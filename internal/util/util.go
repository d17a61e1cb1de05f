// internal/util/util.go
// Package util holds the small text helpers shared by formatters and the CLI.
package util

import (
	"strings"
	"unicode/utf8"
)

// TruncateRunes cuts text to maxRunes runes, appending "…" when anything was dropped.
func TruncateRunes(text string, maxRunes int) string {
	if maxRunes < 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	return string([]rune(text)[:maxRunes]) + "…"
}

// FirstNonEmpty returns the first value that is not blank, trimmed.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// WrapToWidth wraps each paragraph of text at width runes. Words longer than
// width are split.
func WrapToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		out = append(out, wrapLine(para, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}
	var (
		lines []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			lines = append(lines, string(cur))
			cur = cur[:0]
		}
	}
	for _, w := range words {
		r := []rune(w)
		switch {
		case len(cur) > 0 && len(cur)+1+len(r) <= width:
			cur = append(append(cur, ' '), r...)
		case len(r) <= width:
			flush()
			cur = append(cur, r...)
		default:
			flush()
			for len(r) > width {
				lines = append(lines, string(r[:width]))
				r = r[width:]
			}
			cur = append(cur, r...)
		}
	}
	flush()
	return lines
}

// Indent prefixes every non-empty line of text.
func Indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
