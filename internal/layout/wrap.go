// Package layout lays out variable-length strings inside a fixed-width viewport.
package layout

import "strings"

// MeasureFunc returns the rendered width of s.
type MeasureFunc func(s string) float64

// Wrap splits text into lines whose measured width does not exceed maxWidth.
// Words are never broken: a word wider than maxWidth sits alone on its line.
// Runs of whitespace collapse to a single space; blank text yields no lines.
func Wrap(text string, measure MeasureFunc, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
