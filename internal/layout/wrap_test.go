package layout

import (
	"reflect"
	"strings"
	"testing"

	"aurora-quiz/internal/domain"
)

func runeWidth(s string) float64 {
	return float64(len([]rune(s)))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{name: "empty", text: "", maxWidth: 10, want: nil},
		{name: "blank", text: "   \t\n ", maxWidth: 10, want: nil},
		{name: "fits on one line", text: "What is 2 + 2?", maxWidth: 20, want: []string{"What is 2 + 2?"}},
		{name: "exact width", text: "abc def", maxWidth: 7, want: []string{"abc def"}},
		{name: "breaks greedily", text: "the quick brown fox jumps", maxWidth: 10, want: []string{"the quick", "brown fox", "jumps"}},
		{name: "oversize word alone", text: "a supercalifragilistic b", maxWidth: 5, want: []string{"a", "supercalifragilistic", "b"}},
		{name: "oversize first word", text: "supercalifragilistic is long", maxWidth: 7, want: []string{"supercalifragilistic", "is long"}},
		{name: "collapses whitespace", text: "  one   two\tthree \n", maxWidth: 100, want: []string{"one two three"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, runeWidth, tt.maxWidth)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Wrap(%q, %v) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestWrapRoundTripAndWidth(t *testing.T) {
	texts := []string{
		"Mars is called the Red Planet due to its reddish appearance from iron oxide.",
		"William Shakespeare wrote this famous tragedy in the early part of his career.",
		"x  yy   zzz    wwww antidisestablishmentarianism q",
	}
	measure := For(Monospace{Advance: 7}, domain.FontSmall)
	for _, width := range []float64{1, 35, 70, 140, 700} {
		for _, text := range texts {
			lines := Wrap(text, measure, width)
			if got, want := strings.Join(lines, " "), strings.Join(strings.Fields(text), " "); got != want {
				t.Fatalf("round trip at width %v: got %q, want %q", width, got, want)
			}
			for _, line := range lines {
				if measure(line) > width && strings.Contains(line, " ") {
					t.Fatalf("line %q exceeds width %v", line, width)
				}
			}
		}
	}
}

func TestFaceMeasurerScalesBySize(t *testing.T) {
	m := NewFaceMeasurer()
	small := m.Measure(domain.FontSmall, "hello")
	large := m.Measure(domain.FontLarge, "hello")
	if small <= 0 || large <= small {
		t.Fatalf("expected larger font to measure wider, small=%v large=%v", small, large)
	}
	if got := m.Measure(domain.FontSmall, ""); got != 0 {
		t.Fatalf("expected empty string to measure 0, got %v", got)
	}
	// Face7x13 advances 7px per glyph at its natural 13px height.
	want := 5 * 7 * DefaultFontPixels[domain.FontSmall] / 13
	if small != want {
		t.Fatalf("expected %v, got %v", want, small)
	}
}
