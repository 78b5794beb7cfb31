package layout

import (
	"unicode/utf8"

	"aurora-quiz/internal/domain"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// DefaultFontPixels maps logical font sizes to pixel heights.
var DefaultFontPixels = map[domain.FontSize]float64{
	domain.FontLarge:  40,
	domain.FontMedium: 28,
	domain.FontSmall:  20,
}

// FaceMeasurer measures text with a bitmap face scaled to each logical font size.
type FaceMeasurer struct {
	face   font.Face
	base   float64
	pixels map[domain.FontSize]float64
}

// NewFaceMeasurer uses basicfont.Face7x13 scaled to DefaultFontPixels.
func NewFaceMeasurer() *FaceMeasurer {
	return NewFaceMeasurerWith(basicfont.Face7x13, 13, DefaultFontPixels)
}

// NewFaceMeasurerWith measures with face, whose natural height is base pixels.
func NewFaceMeasurerWith(face font.Face, base float64, pixels map[domain.FontSize]float64) *FaceMeasurer {
	return &FaceMeasurer{face: face, base: base, pixels: pixels}
}

// Measure returns the width of text rendered at size.
func (m *FaceMeasurer) Measure(size domain.FontSize, text string) float64 {
	advance := font.MeasureString(m.face, text)
	width := float64(advance) / 64
	px, ok := m.pixels[size]
	if !ok || m.base <= 0 {
		return width
	}
	return width * px / m.base
}

// Monospace measures every rune as Advance wide regardless of font size.
type Monospace struct {
	Advance float64
}

func (m Monospace) Measure(_ domain.FontSize, text string) float64 {
	return float64(utf8.RuneCountInString(text)) * m.Advance
}

// For binds a measurer to one font size.
func For(m interface {
	Measure(domain.FontSize, string) float64
}, size domain.FontSize) MeasureFunc {
	return func(s string) float64 { return m.Measure(size, s) }
}
