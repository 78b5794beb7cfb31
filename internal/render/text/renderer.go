// Package text renders frames as plain text, one line per drawn element.
package text

import (
	"fmt"
	"io"
	"strings"

	"aurora-quiz/internal/app"
	"aurora-quiz/internal/domain"
)

// Renderer writes frames to an io.Writer. Write errors are kept and reported by Err.
type Renderer struct {
	app.TextMeasurer
	w   io.Writer
	err error
}

func NewRenderer(w io.Writer, measurer app.TextMeasurer) *Renderer {
	return &Renderer{TextMeasurer: measurer, w: w}
}

func (r *Renderer) Clear(bg domain.Background) {
	r.printf("== %s\n", bg)
}

func (r *Renderer) DrawProgress(bar domain.ProgressBar) {
	const width = 20
	filled := int(bar.Fraction * width)
	r.printf("[%s%s] %3.0f%%\n", strings.Repeat("#", filled), strings.Repeat(".", width-filled), bar.Fraction*100)
}

func (r *Renderer) DrawRegion(region domain.Region) {
	label := string(region.ID.Kind)
	if region.ID.Kind == domain.RegionOption {
		label = fmt.Sprintf("option %s", app.OptionLabel(region.ID.Index))
	}
	var marks []string
	if region.Style.Highlighted {
		marks = append(marks, "selected")
	}
	if region.Style.Tier != domain.TierNone {
		marks = append(marks, string(region.Style.Tier))
	}
	b := region.Bounds
	r.printf("  <%s> at (%.0f,%.0f) %.0fx%.0f", label, b.X, b.Y, b.W, b.H)
	if len(marks) > 0 {
		r.printf(" %s", strings.Join(marks, ","))
	}
	r.printf("\n")
}

func (r *Renderer) DrawPanel(panel domain.Panel) {
	r.printf("  +-- %s --+\n", panel.Tier)
}

func (r *Renderer) DrawText(block domain.TextBlock) {
	indent := "  "
	if block.Style.Align == domain.AlignCenter {
		indent = "    "
	}
	r.printf("%s%s\n", indent, block.Text)
}

// Err returns the first write error.
func (r *Renderer) Err() error {
	return r.err
}

func (r *Renderer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}
