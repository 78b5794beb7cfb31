package app

import "aurora-quiz/internal/domain"

// Renderer draws frames produced by Machine.Tick.
type Renderer interface {
	TextMeasurer
	Clear(bg domain.Background)
	DrawProgress(bar domain.ProgressBar)
	DrawRegion(region domain.Region)
	DrawPanel(panel domain.Panel)
	DrawText(block domain.TextBlock)
}

// Paint draws d back to front: background, progress, regions, panel, then text.
func Paint(r Renderer, d domain.RenderDescriptor) {
	r.Clear(d.Background)
	if d.Progress != nil {
		r.DrawProgress(*d.Progress)
	}
	for _, region := range d.Regions {
		r.DrawRegion(region)
	}
	if d.Panel != nil {
		r.DrawPanel(*d.Panel)
	}
	for _, block := range d.Texts {
		r.DrawText(block)
	}
}
