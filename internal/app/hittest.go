package app

import "aurora-quiz/internal/domain"

// HitTest returns the first region, in slice order, containing p.
func HitTest(regions []domain.Region, p domain.Point) (domain.Region, bool) {
	for _, r := range regions {
		if r.Bounds.Contains(p) {
			return r, true
		}
	}
	return domain.Region{}, false
}
