package app

import "time"

// FeedbackTimer tracks how long the answer feedback has been on screen.
type FeedbackTimer struct {
	minDwell    time.Duration
	autoAdvance time.Duration
	startedAt   time.Time
	running     bool
}

func NewFeedbackTimer(minDwell, autoAdvance time.Duration) FeedbackTimer {
	return FeedbackTimer{minDwell: minDwell, autoAdvance: autoAdvance}
}

func (t *FeedbackTimer) Start(now time.Time) {
	t.startedAt = now
	t.running = true
}

func (t *FeedbackTimer) Stop() {
	t.startedAt = time.Time{}
	t.running = false
}

func (t *FeedbackTimer) Running() bool {
	return t.running
}

// StartedAt returns the start time while the timer runs.
func (t *FeedbackTimer) StartedAt() (time.Time, bool) {
	return t.startedAt, t.running
}

// Elapsed returns now minus the start time. A clock that went backwards yields 0.
func (t *FeedbackTimer) Elapsed(now time.Time) time.Duration {
	if !t.running {
		return 0
	}
	return sinceClamped(t.startedAt, now)
}

// CanManuallyAdvance reports whether a click may dismiss the feedback.
func (t *FeedbackTimer) CanManuallyAdvance(now time.Time) bool {
	return t.running && t.Elapsed(now) >= t.minDwell
}

// MustAutoAdvance reports whether the feedback has been shown long enough to advance on its own.
func (t *FeedbackTimer) MustAutoAdvance(now time.Time) bool {
	return t.running && t.Elapsed(now) >= t.autoAdvance
}

func sinceClamped(start, now time.Time) time.Duration {
	if d := now.Sub(start); d > 0 {
		return d
	}
	return 0
}
