package app

import (
	"fmt"
	"time"

	"aurora-quiz/internal/domain"
)

// Settings are the per-session constants.
type Settings struct {
	// MinDwell is how long feedback stays up before a click may dismiss it.
	MinDwell time.Duration
	// AutoAdvance dismisses feedback regardless of input.
	AutoAdvance time.Duration
	// QuestionTimeLimit skips an unanswered question, unscored. Zero disables it.
	QuestionTimeLimit time.Duration
	Tiers             TierCutoffs
	Viewport          domain.Size
}

func DefaultSettings() Settings {
	return Settings{
		MinDwell:          2 * time.Second,
		AutoAdvance:       3 * time.Second,
		QuestionTimeLimit: 30 * time.Second,
		Tiers:             TierCutoffs{Top: 80, Mid: 60},
		Viewport:          domain.Size{Width: 1200, Height: 800},
	}
}

// Validate rejects settings the state machine cannot honor.
func (s Settings) Validate() error {
	if s.MinDwell < 0 || s.AutoAdvance <= 0 {
		return fmt.Errorf("%w: dwell %s and auto-advance %s must be positive", domain.ErrInvalidSettings, s.MinDwell, s.AutoAdvance)
	}
	if s.MinDwell >= s.AutoAdvance {
		return fmt.Errorf("%w: min dwell %s must be shorter than auto-advance %s", domain.ErrInvalidSettings, s.MinDwell, s.AutoAdvance)
	}
	if s.QuestionTimeLimit < 0 {
		return fmt.Errorf("%w: negative question time limit", domain.ErrInvalidSettings)
	}
	if s.Tiers.Mid > s.Tiers.Top {
		return fmt.Errorf("%w: mid tier %.0f above top tier %.0f", domain.ErrInvalidSettings, s.Tiers.Mid, s.Tiers.Top)
	}
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return fmt.Errorf("%w: empty viewport", domain.ErrInvalidSettings)
	}
	return nil
}
