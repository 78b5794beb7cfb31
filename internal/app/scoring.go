package app

import "aurora-quiz/internal/domain"

// Scoreboard counts committed answers for one session. Each correct answer is worth one point.
type Scoreboard struct {
	correct  int
	answered int
}

// RecordAnswer registers one committed answer.
func (s *Scoreboard) RecordAnswer(isCorrect bool) {
	s.answered++
	if isCorrect {
		s.correct++
	}
}

func (s *Scoreboard) Correct() int { return s.correct }
func (s *Scoreboard) Answered() int { return s.answered }

func (s *Scoreboard) Reset() {
	s.correct = 0
	s.answered = 0
}

// Percentage returns the correct share of total questions, 0..100.
func (s *Scoreboard) Percentage(total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(s.correct) / float64(total) * 100
}

// TierCutoffs are the minimum percentages for the top and mid result tiers.
type TierCutoffs struct {
	Top float64
	Mid float64
}

// Classify buckets a percentage into a result tier.
func (c TierCutoffs) Classify(percent float64) domain.PerformanceTier {
	switch {
	case percent >= c.Top:
		return domain.PerformanceTop
	case percent >= c.Mid:
		return domain.PerformanceMid
	default:
		return domain.PerformanceEncourage
	}
}
