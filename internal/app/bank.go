package app

import (
	"fmt"
	"math/rand"
	"strings"

	"aurora-quiz/internal/domain"
)

// QuestionBank is a validated, immutable set of questions.
type QuestionBank struct {
	id        string
	title     string
	questions []domain.Question
}

// Order is a permutation of bank positions for one session.
type Order []int

// NewQuestionBank validates and copies questions. It fails fast on the first malformed record.
func NewQuestionBank(questions []domain.Question) (*QuestionBank, error) {
	if len(questions) == 0 {
		return nil, domain.ErrEmptyBank
	}
	copied := make([]domain.Question, len(questions))
	for i, q := range questions {
		if err := ValidateQuestion(q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		q.Options = append([]string(nil), q.Options...)
		copied[i] = q
	}
	return &QuestionBank{questions: copied}, nil
}

// NewQuestionBankFromSet builds a bank from content loaded by a QuestionSource.
func NewQuestionBankFromSet(set domain.QuestionSet) (*QuestionBank, error) {
	bank, err := NewQuestionBank(set.Questions)
	if err != nil {
		if set.ID != "" {
			return nil, fmt.Errorf("bank %s: %w", set.ID, err)
		}
		return nil, err
	}
	bank.id = set.ID
	bank.title = set.Title
	return bank, nil
}

// ValidateQuestion checks a single question record.
func ValidateQuestion(q domain.Question) error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: empty prompt", domain.ErrInvalidQuestion)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: need at least 2 options, got %d", domain.ErrInvalidQuestion, len(q.Options))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: option %d is empty", domain.ErrInvalidQuestion, i+1)
		}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: correct index %d out of range [0, %d)", domain.ErrInvalidQuestion, q.CorrectIndex, len(q.Options))
	}
	return nil
}

func (b *QuestionBank) ID() string { return b.id }
func (b *QuestionBank) Title() string { return b.title }

// Len returns the number of questions.
func (b *QuestionBank) Len() int {
	return len(b.questions)
}

// Question returns the question at bank position i.
func (b *QuestionBank) Question(i int) domain.Question {
	q := b.questions[i]
	q.Options = append([]string(nil), q.Options...)
	return q
}

// Shuffle returns a new uniformly random order. The bank itself is never reordered.
func (b *QuestionBank) Shuffle(rnd *rand.Rand) Order {
	return Order(rnd.Perm(len(b.questions)))
}
