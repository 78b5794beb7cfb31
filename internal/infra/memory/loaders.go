package memory

import (
	"context"
	"fmt"
	"os"

	"aurora-quiz/internal/domain"
	"gopkg.in/yaml.v3"
)

// StaticQuestionLoader is a simple loader backed by an in-memory map (useful for tests/demos).
type StaticQuestionLoader struct {
	sets map[string]domain.QuestionSet
}

func NewStaticQuestionLoader(sets ...domain.QuestionSet) *StaticQuestionLoader {
	l := &StaticQuestionLoader{sets: make(map[string]domain.QuestionSet, len(sets))}
	for _, set := range sets {
		l.sets[set.ID] = set
	}
	return l
}

func (l *StaticQuestionLoader) LoadQuestionSet(_ context.Context, bankID string) (domain.QuestionSet, error) {
	if set, ok := l.sets[bankID]; ok {
		return set, nil
	}
	return domain.QuestionSet{}, domain.ErrBankNotFound
}

// FileQuestionLoader reads question sets from a YAML file holding a list of sets.
// The file is re-read on every load; wrap it in a QuestionRepository to cache.
type FileQuestionLoader struct {
	path string
}

func NewFileQuestionLoader(path string) *FileQuestionLoader {
	return &FileQuestionLoader{path: path}
}

func (l *FileQuestionLoader) LoadQuestionSet(_ context.Context, bankID string) (domain.QuestionSet, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return domain.QuestionSet{}, fmt.Errorf("read question file: %w", err)
	}
	var sets []domain.QuestionSet
	if err := yaml.Unmarshal(data, &sets); err != nil {
		return domain.QuestionSet{}, fmt.Errorf("parse question file %s: %w", l.path, err)
	}
	for _, set := range sets {
		if set.ID == bankID {
			return set, nil
		}
	}
	return domain.QuestionSet{}, fmt.Errorf("%w: %s in %s", domain.ErrBankNotFound, bankID, l.path)
}

// SampleQuestionSet is the built-in bank served when no content source is configured.
func SampleQuestionSet() domain.QuestionSet {
	return domain.QuestionSet{
		ID:    "sample",
		Title: "General knowledge",
		Questions: []domain.Question{
			{
				ID:           "capital-france",
				Prompt:       "What is the capital of France?",
				Options:      []string{"London", "Berlin", "Paris", "Madrid"},
				CorrectIndex: 2,
				Explanation:  "Paris is the capital and largest city of France.",
			},
			{
				ID:           "red-planet",
				Prompt:       "Which planet is known as the Red Planet?",
				Options:      []string{"Venus", "Mars", "Jupiter", "Saturn"},
				CorrectIndex: 1,
				Explanation:  "Mars is called the Red Planet due to its reddish appearance from iron oxide.",
			},
			{
				ID:           "two-plus-two",
				Prompt:       "What is 2 + 2?",
				Options:      []string{"3", "4", "5", "6"},
				CorrectIndex: 1,
				Explanation:  "2 + 2 equals 4, a basic arithmetic operation.",
			},
			{
				ID:           "romeo-juliet",
				Prompt:       "Who wrote 'Romeo and Juliet'?",
				Options:      []string{"Charles Dickens", "William Shakespeare", "Jane Austen", "Mark Twain"},
				CorrectIndex: 1,
				Explanation:  "William Shakespeare wrote this famous tragedy in the early part of his career.",
			},
		},
	}
}
