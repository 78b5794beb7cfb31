package domain

import "errors"

var (
	// ErrEmptyBank is returned when a question bank has no questions.
	ErrEmptyBank = errors.New("question bank is empty")
	// ErrInvalidQuestion marks a malformed question record.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrBankNotFound indicates the question set could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrSessionNotFound is returned when no live session has the requested ID.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrInvalidSettings is returned for inconsistent session timing or tier settings.
	ErrInvalidSettings = errors.New("invalid session settings")
)
