package app

import (
	"context"
	"fmt"

	"aurora-quiz/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuestionSetRepository loads question content (from cache/backing store).
type QuestionSetRepository interface {
	GetQuestionSet(ctx context.Context, bankID string) (domain.QuestionSet, error)
}

// SessionRepository keeps the latest snapshot of each live session (in-memory, Redis, etc).
type SessionRepository interface {
	Save(ctx context.Context, sessionID string, state domain.SessionState) error
	Get(ctx context.Context, sessionID string) (domain.SessionState, error)
	Delete(ctx context.Context, sessionID string) error
}

// GameService opens quiz sessions for hosts and tracks their progress.
type GameService struct {
	sessions SessionRepository
	banks    QuestionSetRepository
	settings Settings
	measurer TextMeasurer
	log      *zap.Logger
	newID    func() string
}

func NewGameService(sessions SessionRepository, banks QuestionSetRepository, settings Settings, measurer TextMeasurer, log *zap.Logger) *GameService {
	if log == nil {
		log = zap.NewNop()
	}
	return &GameService{
		sessions: sessions,
		banks:    banks,
		settings: settings,
		measurer: measurer,
		log:      log,
		newID:    uuid.NewString,
	}
}

// Bank loads and validates a question bank.
func (s *GameService) Bank(ctx context.Context, bankID string) (*QuestionBank, error) {
	set, err := s.banks.GetQuestionSet(ctx, bankID)
	if err != nil {
		return nil, err
	}
	return NewQuestionBankFromSet(set)
}

// Summary describes a bank without exposing its answers.
func (s *GameService) Summary(ctx context.Context, bankID string) (domain.BankSummary, error) {
	bank, err := s.Bank(ctx, bankID)
	if err != nil {
		return domain.BankSummary{}, err
	}
	return domain.BankSummary{ID: bankID, Title: bank.Title(), Questions: bank.Len()}, nil
}

// OpenSession starts a new machine over a validated bank. Invalid content never reaches a session.
func (s *GameService) OpenSession(ctx context.Context, bankID string) (string, *Machine, error) {
	bank, err := s.Bank(ctx, bankID)
	if err != nil {
		return "", nil, err
	}
	id := s.newID()
	machine, err := NewMachine(bank, s.measurer, s.settings, WithLogger(s.log.With(zap.String("session", id))))
	if err != nil {
		return "", nil, err
	}
	if err := s.sessions.Save(ctx, id, machine.State()); err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}
	s.log.Info("session opened", zap.String("session", id), zap.String("bank", bankID), zap.Int("questions", bank.Len()))
	return id, machine, nil
}

// Record stores the latest snapshot of a session.
func (s *GameService) Record(ctx context.Context, sessionID string, state domain.SessionState) error {
	return s.sessions.Save(ctx, sessionID, state)
}

// Session returns the last recorded snapshot.
func (s *GameService) Session(ctx context.Context, sessionID string) (domain.SessionState, error) {
	return s.sessions.Get(ctx, sessionID)
}

// CloseSession forgets a session once its host goes away.
func (s *GameService) CloseSession(ctx context.Context, sessionID string) {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.log.Warn("drop session", zap.String("session", sessionID), zap.Error(err))
		return
	}
	s.log.Info("session closed", zap.String("session", sessionID))
}
