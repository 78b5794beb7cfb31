package app

import (
	"math/rand"
	"time"

	"aurora-quiz/internal/domain"
	"aurora-quiz/internal/layout"
	"go.uber.org/zap"
)

// TextMeasurer returns the rendered width of text at a font size.
type TextMeasurer interface {
	Measure(size domain.FontSize, text string) float64
}

// Machine is the quiz session state machine. It is driven by a single host
// loop and is not safe for concurrent use.
type Machine struct {
	bank     *QuestionBank
	settings Settings
	measurer TextMeasurer
	rnd      *rand.Rand
	log      *zap.Logger

	phase             domain.Phase
	order             Order
	index             int
	score             Scoreboard
	selected          *int
	feedback          FeedbackTimer
	questionStartedAt time.Time
	quit              bool
}

// Option configures a Machine.
type Option func(*Machine)

// WithRand sets the source used to shuffle question order.
func WithRand(rnd *rand.Rand) Option {
	return func(m *Machine) { m.rnd = rnd }
}

func WithLogger(log *zap.Logger) Option {
	return func(m *Machine) { m.log = log }
}

// NewMachine creates a session in the Menu phase.
func NewMachine(bank *QuestionBank, measurer TextMeasurer, settings Settings, opts ...Option) (*Machine, error) {
	if bank == nil || bank.Len() == 0 {
		return nil, domain.ErrEmptyBank
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	m := &Machine{
		bank:     bank,
		settings: settings,
		measurer: measurer,
		log:      zap.NewNop(),
		phase:    domain.PhaseMenu,
		feedback: NewFeedbackTimer(settings.MinDwell, settings.AutoAdvance),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.measurer == nil {
		m.measurer = layout.NewFaceMeasurer()
	}
	if m.rnd == nil {
		m.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	m.order = bank.Shuffle(m.rnd)
	return m, nil
}

// Tick advances the session to now, applies at most one pointer event and
// returns the frame to draw. Timeouts are checked first; a tick that times
// out discards its pointer event.
func (m *Machine) Tick(now time.Time, ev *domain.PointerEvent) domain.RenderDescriptor {
	consumed := m.applyTimeouts(now)
	if ev != nil && !consumed && !m.quit {
		m.handlePointer(now, ev.Point())
	}
	m.ensureInBounds()
	return m.view()
}

// State returns a snapshot of the session.
func (m *Machine) State() domain.SessionState {
	st := domain.SessionState{
		Phase:         m.phase,
		QuestionIndex: m.index,
		QuestionCount: m.bank.Len(),
		Score:         m.score.Correct(),
		Answered:      m.score.Answered(),
	}
	if m.selected != nil {
		sel := *m.selected
		st.SelectedAnswer = &sel
	}
	if started, ok := m.feedback.StartedAt(); ok {
		st.FeedbackStartedAt = &started
	}
	return st
}

// Order returns the bank positions in the current session's order.
func (m *Machine) Order() []int {
	return append([]int(nil), m.order...)
}

// Bank returns the questions this session draws from.
func (m *Machine) Bank() *QuestionBank {
	return m.bank
}

// Done reports whether the user chose to quit.
func (m *Machine) Done() bool {
	return m.quit
}

func (m *Machine) applyTimeouts(now time.Time) bool {
	switch m.phase {
	case domain.PhaseFeedback:
		if m.feedback.MustAutoAdvance(now) {
			m.log.Debug("feedback auto-advance", zap.Int("question", m.index))
			m.advance(now)
			return true
		}
	case domain.PhaseQuestion:
		limit := m.settings.QuestionTimeLimit
		if limit > 0 && m.selected == nil && sinceClamped(m.questionStartedAt, now) >= limit {
			m.log.Debug("question timed out", zap.Int("question", m.index))
			m.advance(now)
			return true
		}
	}
	return false
}

func (m *Machine) handlePointer(now time.Time, p domain.Point) {
	// Hit-test against the frame the user is looking at.
	region, hit := HitTest(m.view().Regions, p)

	switch m.phase {
	case domain.PhaseMenu:
		if hit && region.ID.Kind == domain.RegionStart {
			m.start(now)
		}
	case domain.PhaseQuestion:
		if hit && region.ID.Kind == domain.RegionOption && m.selected == nil {
			m.commit(now, region.ID.Index)
		}
	case domain.PhaseFeedback:
		if m.feedback.CanManuallyAdvance(now) {
			m.advance(now)
		}
	case domain.PhaseResults:
		if !hit {
			return
		}
		switch region.ID.Kind {
		case domain.RegionPlayAgain:
			m.restart()
		case domain.RegionQuit:
			m.log.Info("session quit", zap.Int("score", m.score.Correct()), zap.Int("questions", m.bank.Len()))
			m.quit = true
		}
	}
}

func (m *Machine) start(now time.Time) {
	m.resetSession()
	m.log.Debug("session started", zap.Ints("order", m.order))
	m.enterQuestion(now)
}

func (m *Machine) restart() {
	m.resetSession()
	m.phase = domain.PhaseMenu
}

func (m *Machine) resetSession() {
	m.order = m.bank.Shuffle(m.rnd)
	m.index = 0
	m.score.Reset()
	m.selected = nil
	m.feedback.Stop()
}

func (m *Machine) commit(now time.Time, option int) {
	q, ok := m.currentQuestion()
	if !ok || option < 0 || option >= len(q.Options) {
		return
	}
	m.selected = &option
	correct := option == q.CorrectIndex
	m.score.RecordAnswer(correct)
	m.feedback.Start(now)
	m.phase = domain.PhaseFeedback
	m.log.Debug("answer committed", zap.Int("question", m.index), zap.Int("option", option), zap.Bool("correct", correct))
}

func (m *Machine) advance(now time.Time) {
	m.index++
	m.selected = nil
	m.feedback.Stop()
	m.enterQuestion(now)
}

func (m *Machine) enterQuestion(now time.Time) {
	if m.index >= m.bank.Len() {
		m.finish()
		return
	}
	m.phase = domain.PhaseQuestion
	m.questionStartedAt = now
}

func (m *Machine) finish() {
	m.index = m.bank.Len()
	m.selected = nil
	m.feedback.Stop()
	m.phase = domain.PhaseResults
	m.log.Debug("session finished", zap.Int("score", m.score.Correct()), zap.Int("questions", m.bank.Len()))
}

// ensureInBounds moves to Results instead of ever indexing past the last question.
func (m *Machine) ensureInBounds() {
	if m.phase != domain.PhaseQuestion && m.phase != domain.PhaseFeedback {
		return
	}
	if _, ok := m.currentQuestion(); !ok {
		m.finish()
	}
}

func (m *Machine) currentQuestion() (domain.Question, bool) {
	if m.index < 0 || m.index >= len(m.order) {
		return domain.Question{}, false
	}
	return m.bank.Question(m.order[m.index]), true
}
