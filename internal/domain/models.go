package domain

import "time"

// Question models an MCQ question with exactly one correct option.
type Question struct {
	ID           string   `json:"id,omitempty" yaml:"id"`
	Prompt       string   `json:"prompt" yaml:"prompt"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex int      `json:"correctIndex" yaml:"correct_index"`
	Explanation  string   `json:"explanation" yaml:"explanation"`
}

// QuestionSet is a collection of questions as stored by a content source.
type QuestionSet struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// BankSummary describes a question set without revealing answers.
type BankSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Questions int    `json:"questions"`
}

// Phase is the current screen of a quiz session.
type Phase string

const (
	PhaseMenu     Phase = "menu"
	PhaseQuestion Phase = "question"
	PhaseFeedback Phase = "feedback"
	PhaseResults  Phase = "results"
)

// SessionState is a read-only snapshot of a session.
type SessionState struct {
	Phase             Phase      `json:"phase"`
	QuestionIndex     int        `json:"questionIndex"`
	QuestionCount     int        `json:"questionCount"`
	Score             int        `json:"score"`
	Answered          int        `json:"answered"`
	SelectedAnswer    *int       `json:"selectedAnswer,omitempty"`
	FeedbackStartedAt *time.Time `json:"feedbackStartedAt,omitempty"`
}

// PointerEvent is a click at viewport coordinates.
type PointerEvent struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point returns the event position.
func (e PointerEvent) Point() Point {
	return Point{X: e.X, Y: e.Y}
}
