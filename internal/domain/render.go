package domain

// Point is a position in viewport coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a viewport extent.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis-aligned box anchored at its top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Center returns the middle of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// RegionKind names the role of an interactive region.
type RegionKind string

const (
	RegionStart     RegionKind = "start"
	RegionOption    RegionKind = "option"
	RegionPlayAgain RegionKind = "play-again"
	RegionQuit      RegionKind = "quit"
)

// RegionID identifies a region across frames. Index is only meaningful for options.
type RegionID struct {
	Kind  RegionKind `json:"kind"`
	Index int        `json:"index"`
}

// Tier is the semantic framing of a highlighted element.
type Tier string

const (
	TierNone      Tier = ""
	TierCorrect   Tier = "correct"
	TierIncorrect Tier = "incorrect"
)

// RegionStyle carries the logical styling of a region.
type RegionStyle struct {
	Highlighted bool `json:"highlighted,omitempty"`
	Tier        Tier `json:"tier,omitempty"`
}

// Region is a bounded interactive area of a single frame.
type Region struct {
	ID     RegionID    `json:"id"`
	Bounds Rect        `json:"bounds"`
	Style  RegionStyle `json:"style"`
}

// FontSize selects one of the renderer's font sizes.
type FontSize string

const (
	FontLarge  FontSize = "large"
	FontMedium FontSize = "medium"
	FontSmall  FontSize = "small"
)

// TextRole is the semantic role of a text block.
type TextRole string

const (
	RoleTitle       TextRole = "title"
	RoleSubtitle    TextRole = "subtitle"
	RoleHeading     TextRole = "heading"
	RoleBody        TextRole = "body"
	RoleMuted       TextRole = "muted"
	RoleProgress    TextRole = "progress"
	RoleQuestion    TextRole = "question"
	RoleOptionLabel TextRole = "option-label"
	RoleFeedback    TextRole = "feedback"
	RoleExplanation TextRole = "explanation"
	RoleScore       TextRole = "score"
	RoleMessage     TextRole = "message"
	RoleButtonLabel TextRole = "button-label"
)

// Align controls how Position anchors a text block.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// TextStyle is the logical styling of a text block.
type TextStyle struct {
	Size  FontSize `json:"size"`
	Role  TextRole `json:"role"`
	Align Align    `json:"align"`
	Tier  Tier     `json:"tier,omitempty"`
}

// TextBlock is one line of text to draw.
type TextBlock struct {
	Text     string    `json:"text"`
	Position Point     `json:"position"`
	Style    TextStyle `json:"style"`
}

// Background names the backdrop of a phase; colors are left to the renderer.
type Background string

const (
	BackgroundMenu     Background = "menu"
	BackgroundQuestion Background = "question"
	BackgroundResults  Background = "results"
)

// ProgressBar shows how far through the session the user is.
type ProgressBar struct {
	Bounds   Rect    `json:"bounds"`
	Fraction float64 `json:"fraction"`
}

// Panel is a non-interactive framed box, used for answer feedback.
type Panel struct {
	Bounds Rect `json:"bounds"`
	Tier   Tier `json:"tier"`
}

// PerformanceTier buckets the final percentage.
type PerformanceTier string

const (
	PerformanceTop       PerformanceTier = "top"
	PerformanceMid       PerformanceTier = "mid"
	PerformanceEncourage PerformanceTier = "encourage"
)

// RenderDescriptor is everything a renderer needs to draw one frame.
type RenderDescriptor struct {
	Phase      Phase           `json:"phase"`
	Background Background      `json:"background"`
	Texts      []TextBlock     `json:"texts"`
	Regions    []Region        `json:"regions"`
	Progress   *ProgressBar    `json:"progress,omitempty"`
	Panel      *Panel          `json:"panel,omitempty"`
	Tier       PerformanceTier `json:"tier,omitempty"`
	Quit       bool            `json:"quit,omitempty"`
}
