package app

import (
	"fmt"
	"math"

	"aurora-quiz/internal/domain"
	"aurora-quiz/internal/layout"
)

const (
	margin           = 50.0
	buttonWidth      = 200.0
	buttonHeight     = 60.0
	optionMinHeight  = 60.0
	promptGap        = 50.0
	optionGap        = 20.0
	optionPadding    = 20.0
	lineMedium       = 40.0
	lineSmall        = 25.0
	instructionStep  = 30.0
	feedbackInset    = 100.0
	feedbackHeight   = 150.0
	feedbackFromFoot = 200.0
	panelPadding     = 20.0
)

var menuInstructions = []string{
	"Instructions:",
	"• Answer multiple choice questions",
	"• Click on your chosen answer",
	"• Get instant feedback and explanations",
	"• Try to get the highest score!",
}

var tierMessages = map[domain.PerformanceTier]string{
	domain.PerformanceTop:       "Excellent work!",
	domain.PerformanceMid:       "Good job!",
	domain.PerformanceEncourage: "Keep practicing!",
}

// OptionLabel returns the letter shown before option i: A, B, C, ...
func OptionLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("%d", i+1)
}

func (m *Machine) view() domain.RenderDescriptor {
	switch m.phase {
	case domain.PhaseQuestion, domain.PhaseFeedback:
		if d, ok := m.questionView(); ok {
			return d
		}
		return m.resultsView()
	case domain.PhaseResults:
		return m.resultsView()
	default:
		return m.menuView()
	}
}

func (m *Machine) menuView() domain.RenderDescriptor {
	w := m.settings.Viewport.Width
	start := domain.Rect{X: w/2 - buttonWidth/2, Y: 350, W: buttonWidth, H: buttonHeight}

	d := domain.RenderDescriptor{
		Phase:      domain.PhaseMenu,
		Background: domain.BackgroundMenu,
		Regions:    []domain.Region{{ID: domain.RegionID{Kind: domain.RegionStart}, Bounds: start}},
	}
	d.Texts = append(d.Texts,
		centered("Luminara Learning Game", w/2, 200, domain.FontLarge, domain.RoleTitle),
		centered("Test your knowledge with interactive quizzes!", w/2, 250, domain.FontMedium, domain.RoleSubtitle),
		centered("Start Quiz", start.Center().X, start.Center().Y, domain.FontMedium, domain.RoleButtonLabel),
	)
	for i, line := range menuInstructions {
		size, role := domain.FontSmall, domain.RoleMuted
		if i == 0 {
			size, role = domain.FontMedium, domain.RoleHeading
		}
		d.Texts = append(d.Texts, left(line, w/2-200, 450+float64(i)*instructionStep, size, role))
	}
	return d
}

func (m *Machine) questionView() (domain.RenderDescriptor, bool) {
	q, ok := m.currentQuestion()
	if !ok {
		return domain.RenderDescriptor{}, false
	}
	w, h := m.settings.Viewport.Width, m.settings.Viewport.Height
	total := m.bank.Len()
	inFeedback := m.phase == domain.PhaseFeedback && m.selected != nil

	d := domain.RenderDescriptor{
		Phase:      m.phase,
		Background: domain.BackgroundQuestion,
		Progress: &domain.ProgressBar{
			Bounds:   domain.Rect{X: margin, Y: 30, W: w - 2*margin, H: 20},
			Fraction: float64(m.index) / float64(total),
		},
	}
	d.Texts = append(d.Texts, left(
		fmt.Sprintf("Question %d of %d | Score: %d", m.index+1, total, m.score.Correct()),
		margin, 60, domain.FontSmall, domain.RoleProgress,
	))

	y := 120.0
	for _, line := range layout.Wrap(q.Prompt, m.measure(domain.FontMedium), w-2*margin) {
		d.Texts = append(d.Texts, left(line, margin, y, domain.FontMedium, domain.RoleQuestion))
		y += lineMedium
	}

	y += promptGap
	labelWidth := w - 2*margin - 2*optionPadding
	for i, opt := range q.Options {
		lines := layout.Wrap(OptionLabel(i)+". "+opt, m.measure(domain.FontMedium), labelWidth)
		height := math.Max(optionMinHeight, float64(len(lines))*lineMedium+optionPadding)
		bounds := domain.Rect{X: margin, Y: y, W: w - 2*margin, H: height}

		var style domain.RegionStyle
		if inFeedback {
			switch {
			case i == *m.selected:
				style.Highlighted = true
				style.Tier = domain.TierIncorrect
				if i == q.CorrectIndex {
					style.Tier = domain.TierCorrect
				}
			case i == q.CorrectIndex:
				style.Tier = domain.TierCorrect
			}
		}
		d.Regions = append(d.Regions, domain.Region{
			ID:     domain.RegionID{Kind: domain.RegionOption, Index: i},
			Bounds: bounds,
			Style:  style,
		})

		top := bounds.Y + (height-float64(len(lines))*lineMedium)/2
		for k, line := range lines {
			d.Texts = append(d.Texts, centered(line, bounds.Center().X, top+float64(k)*lineMedium+lineMedium/2, domain.FontMedium, domain.RoleOptionLabel))
		}
		y += height + optionGap
	}

	if inFeedback {
		m.appendFeedback(&d, q, w, h)
	}
	return d, true
}

func (m *Machine) appendFeedback(d *domain.RenderDescriptor, q domain.Question, w, h float64) {
	panel := domain.Rect{X: feedbackInset, Y: h - feedbackFromFoot, W: w - 2*feedbackInset, H: feedbackHeight}
	tier := domain.TierIncorrect
	heading := fmt.Sprintf("Incorrect. The correct answer is %s.", OptionLabel(q.CorrectIndex))
	if *m.selected == q.CorrectIndex {
		tier = domain.TierCorrect
		heading = "Correct!"
	}
	d.Panel = &domain.Panel{Bounds: panel, Tier: tier}

	text := left(heading, panel.X+panelPadding, panel.Y+panelPadding, domain.FontMedium, domain.RoleFeedback)
	text.Style.Tier = tier
	d.Texts = append(d.Texts, text)

	lines := layout.Wrap(q.Explanation, m.measure(domain.FontSmall), panel.W-2*panelPadding)
	for i, line := range lines {
		d.Texts = append(d.Texts, left(line, panel.X+panelPadding, panel.Y+60+float64(i)*lineSmall, domain.FontSmall, domain.RoleExplanation))
	}
}

func (m *Machine) resultsView() domain.RenderDescriptor {
	w := m.settings.Viewport.Width
	total := m.bank.Len()
	tier := m.settings.Tiers.Classify(m.score.Percentage(total))
	playAgain := domain.Rect{X: w/2 - 250, Y: 400, W: buttonWidth, H: buttonHeight}
	quit := domain.Rect{X: w/2 + 50, Y: 400, W: buttonWidth, H: buttonHeight}

	d := domain.RenderDescriptor{
		Phase:      domain.PhaseResults,
		Background: domain.BackgroundResults,
		Tier:       tier,
		Quit:       m.quit,
		Regions: []domain.Region{
			{ID: domain.RegionID{Kind: domain.RegionPlayAgain}, Bounds: playAgain},
			{ID: domain.RegionID{Kind: domain.RegionQuit}, Bounds: quit},
		},
	}
	d.Texts = append(d.Texts,
		centered("Quiz Complete!", w/2, 200, domain.FontLarge, domain.RoleTitle),
		centered(fmt.Sprintf("Your Score: %d / %d", m.score.Correct(), total), w/2, 280, domain.FontMedium, domain.RoleScore),
		centered(tierMessages[tier], w/2, 330, domain.FontMedium, domain.RoleMessage),
		centered("Play Again", playAgain.Center().X, playAgain.Center().Y, domain.FontMedium, domain.RoleButtonLabel),
		centered("Quit", quit.Center().X, quit.Center().Y, domain.FontMedium, domain.RoleButtonLabel),
	)
	return d
}

func (m *Machine) measure(size domain.FontSize) layout.MeasureFunc {
	return layout.For(m.measurer, size)
}

func left(text string, x, y float64, size domain.FontSize, role domain.TextRole) domain.TextBlock {
	return domain.TextBlock{
		Text:     text,
		Position: domain.Point{X: x, Y: y},
		Style:    domain.TextStyle{Size: size, Role: role, Align: domain.AlignLeft},
	}
}

func centered(text string, x, y float64, size domain.FontSize, role domain.TextRole) domain.TextBlock {
	return domain.TextBlock{
		Text:     text,
		Position: domain.Point{X: x, Y: y},
		Style:    domain.TextStyle{Size: size, Role: role, Align: domain.AlignCenter},
	}
}
