package cli

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"aurora-quiz/internal/app"
	"aurora-quiz/internal/config"
	"aurora-quiz/internal/domain"
	"aurora-quiz/internal/layout"
	"aurora-quiz/internal/render/text"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewPreviewCmd plays one session against a virtual clock and prints every frame.
func NewPreviewCmd(configPath *string) *cobra.Command {
	var (
		bankID  string
		seed    int64
		answers string
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Play a session headlessly and print each frame as text",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			settings, err := cfg.SessionSettings()
			if err != nil {
				return err
			}
			stores, err := openBackends(cmd.Context(), cfg, zap.NewNop())
			if err != nil {
				return err
			}
			defer stores.Close()

			if bankID == "" {
				bankID = cfg.BankID()
			}
			set, err := stores.banks.GetQuestionSet(cmd.Context(), bankID)
			if err != nil {
				return err
			}
			bank, err := app.NewQuestionBankFromSet(set)
			if err != nil {
				return err
			}
			pick, err := answerPicker(answers)
			if err != nil {
				return err
			}
			measurer := layout.NewFaceMeasurer()
			m, err := app.NewMachine(bank, measurer, settings, app.WithRand(rand.New(rand.NewSource(seed))))
			if err != nil {
				return err
			}
			return runPreview(cmd.OutOrStdout(), m, measurer, settings, pick)
		},
	}
	cmd.Flags().StringVar(&bankID, "bank", "", "bank id (defaults to bank.id)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed for question order")
	cmd.Flags().StringVar(&answers, "answers", "correct", "answer strategy: correct, wrong or skip")
	return cmd
}

// picker chooses an option for q; false leaves the question unanswered.
type picker func(q domain.Question) (int, bool)

func answerPicker(name string) (picker, error) {
	switch name {
	case "correct":
		return func(q domain.Question) (int, bool) { return q.CorrectIndex, true }, nil
	case "wrong":
		return func(q domain.Question) (int, bool) { return (q.CorrectIndex + 1) % len(q.Options), true }, nil
	case "skip":
		return func(domain.Question) (int, bool) { return 0, false }, nil
	}
	return nil, fmt.Errorf("unknown answer strategy %q", name)
}

func runPreview(w io.Writer, m *app.Machine, measurer app.TextMeasurer, settings app.Settings, pick picker) error {
	r := text.NewRenderer(w, measurer)
	now := time.Unix(0, 0)
	frame := m.Tick(now, nil)
	app.Paint(r, frame)

	step := func(ev *domain.PointerEvent, wait time.Duration) {
		now = now.Add(wait)
		frame = m.Tick(now, ev)
		app.Paint(r, frame)
	}
	press := func(id domain.RegionID) *domain.PointerEvent {
		for _, region := range frame.Regions {
			if region.ID == id {
				c := region.Bounds.Center()
				return &domain.PointerEvent{X: c.X, Y: c.Y}
			}
		}
		return nil
	}

	step(press(domain.RegionID{Kind: domain.RegionStart}), 0)
	for frame.Phase != domain.PhaseResults {
		switch frame.Phase {
		case domain.PhaseQuestion:
			state := m.State()
			q := m.Bank().Question(m.Order()[state.QuestionIndex])
			if option, ok := pick(q); ok {
				step(press(domain.RegionID{Kind: domain.RegionOption, Index: option}), time.Second)
				continue
			}
			if settings.QuestionTimeLimit == 0 {
				return fmt.Errorf("skip strategy needs a question time limit")
			}
			step(nil, settings.QuestionTimeLimit)
		case domain.PhaseFeedback:
			step(nil, settings.AutoAdvance)
		default:
			return fmt.Errorf("unexpected phase %s", frame.Phase)
		}
		if err := r.Err(); err != nil {
			return err
		}
	}
	step(press(domain.RegionID{Kind: domain.RegionQuit}), time.Second)
	return r.Err()
}
