package cli

import (
	"fmt"

	"aurora-quiz/internal/app"
	"aurora-quiz/internal/config"
	"aurora-quiz/internal/logger"
	"github.com/spf13/cobra"
)

// NewValidateCmd loads a question bank through the configured source and reports problems.
func NewValidateCmd(configPath *string) *cobra.Command {
	var bankID string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a question bank for malformed questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			stores, err := openBackends(cmd.Context(), cfg, log)
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
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %d questions ok\n", bank.ID(), bank.Title(), bank.Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&bankID, "bank", "", "bank id (defaults to bank.id)")
	return cmd
}
