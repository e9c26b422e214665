package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/mealmax/internal/battle"
)

// ScoreResult is the JSON payload of the score command.
type ScoreResult struct {
	Meal  string  `json:"meal"`
	Score float64 `json:"score"`
}

// NewScoreCommand creates the score command.
func NewScoreCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "score <meal>",
		Short:         "Print a meal's fighting score",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rootOpts.formatter(cmd)
			st, err := rootOpts.openStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore(rootOpts, st)

			m, err := st.GetMealByName(cmd.Context(), args[0])
			if err != nil {
				return formatter.Fail("lookup failed", err)
			}
			score, err := battle.Score(m)
			if err != nil {
				return formatter.Fail("score failed", err)
			}

			return formatter.Result(
				fmt.Sprintf("%s: %.2f\n", m.Name, score),
				ScoreResult{Meal: m.Name, Score: score},
			)
		},
	}
}
