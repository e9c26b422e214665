package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/mealmax/internal/battle"
	"github.com/roach88/mealmax/internal/random"
)

// BattleOptions holds flags for the battle command.
type BattleOptions struct {
	*RootOptions
	Draw float64
}

// NewBattleCommand creates the battle command.
func NewBattleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BattleOptions{RootOptions: rootOpts, Draw: -1}

	cmd := &cobra.Command{
		Use:   "battle <meal-a> <meal-b>",
		Short: "Fight two meals and record the result",
		Long: `Stage two meals from the catalog, resolve a battle between them and record
the win and the loss.

The random draw comes from the configured source unless --draw is given.

Example:
  mealmax battle Sushi Spaghetti
  mealmax battle Sushi Spaghetti --draw 0.25`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBattle(opts, args, cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.Draw, "draw", -1, "fixed random draw in [0,1] instead of the configured source")

	return cmd
}

func runBattle(opts *BattleOptions, names []string, cmd *cobra.Command) error {
	cfg, err := opts.setup(cmd)
	if err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	var src random.Source
	if cmd.Flags().Changed("draw") {
		if math.IsNaN(opts.Draw) || opts.Draw < 0 || opts.Draw > 1 {
			return NewExitError(ExitCommandError, fmt.Sprintf("invalid --draw %v: must be in [0,1]", opts.Draw))
		}
		src = random.NewFixed(opts.Draw)
	} else {
		src = opts.randomSource(cfg)
	}

	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(opts.RootOptions, st)

	eng := opts.newEngine(src, st)

	for _, name := range names {
		m, err := st.GetMealByName(cmd.Context(), name)
		if err != nil {
			return formatter.Fail("lookup failed", err)
		}
		if err := eng.Stage(m); err != nil {
			return formatter.Fail("stage failed", err)
		}
		formatter.VerboseLog("staged %s", m.Name)
	}

	out, err := eng.ResolveDetailed(cmd.Context())
	if err != nil {
		return formatter.Fail("battle failed", err)
	}

	return formatter.Result(formatOutcome(out), out)
}

func formatOutcome(o battle.Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Winner: %s (score %.2f)\n", o.Winner.Name, o.WinnerScore)
	fmt.Fprintf(&b, "Loser:  %s (score %.2f)\n", o.Loser.Name, o.LoserScore)
	fmt.Fprintf(&b, "Odds:   %.4f, draw %.4f\n", o.Normalized, o.Draw)
	fmt.Fprintf(&b, "Battle: %s\n", o.BattleID)
	return b.String()
}
