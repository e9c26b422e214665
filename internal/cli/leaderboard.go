package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/mealmax/internal/store"
)

// LeaderboardOptions holds flags for the leaderboard command.
type LeaderboardOptions struct {
	*RootOptions
	Sort string
}

// NewLeaderboardCommand creates the leaderboard command.
func NewLeaderboardCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LeaderboardOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Rank meals by battle record",
		Long: `Show every meal that has fought at least one battle, ranked by wins or by
win percentage. Ties keep catalog order.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLeaderboard(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Sort, "sort", store.SortByWins, "sort order (wins|win_pct)")

	return cmd
}

func runLeaderboard(opts *LeaderboardOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(opts.RootOptions, st)

	entries, err := st.Leaderboard(cmd.Context(), opts.Sort)
	if err != nil {
		return formatter.Fail("leaderboard failed", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "No battles fought yet.")
		return nil
	}
	return writeLeaderboard(formatter.Writer, entries)
}

func writeLeaderboard(w io.Writer, entries []store.LeaderboardEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tMEAL\tCUISINE\tBATTLES\tWINS\tWIN%")
	for i, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%.1f\n", i+1, e.Name, e.Cuisine, e.Battles, e.Wins, e.WinPct)
	}
	return tw.Flush()
}
