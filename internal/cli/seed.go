package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/mealmax/internal/catalog"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Bulk-load meals from a YAML file",
		Long: `Load meals from a YAML seed file into the catalog.

Meals whose name already exists are skipped. Any other failure stops the
load; meals created before it are kept.

File format:
  meals:
    - meal: Sushi
      cuisine: Japanese
      price: 12.5
      difficulty: MED`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(rootOpts, args[0], cmd)
		},
	}
}

func runSeed(opts *RootOptions, path string, cmd *cobra.Command) error {
	f, err := os.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open seed file", err)
	}
	defer f.Close()

	meals, err := catalog.LoadSeed(f)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid seed file", err)
	}

	formatter := opts.formatter(cmd)
	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(opts, st)

	res, err := catalog.Seed(cmd.Context(), st, meals, opts.logger)
	if err != nil {
		return formatter.Fail("seed failed", err)
	}

	return formatter.Result(
		fmt.Sprintf("Seeded %d meals (%d skipped)\n", len(res.Created), len(res.Skipped)),
		res,
	)
}
