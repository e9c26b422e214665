package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/mealmax/internal/meal"
)

// MealCreateOptions holds flags for the meal create command.
type MealCreateOptions struct {
	*RootOptions
	Name       string
	Cuisine    string
	Price      float64
	Difficulty string
}

// MealGetOptions holds flags for the meal get command.
type MealGetOptions struct {
	*RootOptions
	ByName bool
}

// NewMealCommand creates the meal command group.
func NewMealCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meal",
		Short: "Manage the meal catalog",
	}

	cmd.AddCommand(newMealCreateCommand(rootOpts))
	cmd.AddCommand(newMealDeleteCommand(rootOpts))
	cmd.AddCommand(newMealGetCommand(rootOpts))
	cmd.AddCommand(newMealClearCommand(rootOpts))

	return cmd
}

func newMealCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MealCreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "create",
		Short:         "Add a meal to the catalog",
		Example:       `  mealmax meal create --name Sushi --cuisine Japanese --price 12.5 --difficulty MED`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMealCreate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "meal name (required)")
	cmd.Flags().StringVar(&opts.Cuisine, "cuisine", "", "cuisine (required)")
	cmd.Flags().Float64Var(&opts.Price, "price", 0, "price, must be positive (required)")
	cmd.Flags().StringVar(&opts.Difficulty, "difficulty", "", "difficulty: LOW, MED or HIGH (required)")
	for _, name := range []string{"name", "cuisine", "price", "difficulty"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runMealCreate(opts *MealCreateOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	difficulty, err := meal.ParseDifficulty(strings.ToUpper(opts.Difficulty))
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --difficulty", err)
	}

	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(opts.RootOptions, st)

	id, err := st.CreateMeal(cmd.Context(), opts.Name, opts.Cuisine, opts.Price, difficulty)
	if err != nil {
		return formatter.Fail("create failed", err)
	}
	opts.logger.Info("meal created", "id", id, "meal", opts.Name)

	return formatter.Result(
		fmt.Sprintf("Created meal %d: %s\n", id, opts.Name),
		map[string]interface{}{"id": id, "meal": opts.Name},
	)
}

func newMealDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Soft-delete a meal",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMealID(args[0])
			if err != nil {
				return err
			}

			formatter := rootOpts.formatter(cmd)
			st, err := rootOpts.openStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore(rootOpts, st)

			if err := st.DeleteMeal(cmd.Context(), id); err != nil {
				return formatter.Fail("delete failed", err)
			}
			return formatter.Result(fmt.Sprintf("Deleted meal %d\n", id), map[string]interface{}{"id": id})
		},
	}
}

func newMealGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MealGetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get <id|name>",
		Short: "Show a meal",
		Example: `  mealmax meal get 3
  mealmax meal get --by-name Sushi`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMealGet(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.ByName, "by-name", false, "look the meal up by name instead of id")

	return cmd
}

func runMealGet(opts *MealGetOptions, key string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	var id int64
	if !opts.ByName {
		var err error
		if id, err = parseMealID(key); err != nil {
			return err
		}
	}

	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(opts.RootOptions, st)

	var m meal.Meal
	if opts.ByName {
		m, err = st.GetMealByName(cmd.Context(), key)
	} else {
		m, err = st.GetMealByID(cmd.Context(), id)
	}
	if err != nil {
		return formatter.Fail("lookup failed", err)
	}

	return formatter.Result(formatMeal(m), m)
}

func newMealClearCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clear",
		Short:         "Remove every meal and its statistics",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rootOpts.formatter(cmd)
			st, err := rootOpts.openStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore(rootOpts, st)

			if err := st.ClearMeals(cmd.Context()); err != nil {
				return formatter.Fail("clear failed", err)
			}
			return formatter.Result("Catalog cleared\n", map[string]interface{}{"cleared": true})
		},
	}
}

func parseMealID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid meal id %q", s))
	}
	return id, nil
}

func formatMeal(m meal.Meal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID:         %d\n", m.ID)
	fmt.Fprintf(&b, "Meal:       %s\n", m.Name)
	fmt.Fprintf(&b, "Cuisine:    %s\n", m.Cuisine)
	fmt.Fprintf(&b, "Price:      %.2f\n", m.Price)
	fmt.Fprintf(&b, "Difficulty: %s\n", m.Difficulty)
	return b.String()
}
