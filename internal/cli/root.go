package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/mealmax/internal/battle"
	"github.com/roach88/mealmax/internal/config"
	"github.com/roach88/mealmax/internal/random"
	"github.com/roach88/mealmax/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Database string // overrides MEALMAX_DB_PATH when set
	EnvFile  string

	// Source overrides the configured random source (for testing).
	Source random.Source

	// IDs overrides the battle id generator (for testing).
	// If nil, the engine default (UUIDv7) is used.
	IDs battle.IDGenerator

	cfg    *config.Config
	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the mealmax CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "mealmax",
		Short: "mealmax - meal battles and leaderboards",
		Long:  "A meal catalog where meals fight two at a time and climb a leaderboard.",
		// main prints the error once and maps it to an exit code.
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (default $MEALMAX_DB_PATH)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file to load if present")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMealCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewLeaderboardCommand(opts))
	cmd.AddCommand(NewBattleCommand(opts))
	cmd.AddCommand(NewScoreCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// setup loads configuration and installs the logger. Safe to call repeatedly.
func (o *RootOptions) setup(cmd *cobra.Command) (config.Config, error) {
	if o.cfg != nil {
		return *o.cfg, nil
	}

	var files []string
	if o.EnvFile != "" {
		files = append(files, o.EnvFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	if o.Database != "" {
		cfg.DBPath = o.Database
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.logger = newLogger(cmd.ErrOrStderr(), level)
	slog.SetDefault(o.logger)

	o.cfg = &cfg
	return cfg, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openStore opens the configured database.
func (o *RootOptions) openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := o.setup(cmd)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("opening database", "path", cfg.DBPath)
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// randomSource returns the configured random source.
func (o *RootOptions) randomSource(cfg config.Config) random.Source {
	if o.Source != nil {
		return o.Source
	}
	if cfg.RandomMode == config.RandomModeLocal {
		return random.Local{}
	}
	return random.NewHTTPSource(cfg.RandomURL,
		random.WithTimeout(cfg.RandomTimeout),
		random.WithLogger(o.logger),
	)
}

// newEngine builds a battle engine over st.
func (o *RootOptions) newEngine(src random.Source, st *store.Store) *battle.Engine {
	opts := []battle.Option{battle.WithLogger(o.logger)}
	if o.IDs != nil {
		opts = append(opts, battle.WithIDGenerator(o.IDs))
	}
	return battle.New(src, st, opts...)
}

// formatter builds an OutputFormatter writing to the command's streams.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

func closeStore(o *RootOptions, st *store.Store) {
	if err := st.Close(); err != nil {
		o.logger.Error("error closing database", "error", err)
	}
}
