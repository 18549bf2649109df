package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/shoplist/internal/config"
	"github.com/idilsaglam/shoplist/internal/controller"
	"github.com/idilsaglam/shoplist/internal/ui"
)

// Exit codes: 0 ok, 1 runtime failure, 2 usage error.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// usageError marks mistakes the user can fix by changing the command line.
type usageError struct {
	err  error
	hint string
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(hint, format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...), hint: hint}
}

// flags shared by every subcommand
type rootFlags struct {
	configPath string
	dbPath     string
	driver     string
	theme      string
	noColor    bool
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	ui.Fail(stderr, err.Error())

	var ue *usageError
	if errors.As(err, &ue) {
		if ue.hint != "" {
			ui.Hint(stderr, ue.hint)
		}
		return ExitUsage
	}
	if errors.Is(err, controller.ErrBlankName) {
		return ExitUsage
	}
	return ExitError
}

// NewRootCmd builds the shoplist command tree writing to stdout/stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:   "shoplist",
		Short: "A shopping list for the terminal",
		Long: `shoplist keeps a local shopping list.

Run without a subcommand to open the interactive list. The subcommands
below work on the same list for scripting; positions are 1-based and
match the order printed by "shoplist ls" (newest first).

Examples:
  shoplist add "Oat milk"
  shoplist ls
  shoplist toggle 2
  shoplist edit 1 Whole milk
  shoplist rm 3`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          noArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Theme first so errors further down are rendered with it.
			ui.SetTheme(f.theme, f.noColor)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, f)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err, hint: "Run `shoplist --help` for usage"}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/shoplist/config.yaml)")
	pf.StringVar(&f.dbPath, "db", "", "database path (overrides database.path)")
	pf.StringVar(&f.driver, "driver", "", "store driver: sqlite|sqlite3|json|memory")
	pf.StringVar(&f.theme, "theme", "", "theme: classic|neon|mono")
	pf.BoolVar(&f.noColor, "no-color", false, "disable colors")

	root.AddCommand(
		newUICmd(f),
		newListCmd(f),
		newAddCmd(f),
		newToggleCmd(f),
		newEditCmd(f),
		newRemoveCmd(f),
	)
	return root
}

// loadConfig resolves the config file and applies flag overrides.
func loadConfig(f *rootFlags) (*config.Config, error) {
	cfg, err := config.Resolve(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.driver != "" {
		cfg.Database.Driver = f.driver
	}
	if f.dbPath != "" {
		cfg.Database.Path = f.dbPath
	}
	if f.theme != "" {
		cfg.UI.Theme = f.theme
	}
	if f.noColor {
		cfg.UI.NoColor = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, &usageError{err: err}
	}
	ui.SetTheme(cfg.UI.Theme, cfg.UI.NoColor)
	return cfg, nil
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usagef("Run `shoplist --help` for usage", "unknown subcommand: %s", args[0])
	}
	return nil
}
