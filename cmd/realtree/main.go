// Command realtree is the realtree expression evaluator CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"nickandperla.net/realtree/internal/config"
	"nickandperla.net/realtree/pkg/realtree"
)

// Version is set at build time.
var Version = "0.1.0"

type app struct {
	cfgFile string
	evals   []string
	file    string

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "realtree",
		Short: "Evaluate arithmetic expressions stored in 26 slots",
		Long: `realtree evaluates arithmetic expressions over 26 slots named a..z.
Slots hold expression trees that may refer to other slots; evaluating a slot
that refers back to itself reports a circular dependency.

With -e or -f the given commands run and realtree exits. Otherwise commands
are read from standard input, interactively when it is a terminal.`,
		Version: Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := config.Load(a.cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: cfg.Level(),
			}))
			if cfg.File != "" {
				a.logger.Debug("using config file", "path", cfg.File)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringArrayVarP(&a.evals, "eval", "e", nil, "run commands and exit (repeatable)")
	rootCmd.Flags().StringVarP(&a.file, "file", "f", "", "run a command file and exit")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: ./realtree.yaml)")
	pf.String("journal", "", "SQLite journal path (empty keeps the journal in memory)")
	pf.StringP("output", "o", config.DefaultOutput, "print format (table|plain)")
	pf.Bool("no-color", false, "disable colored error messages")
	pf.Bool("no-banner", false, "do not print the banner in interactive mode")
	pf.String("log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.OutputTable, config.OutputPlain}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newJournalCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (a *app) newRuntime(cmd *cobra.Command) (*realtree.Runtime, error) {
	opts := []realtree.Option{
		realtree.WithOutput(cmd.OutOrStdout()),
		realtree.WithErrorOutput(cmd.ErrOrStderr()),
		realtree.WithLogger(a.logger),
		realtree.WithFormat(a.cfg.Output),
		realtree.WithColor(a.cfg.Color),
	}
	if a.cfg.Journal != "" {
		opts = append(opts, realtree.WithSQLiteJournal(a.cfg.Journal))
	} else {
		opts = append(opts, realtree.WithMemoryJournal())
	}
	return realtree.New(opts...)
}

func (a *app) run(cmd *cobra.Command) error {
	rt, err := a.newRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	in := cmd.InOrStdin()
	switch {
	case a.file != "" || len(a.evals) > 0:
		// The file runs first so -e can use what it defines.
		if a.file != "" {
			exit, err := rt.ExecFile(a.file)
			if err != nil || exit {
				return err
			}
		}
		for _, src := range a.evals {
			exit, err := rt.Exec(src)
			if err != nil || exit {
				return err
			}
		}
		return nil

	case !isTerminal(in):
		_, err := rt.ExecReader(in)
		return err

	default:
		return runREPL(cmd, rt, a.cfg, a.logger)
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
