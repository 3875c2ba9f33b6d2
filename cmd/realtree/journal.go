package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"nickandperla.net/realtree/internal/config"
	"nickandperla.net/realtree/internal/store"
)

const journalTimeFormat = "2006-01-02 15:04:05"

var errNoJournal = errors.New("no journal configured: use --journal or set journal in realtree.yaml")

func newJournalCmd(a *app) *cobra.Command {
	var (
		limit    int
		clearAll bool
	)

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show or clear the command journal",
		Long: `Show the most recent commands recorded in the SQLite journal, oldest
first, with their outcomes. Slot contents are never restored from it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Journal == "" {
				return errNoJournal
			}
			j, err := store.NewSQLite(a.cfg.Journal)
			if err != nil {
				return err
			}
			defer j.Close()

			out := cmd.OutOrStdout()
			if clearAll {
				if err := j.Clear(); err != nil {
					return fmt.Errorf("clear journal: %w", err)
				}
				a.logger.Debug("journal cleared", "path", a.cfg.Journal)
				_, err := fmt.Fprintln(out, "journal cleared")
				return err
			}

			entries, err := j.Recent(limit)
			if err != nil {
				return err
			}
			return renderJournal(out, entries, a.cfg.Output)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show (0 for all)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "remove every entry")

	return cmd
}

func renderJournal(w io.Writer, entries []store.Entry, format string) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "(journal is empty)")
		return err
	}

	if format == config.OutputPlain {
		for _, e := range entries {
			line := fmt.Sprintf("%d\t%s\t%s", e.Seq, e.Ts.Local().Format(journalTimeFormat), e.Command)
			if e.Outcome != "" {
				line += "\t=> " + e.Outcome
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Time", "Command", "Outcome"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Seq, e.Ts.Local().Format(journalTimeFormat), e.Command, e.Outcome})
	}
	t.Render()
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "realtree %s\n", Version)
			return err
		},
	}
}
