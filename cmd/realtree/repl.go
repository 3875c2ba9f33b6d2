package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"nickandperla.net/realtree/internal/config"
	"nickandperla.net/realtree/internal/token"
	"nickandperla.net/realtree/pkg/realtree"
)

const continuationPrompt = "... "

func newCompleter() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(token.Keywords()))
	for _, kw := range token.Keywords() {
		items = append(items, readline.PcItem(kw))
	}
	return readline.NewPrefixCompleter(items...)
}

// runREPL runs an interactive session with line editing and history.
func runREPL(cmd *cobra.Command, rt *realtree.Runtime, cfg *config.Config, logger *slog.Logger) error {
	out := cmd.OutOrStdout()
	if cfg.Banner {
		fmt.Fprintln(out, realtree.Banner)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    newCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		logger.Warn("line editing unavailable, using basic input", "error", err)
		return runBasicREPL(rt, cmd.InOrStdin(), out, cfg.Prompt)
	}
	defer rl.Close()

	var pending strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			pending.Reset()
			rl.SetPrompt(cfg.Prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		input, complete := joinContinued(&pending, line)
		if !complete {
			rl.SetPrompt(continuationPrompt)
			continue
		}
		rl.SetPrompt(cfg.Prompt)

		exit, err := rt.Exec(input)
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
	}
}

// runBasicREPL handles input without line editing.
func runBasicREPL(rt *realtree.Runtime, in io.Reader, out io.Writer, prompt string) error {
	reader := bufio.NewReader(in)
	var pending strings.Builder

	for {
		if pending.Len() > 0 {
			fmt.Fprint(out, continuationPrompt)
		} else {
			fmt.Fprint(out, prompt)
		}

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		input, complete := joinContinued(&pending, strings.TrimRight(line, "\r\n"))
		if !complete {
			continue
		}
		exit, xerr := rt.Exec(input)
		if xerr != nil {
			return xerr
		}
		if exit || err != nil {
			return nil
		}
	}
}

// joinContinued accumulates lines ending in a backslash. It returns the
// joined input once a line without one arrives.
func joinContinued(pending *strings.Builder, line string) (string, bool) {
	if strings.HasSuffix(line, "\\") {
		pending.WriteString(strings.TrimSuffix(line, "\\"))
		pending.WriteString(" ")
		return "", false
	}
	pending.WriteString(line)
	input := pending.String()
	pending.Reset()
	return input, true
}
