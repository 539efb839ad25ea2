// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/jeranaias/tasks-cli/internal/commands"
	"github.com/jeranaias/tasks-cli/internal/config"
	"github.com/jeranaias/tasks-cli/internal/logging"
	"github.com/jeranaias/tasks-cli/internal/util"
)

// Shell directives are handled before tokenizing and never reach the
// registry.
const (
	directiveExit = "exit"
	directiveQuit = "quit"
	directiveHelp = "help"
)

// ShellDirectives lists the words the shell handles itself.
var ShellDirectives = []string{directiveExit, directiveHelp, directiveQuit}

// DefaultPrompt is used when ShellOptions.Prompt is empty.
const DefaultPrompt = "tasks> "

// =============================================================================
// SHELL
// =============================================================================

// ShellStats counts dispatched lines.
type ShellStats struct {
	Commands int
	Failed   int
}

// ShellOptions configures NewShell.
type ShellOptions struct {
	Registry *commands.Registry
	Env      *commands.Env
	Reader   LineReader
	Printer  *TaskPrinter // nil discards all output
	Logger   *zap.Logger
	Prompt   string
}

// Shell is the interactive read-dispatch loop. Every line is handled inside
// its own error boundary: a failing command is reported and the loop moves
// on to the next prompt.
type Shell struct {
	registry *commands.Registry
	env      *commands.Env
	reader   LineReader
	printer  *TaskPrinter
	logger   *zap.Logger
	prompt   string
	helpText string
	stats    ShellStats
}

// NewShell creates a shell. The help text is rendered once, here.
func NewShell(opts ShellOptions) *Shell {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	printer := opts.Printer
	if printer == nil {
		printer = NewTaskPrinter(PrinterOptions{Out: io.Discard, ErrOut: io.Discard, ColorMode: config.ColorNever})
	}
	prompt := opts.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	s := &Shell{
		registry: opts.Registry,
		env:      opts.Env,
		reader:   opts.Reader,
		printer:  printer,
		logger:   logger,
		prompt:   prompt,
	}
	s.helpText = s.renderHelp()
	return s
}

// Stats returns the counters for lines dispatched so far.
func (s *Shell) Stats() ShellStats {
	return s.stats
}

// Run reads and dispatches lines until exit, quit, end of input, Ctrl+C or
// ctx cancellation. It closes the reader before returning. Graceful
// termination returns nil; only an unexpected read error is returned.
func (s *Shell) Run(ctx context.Context) error {
	defer func() {
		if cerr := s.reader.Close(); cerr != nil {
			s.logger.Warn("closing line reader", zap.Error(cerr))
		}
	}()

	for {
		if ctx.Err() != nil {
			s.printExitSummary()
			return nil
		}

		line, rerr := s.reader.Prompt(s.prompt)
		if rerr != nil {
			s.printExitSummary()
			if errors.Is(rerr, io.EOF) || errors.Is(rerr, liner.ErrPromptAborted) {
				return nil
			}
			return fmt.Errorf("reading input: %w", rerr)
		}

		if closed := s.runLine(ctx, line); closed {
			s.printExitSummary()
			return nil
		}
	}
}

// runLine handles one input line and reports whether the shell should
// close. Dispatch errors are printed, never returned.
func (s *Shell) runLine(ctx context.Context, line string) (closed bool) {
	line = strings.TrimSpace(line)

	switch line {
	case "":
		return false
	case directiveExit, directiveQuit:
		return true
	case directiveHelp:
		fmt.Fprint(s.printer.Out(), s.helpText)
		return false
	}

	argv := commands.Tokenize(line)
	if len(argv) == 0 {
		// Only quotes, e.g. `''`.
		return false
	}

	s.stats.Commands++
	start := time.Now()
	err := s.registry.Dispatch(ctx, s.env, argv)
	s.logger.Debug("dispatch",
		zap.String("command", argv[0]),
		zap.String("argv", commands.Join(argv)),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err))

	if err != nil {
		s.stats.Failed++
		s.printer.Error(err)
	}
	return false
}

// renderHelp builds the text printed for the help directive.
func (s *Shell) renderHelp() string {
	st := s.printer.Styles()
	cmds := s.registry.All()

	type row struct{ usage, desc string }
	var rows []row
	for _, cmd := range cmds {
		if cmd.Hidden {
			continue
		}
		usage := cmd.UsageLine()
		if len(cmd.Aliases) > 0 {
			usage += " (" + strings.Join(cmd.Aliases, ", ") + ")"
		}
		rows = append(rows, row{usage, cmd.Description})
	}
	rows = append(rows,
		row{directiveHelp, "Show this help"},
		row{directiveExit + ", " + directiveQuit, "Leave the shell"},
	)

	col := 0
	for _, r := range rows {
		col = max(col, util.StringWidth(r.usage))
	}

	var b strings.Builder
	b.WriteString(st.Heading.Render("Commands:") + "\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "  %s  %s\n", st.Command.Render(util.PadRight(r.usage, col)), r.desc)
	}
	b.WriteString(st.Dim.Render("Arguments may be quoted with ' or \" and escaped with \\.") + "\n")
	return b.String()
}

// printExitSummary prints the session summary on exit.
func (s *Shell) printExitSummary() {
	out := s.printer.Out()
	st := s.printer.Styles()

	fmt.Fprintln(out)
	if s.stats.Commands > 0 {
		fmt.Fprintln(out, st.Dim.Render(fmt.Sprintf("%d %s, %d failed",
			s.stats.Commands, util.Plural(s.stats.Commands, "command"), s.stats.Failed)))
	}
	fmt.Fprintln(out, st.Heading.Render("Goodbye!"))
}
