// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/tasks-cli/internal/commands"
	"github.com/jeranaias/tasks-cli/internal/taskapi"
	"github.com/jeranaias/tasks-cli/internal/util"
)

// SeparatorWidth is the width of the rule between task blocks.
const SeparatorWidth = 80

// TaskPrinter renders command results to an output stream and errors to an
// error stream. It implements commands.Output.
type TaskPrinter struct {
	out       io.Writer
	errOut    io.Writer
	styles    *Styles
	errStyles *Styles
	width     int
}

var _ commands.Output = (*TaskPrinter)(nil)

// PrinterOptions configures NewTaskPrinter.
type PrinterOptions struct {
	Out    io.Writer
	ErrOut io.Writer

	// ColorMode is one of config.ColorAuto, ColorAlways, ColorNever
	ColorMode string
}

// NewTaskPrinter creates a printer for the given streams. The separator is
// clipped to the terminal width when Out is a terminal.
func NewTaskPrinter(opts PrinterOptions) *TaskPrinter {
	width := SeparatorWidth
	if isTerminal(opts.Out) {
		width = min(width, GetTerminalWidth(opts.Out))
	}
	return &TaskPrinter{
		out:       opts.Out,
		errOut:    opts.ErrOut,
		styles:    NewStyles(opts.Out, ColorProfile(opts.ColorMode, opts.Out)),
		errStyles: NewStyles(opts.ErrOut, ColorProfile(opts.ColorMode, opts.ErrOut)),
		width:     width,
	}
}

// Out returns the output stream.
func (p *TaskPrinter) Out() io.Writer {
	return p.out
}

// Styles returns the styles bound to the output stream.
func (p *TaskPrinter) Styles() *Styles {
	return p.styles
}

// =============================================================================
// commands.Output
// =============================================================================

// Tasks prints the task listing for date, one block per task in the order
// given.
func (p *TaskPrinter) Tasks(date string, tasks []taskapi.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(p.out, p.styles.Warning.Render("No tasks found for "+date))
		return
	}

	sep := p.styles.Separator.Render(util.Rule("─", p.width))

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.styles.Heading.Render("Tasks for "+date+":"))
	fmt.Fprintln(p.out, sep)
	for _, task := range tasks {
		fmt.Fprintln(p.out, p.styles.TaskTitle.Render(fmt.Sprintf("[%d] %s", task.ID, singleLine(task.Title))))
		fmt.Fprintln(p.out, p.styles.Priority(task).Render(fmt.Sprintf("Priority: P%d", task.Priority)))
		fmt.Fprintln(p.out, p.styles.Label.Render(fmt.Sprintf("Estimate: %d minutes", task.EstimateMinutes)))
		if desc := singleLine(task.Description); desc != "" {
			fmt.Fprintln(p.out, "Description: "+desc)
		}
		fmt.Fprintln(p.out, sep)
	}
}

// Total prints the task count and summed estimate for date.
func (p *TaskPrinter) Total(date string, tasks []taskapi.Task) {
	hours := taskapi.TotalEstimate(tasks).Hours()
	line := fmt.Sprintf("%d %s on %s, totaling %.1f hours",
		len(tasks), util.Plural(len(tasks), "task"), date, hours)
	fmt.Fprintln(p.out, p.styles.Success.Render(line))
}

// Message prints a formatted informational line.
func (p *TaskPrinter) Message(format string, args ...any) {
	fmt.Fprintln(p.out, fmt.Sprintf(format, args...))
}

// Usage prints the usage line and description of each command. A single
// command also gets its aliases and argument descriptions.
func (p *TaskPrinter) Usage(cmds []*commands.Command) {
	col := 0
	for _, cmd := range cmds {
		col = max(col, util.StringWidth(cmd.UsageLine()))
	}

	for _, cmd := range cmds {
		usage := p.styles.Command.Render(util.PadRight(cmd.UsageLine(), col))
		desc := util.TruncateWidth(cmd.Description, max(p.width-col-4, 20))
		fmt.Fprintf(p.out, "  %s  %s\n", usage, desc)
	}

	if len(cmds) != 1 {
		return
	}
	cmd := cmds[0]
	if len(cmd.Aliases) > 0 {
		fmt.Fprintf(p.out, "  %s %s\n", p.styles.Dim.Render("aliases:"), strings.Join(cmd.Aliases, ", "))
	}
	for _, arg := range cmd.Args {
		if arg.Description == "" {
			continue
		}
		fmt.Fprintf(p.out, "  %s %s\n", p.styles.Dim.Render(arg.Name+":"), arg.Description)
	}
}

// =============================================================================
// ERRORS
// =============================================================================

// Error prints err as a single "Error: <message>" line on the error stream.
func (p *TaskPrinter) Error(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(p.errOut, "%s %s\n", p.errStyles.Error.Render("Error:"), singleLine(err.Error()))
}

// singleLine folds line breaks so each record prints on one line.
func singleLine(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' }), " ")
}
