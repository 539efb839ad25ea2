// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jeranaias/tasks-cli/internal/commands"
	"github.com/jeranaias/tasks-cli/internal/taskapi"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// =============================================================================
// TEST DOUBLES
// =============================================================================

// scriptedReader replays lines, then returns final (io.EOF by default).
type scriptedReader struct {
	lines   []string
	final   error
	prompts []string
	closed  bool
}

func newScriptedReader(lines ...string) *scriptedReader {
	return &scriptedReader{lines: lines}
}

func (r *scriptedReader) Prompt(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		if r.final != nil {
			return "", r.final
		}
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) Close() error {
	r.closed = true
	return nil
}

// fakeSource serves tasks from memory and records queried dates.
type fakeSource struct {
	tasks   map[string][]taskapi.Task
	failOn  map[string]error
	pingErr error
	calls   []string
}

func (f *fakeSource) ListTasks(ctx context.Context, date string) ([]taskapi.Task, error) {
	f.calls = append(f.calls, date)
	if err, ok := f.failOn[date]; ok {
		return nil, err
	}
	return f.tasks[date], nil
}

func (f *fakeSource) Ping(ctx context.Context) (time.Duration, error) {
	f.calls = append(f.calls, "ping")
	if f.pingErr != nil {
		return 0, f.pingErr
	}
	return 5 * time.Millisecond, nil
}

type shellHarness struct {
	shell  *Shell
	reader *scriptedReader
	source *fakeSource
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newShellHarness(t *testing.T, registry *commands.Registry, source *fakeSource, lines ...string) *shellHarness {
	t.Helper()
	if registry == nil {
		registry = commands.NewRegistry()
	}
	if source == nil {
		source = &fakeSource{}
	}

	var out, errOut bytes.Buffer
	printer := NewTaskPrinter(PrinterOptions{Out: &out, ErrOut: &errOut, ColorMode: "never"})
	reader := newScriptedReader(lines...)

	shell := NewShell(ShellOptions{
		Registry: registry,
		Env:      &commands.Env{Tasks: source, Out: printer},
		Reader:   reader,
		Printer:  printer,
	})
	return &shellHarness{shell: shell, reader: reader, source: source, out: &out, errOut: &errOut}
}

func errorLines(buf *bytes.Buffer) []string {
	var lines []string
	for _, l := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(l, "Error:") {
			lines = append(lines, l)
		}
	}
	return lines
}

// =============================================================================
// DISPATCH LOOP TESTS
// =============================================================================

func TestShell_UnknownCommandThenExit(t *testing.T) {
	h := newShellHarness(t, nil, nil, "bogus", "exit")

	err := h.shell.Run(context.Background())
	require.NoError(t, err)

	errs := errorLines(h.errOut)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "unknown command: bogus")
	assert.Empty(t, h.source.calls)
	assert.True(t, h.reader.closed, "reader should be closed on exit")
	assert.Equal(t, ShellStats{Commands: 1, Failed: 1}, h.shell.Stats())
}

func TestShell_HandlerFailureDoesNotStopLoop(t *testing.T) {
	source := &fakeSource{
		failOn: map[string]error{
			"2024-01-01": &taskapi.ClientError{Type: taskapi.ErrTypeServer, Message: "task service returned 500"},
		},
	}
	h := newShellHarness(t, nil, source, "list 2024-01-01", "list 2024-01-02")

	require.NoError(t, h.shell.Run(context.Background()))

	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, source.calls)
	errs := errorLines(h.errOut)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "task service returned 500")
	assert.Contains(t, h.out.String(), "No tasks found for 2024-01-02")
}

func TestShell_ZeroTasks(t *testing.T) {
	h := newShellHarness(t, nil, nil, "list 2024-01-01")

	require.NoError(t, h.shell.Run(context.Background()))

	assert.Equal(t, 1, strings.Count(h.out.String(), "No tasks found for 2024-01-01"))
	assert.Empty(t, h.errOut.String())
}

func TestShell_TwoTasksInOrder(t *testing.T) {
	source := &fakeSource{tasks: map[string][]taskapi.Task{
		"2024-01-01": {
			{ID: 7, Title: "Write report", Priority: 0, EstimateMinutes: 90},
			{ID: 3, Title: "Email", Priority: 2, EstimateMinutes: 15},
		},
	}}
	h := newShellHarness(t, nil, source, "ls 2024-01-01", "quit")

	require.NoError(t, h.shell.Run(context.Background()))

	out := h.out.String()
	first := strings.Index(out, "[7] Write report")
	second := strings.Index(out, "[3] Email")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first, "tasks must print in service order")
	assert.Contains(t, out[first:second], "Priority: P0")
	assert.Contains(t, out[second:], "Priority: P2")
}

func TestShell_Directives(t *testing.T) {
	h := newShellHarness(t, nil, nil, "", "   ", "help", "  quit  ", "list 2024-01-01")

	require.NoError(t, h.shell.Run(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "list <date> (ls)")
	assert.Contains(t, out, "exit, quit")
	assert.Contains(t, out, "Goodbye!")
	assert.NotContains(t, out, "failed", "no summary when nothing was dispatched")
	assert.Empty(t, h.source.calls, "lines after quit must not run")
	assert.Empty(t, h.errOut.String())
	assert.Len(t, h.reader.lines, 1)
}

func TestShell_HelpWithArgumentsIsDispatched(t *testing.T) {
	h := newShellHarness(t, nil, nil, "help list")

	require.NoError(t, h.shell.Run(context.Background()))

	errs := errorLines(h.errOut)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "unknown command: help")
}

func TestShell_QuotedArguments(t *testing.T) {
	var got []string
	registry := commands.NewEmptyRegistry()
	registry.MustRegister(&commands.Command{
		Name: "echo",
		Args: []commands.ArgDef{{Name: "words", Variadic: true}},
		Handler: func(ctx context.Context, env *commands.Env, args []string) error {
			got = args
			return nil
		},
	})
	h := newShellHarness(t, registry, nil, `echo 'a b' c\ d "it's"`)

	require.NoError(t, h.shell.Run(context.Background()))
	assert.Equal(t, []string{"a b", "c d", "it's"}, got)
}

func TestShell_OnlyQuotesIsSkipped(t *testing.T) {
	h := newShellHarness(t, nil, nil, `''`, `""`)

	require.NoError(t, h.shell.Run(context.Background()))
	assert.Equal(t, ShellStats{}, h.shell.Stats())
	assert.Empty(t, h.errOut.String())
}

func TestShell_PanicIsContained(t *testing.T) {
	registry := commands.NewRegistry()
	registry.MustRegister(&commands.Command{
		Name: "boom",
		Handler: func(ctx context.Context, env *commands.Env, args []string) error {
			panic("kaboom")
		},
	})
	h := newShellHarness(t, registry, nil, "boom", "list 2024-01-01")

	require.NoError(t, h.shell.Run(context.Background()))

	errs := errorLines(h.errOut)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "panicked")
	assert.Contains(t, errs[0], "kaboom")
	assert.Equal(t, []string{"2024-01-01"}, h.source.calls)
}

func TestShell_ExitSummary(t *testing.T) {
	h := newShellHarness(t, nil, nil, "list 2024-01-01", "list", "exit")

	require.NoError(t, h.shell.Run(context.Background()))

	assert.Contains(t, h.out.String(), "2 commands, 1 failed")
	assert.True(t, strings.HasSuffix(h.out.String(), "Goodbye!\n"))
}

func TestShell_PromptAbortedClosesGracefully(t *testing.T) {
	h := newShellHarness(t, nil, nil, "list 2024-01-01")
	h.reader.final = liner.ErrPromptAborted

	require.NoError(t, h.shell.Run(context.Background()))
	assert.True(t, h.reader.closed)
}

func TestShell_ReadErrorIsReturned(t *testing.T) {
	h := newShellHarness(t, nil, nil)
	h.reader.final = errors.New("tty went away")

	err := h.shell.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty went away")
	assert.True(t, h.reader.closed)
}

func TestShell_CanceledContext(t *testing.T) {
	h := newShellHarness(t, nil, nil, "list 2024-01-01")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, h.shell.Run(ctx))
	assert.Empty(t, h.reader.prompts)
	assert.Empty(t, h.source.calls)
}

func TestShell_UsesPrompt(t *testing.T) {
	h := newShellHarness(t, nil, nil, "exit")
	require.NoError(t, h.shell.Run(context.Background()))
	assert.Equal(t, []string{DefaultPrompt}, h.reader.prompts)
}

func TestNewShell_DefaultsPrinter(t *testing.T) {
	reader := newScriptedReader("help", "bogus", "exit")
	var shell *Shell
	require.NotPanics(t, func() {
		shell = NewShell(ShellOptions{Registry: commands.NewRegistry(), Reader: reader})
	})

	require.NoError(t, shell.Run(context.Background()))
	assert.Equal(t, ShellStats{Commands: 1, Failed: 1}, shell.Stats())
}
