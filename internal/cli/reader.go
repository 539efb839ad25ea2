// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/tasks-cli/internal/util"
)

// LineReader supplies input lines to the shell.
//
// Prompt returns io.EOF at end of input and liner.ErrPromptAborted when the
// user presses Ctrl+C; both close the shell gracefully.
type LineReader interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// =============================================================================
// LINER READER
// =============================================================================

// LinerOptions configures NewLinerReader.
type LinerOptions struct {
	// HistoryPath is the history file; empty disables persistence
	HistoryPath string

	// HistoryLimit caps the number of saved entries
	HistoryLimit int

	// Completer supplies tab completions for the current line
	Completer func(line string) []string
}

// LinerReader provides line editing, input history and tab completion for
// an interactive terminal.
type LinerReader struct {
	line         *liner.State
	historyPath  string
	historyLimit int
}

// NewLinerReader puts the terminal into line-editing mode. Close must be
// called to restore it.
func NewLinerReader(opts LinerOptions) *LinerReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	if opts.Completer != nil {
		line.SetCompleter(opts.Completer)
	}

	r := &LinerReader{
		line:         line,
		historyPath:  opts.HistoryPath,
		historyLimit: opts.HistoryLimit,
	}
	r.LoadHistory()
	return r
}

// LoadHistory loads command history from file.
func (r *LinerReader) LoadHistory() {
	if r.historyPath == "" {
		return
	}
	if f, err := os.Open(r.historyPath); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
}

// Prompt reads a line, recording non-blank lines in history.
func (r *LinerReader) Prompt(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory writes the newest HistoryLimit entries with 0600 permissions.
func (r *LinerReader) SaveHistory() error {
	if r.historyPath == "" {
		return nil
	}

	err := util.WriteFileAtomic(r.historyPath, 0600, func(w io.Writer) error {
		var buf bytes.Buffer
		if _, err := r.line.WriteHistory(&buf); err != nil {
			return fmt.Errorf("failed to collect history: %w", err)
		}
		_, err := w.Write(trimHistory(buf.Bytes(), r.historyLimit))
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// Close saves history and restores the terminal.
func (r *LinerReader) Close() error {
	saveErr := r.SaveHistory()
	if err := r.line.Close(); err != nil {
		return err
	}
	return saveErr
}

// trimHistory keeps the last limit lines of a newline-separated history.
func trimHistory(data []byte, limit int) []byte {
	if limit <= 0 {
		return data
	}
	lines := bytes.SplitAfter(data, []byte("\n"))
	if n := len(lines); n > 0 && len(lines[n-1]) == 0 {
		lines = lines[:n-1]
	}
	if len(lines) <= limit {
		return data
	}
	return bytes.Join(lines[len(lines)-limit:], nil)
}

// =============================================================================
// PIPE READER
// =============================================================================

// PipeReader reads lines from a non-interactive source such as a pipe.
// No prompt is printed and lines have no length limit.
type PipeReader struct {
	reader *bufio.Reader
	done   bool
}

// NewPipeReader creates a reader over r.
func NewPipeReader(r io.Reader) *PipeReader {
	return &PipeReader{reader: bufio.NewReader(r)}
}

// Prompt returns the next line without its line ending, or io.EOF when the
// input is exhausted. A final line without a newline is still returned.
func (r *PipeReader) Prompt(string) (string, error) {
	if r.done {
		return "", io.EOF
	}
	line, err := r.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.done = true
			if line != "" {
				return strings.TrimRight(line, "\r"), nil
			}
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close is a no-op.
func (r *PipeReader) Close() error {
	return nil
}
