// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for tasks-cli.
//
// Colors and the line editor both depend on whether a stream is a real
// terminal:
//   - the interactive shell uses liner only when stdin is a TTY
//   - task listings are colored only when stdout is a TTY
//   - NO_COLOR, FORCE_COLOR and --no-color override detection

package cli

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/jeranaias/tasks-cli/internal/config"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// isTerminal reports whether v is an *os.File attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// =============================================================================
// TERMINAL WIDTH DETECTION
// =============================================================================

const (
	// DefaultTerminalWidth is the fallback width when detection fails
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the narrowest width used for layout
	MinTerminalWidth = 40
)

// GetTerminalWidth returns the width of w when it is a terminal, or
// DefaultTerminalWidth otherwise.
func GetTerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return DefaultTerminalWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	return width
}

// =============================================================================
// COLOR OUTPUT CONTROL
// =============================================================================

// ColorProfile returns the termenv profile to use for w given a ui.color
// mode. See https://no-color.org/ for the NO_COLOR convention.
//
//   - never: always Ascii (no escape sequences)
//   - always: detected profile, at least ANSI
//   - auto: Ascii unless w is a terminal; NO_COLOR and FORCE_COLOR apply
func ColorProfile(mode string, w io.Writer) termenv.Profile {
	switch mode {
	case config.ColorNever:
		return termenv.Ascii
	case config.ColorAlways:
		return atLeastANSI(termenv.NewOutput(w).EnvColorProfile())
	}

	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return atLeastANSI(termenv.NewOutput(w).EnvColorProfile())
	}
	if !isTerminal(w) {
		return termenv.Ascii
	}
	return termenv.NewOutput(w).EnvColorProfile()
}

// Lower profiles are richer in termenv's ordering.
func atLeastANSI(p termenv.Profile) termenv.Profile {
	if p > termenv.ANSI {
		return termenv.ANSI
	}
	return p
}
