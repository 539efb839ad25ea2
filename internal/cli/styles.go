// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Centralized styling for tasks-cli output.
//
// Styles are bound to a lipgloss.Renderer for a single writer, so stdout
// and stderr can differ (e.g. stdout piped, stderr on a terminal) and tests
// can render plain text without touching global state.

package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/tasks-cli/internal/taskapi"
	"github.com/jeranaias/tasks-cli/internal/ui/styles"
)

// Styles holds the lipgloss styles used by the task printer and shell.
type Styles struct {
	renderer *lipgloss.Renderer

	// Heading is used for "Tasks for <date>:" and section titles
	Heading lipgloss.Style

	// TaskTitle is used for "[id] title"
	TaskTitle lipgloss.Style

	// Label is used for secondary fields like the estimate
	Label lipgloss.Style

	// Separator is used for the rule between tasks
	Separator lipgloss.Style

	// Warning is used for empty results
	Warning lipgloss.Style

	// Error is used for the "Error:" prefix
	Error lipgloss.Style

	// Success is used for health checks and totals
	Success lipgloss.Style

	// Command is used for command names in help and usage
	Command lipgloss.Style

	// Dim is used for hints
	Dim lipgloss.Style
}

// NewStyles builds styles rendering to w with the given color profile.
func NewStyles(w io.Writer, profile termenv.Profile) *Styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	if profile == termenv.Ascii {
		// Skip the background query; nothing is colored anyway.
		r.SetHasDarkBackground(true)
	}

	return &Styles{
		renderer:  r,
		Heading:   r.NewStyle().Foreground(styles.Cyan).Bold(true),
		TaskTitle: r.NewStyle().Foreground(styles.TextPrimary).Bold(true),
		Label:     r.NewStyle().Foreground(styles.TextSecondary),
		Separator: r.NewStyle().Foreground(styles.TextMuted),
		Warning:   r.NewStyle().Foreground(styles.Amber),
		Error:     r.NewStyle().Foreground(styles.Rose).Bold(true),
		Success:   r.NewStyle().Foreground(styles.Emerald),
		Command:   r.NewStyle().Foreground(styles.Purple),
		Dim:       r.NewStyle().Foreground(styles.TextMuted),
	}
}

// Priority returns the style for a task's priority line.
func (s *Styles) Priority(task taskapi.Task) lipgloss.Style {
	return s.renderer.NewStyle().Foreground(styles.PriorityColor(task.Tier())).Bold(task.Tier() == taskapi.TierUrgent)
}

// ColorsEnabled reports whether the styles emit color.
func (s *Styles) ColorsEnabled() bool {
	return s.renderer.ColorProfile() != termenv.Ascii
}
