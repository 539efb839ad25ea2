// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the color palette for tasks-cli output.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. Styles themselves are built per writer in the cli package, so
that colors can be switched off for pipes and NO_COLOR without touching
global state.

# Priority Colors

	P0  Rose
	P1  Amber
	P2  Cyan
	P3+ Emerald

# Usage

	style := renderer.NewStyle().Foreground(styles.PriorityColor(task.Tier()))
	fmt.Fprintln(w, style.Render(fmt.Sprintf("Priority: P%d", task.Priority)))
*/
package styles
