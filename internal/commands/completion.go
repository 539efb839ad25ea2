// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strings"
	"time"

	"github.com/jeranaias/tasks-cli/internal/taskapi"
)

// =============================================================================
// COMPLETER
// =============================================================================

// Completer provides tab completion for shell input lines.
type Completer struct {
	registry *Registry

	// Directives are extra words completed in command position (e.g. "exit").
	Directives []string

	// Now supplies the reference date for date arguments; nil means time.Now.
	Now func() time.Time
}

// NewCompleter creates a new completer with the given registry.
func NewCompleter(registry *Registry, directives ...string) *Completer {
	return &Completer{
		registry:   registry,
		Directives: directives,
	}
}

// Complete returns full-line candidates for the given input. Its signature
// matches liner.Completer.
func (c *Completer) Complete(line string) []string {
	if c.registry == nil {
		return nil
	}

	idx, partial := GetPartialArg(line)
	if !strings.HasSuffix(line, partial) {
		// Partial came out of a quoted or escaped segment; leave it alone.
		return nil
	}
	prefix := strings.TrimSuffix(line, partial)

	var candidates []string
	if idx < 0 {
		candidates = c.completeCommands(partial, true)
	} else {
		cmd := c.registry.Get(ExtractCommandName(line))
		if cmd == nil {
			return nil
		}
		candidates = c.completeArg(cmd, idx, partial)
	}

	lines := make([]string, 0, len(candidates))
	for _, cand := range candidates {
		lines = append(lines, prefix+cand)
	}
	return lines
}

// completeCommands returns command names and aliases starting with partial,
// plus matching directives when withDirectives is set.
func (c *Completer) completeCommands(partial string, withDirectives bool) []string {
	var out []string
	for _, name := range c.registry.Names() {
		if cmd := c.registry.Get(name); cmd != nil && cmd.Hidden {
			continue
		}
		if strings.HasPrefix(name, partial) {
			out = append(out, name)
		}
	}
	for _, d := range c.Directives {
		if withDirectives && strings.HasPrefix(d, partial) {
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

// completeArg returns completions for the argument at argIndex.
func (c *Completer) completeArg(cmd *Command, argIndex int, partial string) []string {
	if argIndex >= len(cmd.Args) {
		if n := len(cmd.Args); n == 0 || !cmd.Args[n-1].Variadic {
			return nil
		}
		argIndex = len(cmd.Args) - 1
	}

	argDef := cmd.Args[argIndex]
	var options []string
	switch argDef.Type {
	case ArgTypeEnum:
		options = argDef.Values
	case ArgTypeCommand:
		return c.completeCommands(partial, false)
	case ArgTypeDate:
		now := time.Now()
		if c.Now != nil {
			now = c.Now()
		}
		options = []string{
			now.Format(taskapi.DateLayout),
			now.AddDate(0, 0, 1).Format(taskapi.DateLayout),
			now.AddDate(0, 0, -1).Format(taskapi.DateLayout),
		}
	}

	var out []string
	for _, opt := range options {
		if strings.HasPrefix(opt, partial) {
			out = append(out, opt)
		}
	}
	return out
}
