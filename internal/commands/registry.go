// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// HandlerFunc executes a command with its validated positional arguments.
type HandlerFunc func(ctx context.Context, env *Env, args []string) error

// Command describes a registered command.
type Command struct {
	// Name is the primary command name (e.g., "list")
	Name string

	// Aliases are alternative names (e.g., "ls")
	Aliases []string

	// Description is shown in help and completion
	Description string

	// Usage shows argument syntax (e.g., "list <date>")
	Usage string

	// Args defines the expected positional arguments
	Args []ArgDef

	// Handler is the function that executes the command
	Handler HandlerFunc

	// Hidden commands don't appear in help
	Hidden bool

	// Category for grouping in help display
	Category string
}

// ArgDef defines a positional argument for a command.
type ArgDef struct {
	// Name of the argument
	Name string

	// Required indicates if the argument must be provided
	Required bool

	// Variadic consumes every remaining argument. Only valid on the last ArgDef.
	Variadic bool

	// Type determines validation and completion behavior
	Type ArgType

	// Description explains the argument
	Description string

	// Values for enum types
	Values []string
}

// ArgType indicates what kind of value an argument holds.
type ArgType int

const (
	ArgTypeString  ArgType = iota // Free-form string
	ArgTypeDate                   // Date filter, YYYY-MM-DD by convention
	ArgTypeCommand                // Name of a registered command
	ArgTypeEnum                   // One of predefined values
)

// MaxArgs returns the maximum number of positional arguments the command
// accepts, or -1 when the last argument is variadic.
func (c *Command) MaxArgs() int {
	if n := len(c.Args); n > 0 && c.Args[n-1].Variadic {
		return -1
	}
	return len(c.Args)
}

// UsageLine returns Usage, or a usage line derived from Args.
func (c *Command) UsageLine() string {
	if c.Usage != "" {
		return c.Usage
	}
	parts := []string{c.Name}
	for _, a := range c.Args {
		name := a.Name
		if a.Variadic {
			name += "..."
		}
		if a.Required {
			parts = append(parts, "<"+name+">")
		} else {
			parts = append(parts, "["+name+"]")
		}
	}
	return strings.Join(parts, " ")
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
//
// A Registry never prints and never exits: Dispatch returns every failure to
// its caller, which decides whether to report and continue or to terminate.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
	frozen   bool
}

// NewEmptyRegistry creates a registry without any commands.
func NewEmptyRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
}

// NewRegistry creates a new command registry with all built-in commands.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry. Names and aliases share one
// namespace and must be unique.
func (r *Registry) Register(cmd *Command) error {
	if r.frozen {
		return ErrRegistryFrozen
	}
	if cmd == nil || cmd.Name == "" {
		return fmt.Errorf("command must have a name")
	}
	if cmd.Handler == nil {
		return fmt.Errorf("command %q has no handler", cmd.Name)
	}
	for i, a := range cmd.Args {
		if a.Variadic && i != len(cmd.Args)-1 {
			return fmt.Errorf("command %q: variadic argument %q must be last", cmd.Name, a.Name)
		}
	}

	names := append([]string{cmd.Name}, cmd.Aliases...)
	for _, name := range names {
		if r.Get(name) != nil {
			return fmt.Errorf("command name %q is already registered", name)
		}
	}

	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
	return nil
}

// MustRegister is like Register but panics on error. Intended for static
// command tables built at start-up.
func (r *Registry) MustRegister(cmd *Command) {
	if err := r.Register(cmd); err != nil {
		panic(err)
	}
}

// Freeze makes the registry immutable.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Get retrieves a command by exact name or alias. Lookup is case-sensitive.
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns all registered commands sorted by name.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// ByCategory returns visible commands grouped by category.
func (r *Registry) ByCategory() map[string][]*Command {
	result := make(map[string][]*Command)
	for _, cmd := range r.All() {
		if cmd.Hidden {
			continue
		}
		category := cmd.Category
		if category == "" {
			category = "General"
		}
		result[category] = append(result[category], cmd)
	}
	return result
}

// Names returns every command name and alias, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands)+len(r.aliases))
	for name := range r.commands {
		names = append(names, name)
	}
	for alias := range r.aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// DISPATCH
// =============================================================================

// Dispatch looks up argv[0], validates argv[1:] against the command schema
// and runs the handler.
//
// Failures are returned as *UnknownCommandError, *InvalidArgumentsError or
// *HandlerError. Lookup and validation have no side effects; a handler panic
// is recovered and returned as a HandlerError wrapping ErrHandlerPanic.
func (r *Registry) Dispatch(ctx context.Context, env *Env, argv []string) (err error) {
	if len(argv) == 0 {
		return &InvalidArgumentsError{Reason: "no command given"}
	}

	cmd := r.Get(argv[0])
	if cmd == nil {
		return &UnknownCommandError{Name: argv[0]}
	}

	args := argv[1:]
	if err := ValidateArgs(cmd, args); err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			err = &HandlerError{Command: cmd.Name, Err: fmt.Errorf("%w: %v", ErrHandlerPanic, p)}
		}
	}()

	if herr := cmd.Handler(ctx, env, args); herr != nil {
		return &HandlerError{Command: cmd.Name, Err: herr}
	}
	return nil
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	r.MustRegister(&Command{
		Name:        "list",
		Aliases:     []string{"ls"},
		Description: "List tasks for a specific date",
		Usage:       "list <date>",
		Args: []ArgDef{
			{Name: "date", Required: true, Type: ArgTypeDate, Description: "date in YYYY-MM-DD format"},
		},
		Category: "Tasks",
		Handler:  HandleList,
	})

	r.MustRegister(&Command{
		Name:        "today",
		Description: "List tasks for today",
		Category:    "Tasks",
		Handler:     HandleToday,
	})

	r.MustRegister(&Command{
		Name:        "total",
		Description: "Show the number of tasks and total estimate for a date",
		Usage:       "total <date>",
		Args: []ArgDef{
			{Name: "date", Required: true, Type: ArgTypeDate, Description: "date in YYYY-MM-DD format"},
		},
		Category: "Tasks",
		Handler:  HandleTotal,
	})

	r.MustRegister(&Command{
		Name:        "ping",
		Description: "Check that the task service is reachable",
		Category:    "Service",
		Handler:     HandlePing,
	})

	r.MustRegister(&Command{
		Name:        "usage",
		Description: "Show usage for one or all commands",
		Usage:       "usage [command]",
		Args: []ArgDef{
			{Name: "command", Required: false, Type: ArgTypeCommand, Description: "command to describe"},
		},
		Category: "General",
		Handler:  r.handleUsage,
	})
}

func (r *Registry) handleUsage(ctx context.Context, env *Env, args []string) error {
	if env == nil || env.Out == nil {
		return ErrNoOutput
	}
	if len(args) == 0 {
		env.Out.Usage(visible(r.All()))
		return nil
	}
	cmd := r.Get(args[0])
	if cmd == nil {
		return fmt.Errorf("no such command: %s", args[0])
	}
	env.Out.Usage([]*Command{cmd})
	return nil
}

func visible(cmds []*Command) []*Command {
	out := cmds[:0:0]
	for _, c := range cmds {
		if !c.Hidden {
			out = append(out, c)
		}
	}
	return out
}
