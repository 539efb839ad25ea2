// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"time"

	"github.com/jeranaias/tasks-cli/internal/taskapi"
)

// =============================================================================
// HANDLER ENVIRONMENT
// =============================================================================

// ErrNoTaskSource is returned by task handlers when Env has no TaskSource.
var ErrNoTaskSource = errors.New("task service is not configured")

// ErrNoOutput is returned by handlers when Env has no Output.
var ErrNoOutput = errors.New("no output configured")

// TaskSource is the task query collaborator used by handlers.
type TaskSource interface {
	ListTasks(ctx context.Context, date string) ([]taskapi.Task, error)
	Ping(ctx context.Context) (time.Duration, error)
}

// Output renders handler results for the operator.
type Output interface {
	Tasks(date string, tasks []taskapi.Task)
	Total(date string, tasks []taskapi.Task)
	Message(format string, args ...any)
	Usage(cmds []*Command)
}

// Env provides handlers with their collaborators. It is shared by the
// one-shot runner and the interactive shell.
type Env struct {
	Tasks TaskSource
	Out   Output

	// Now returns the current time; nil means time.Now.
	Now func() time.Time
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Env) check() error {
	if e == nil || e.Out == nil {
		return ErrNoOutput
	}
	if e.Tasks == nil {
		return ErrNoTaskSource
	}
	return nil
}

// =============================================================================
// HANDLER IMPLEMENTATIONS
// =============================================================================

// HandleList prints the tasks scheduled for args[0].
func HandleList(ctx context.Context, env *Env, args []string) error {
	if err := env.check(); err != nil {
		return err
	}
	date := args[0]
	tasks, err := env.Tasks.ListTasks(ctx, date)
	if err != nil {
		return err
	}
	env.Out.Tasks(date, tasks)
	return nil
}

// HandleToday prints the tasks scheduled for the current local date.
func HandleToday(ctx context.Context, env *Env, args []string) error {
	if err := env.check(); err != nil {
		return err
	}
	return HandleList(ctx, env, []string{env.now().Format(taskapi.DateLayout)})
}

// HandleTotal prints the task count and summed estimate for args[0].
func HandleTotal(ctx context.Context, env *Env, args []string) error {
	if err := env.check(); err != nil {
		return err
	}
	date := args[0]
	tasks, err := env.Tasks.ListTasks(ctx, date)
	if err != nil {
		return err
	}
	env.Out.Total(date, tasks)
	return nil
}

// HandlePing checks that the task service answers.
func HandlePing(ctx context.Context, env *Env, args []string) error {
	if err := env.check(); err != nil {
		return err
	}
	latency, err := env.Tasks.Ping(ctx)
	if err != nil {
		return err
	}
	env.Out.Message("Task service is up (%s)", latency.Round(time.Millisecond))
	return nil
}
