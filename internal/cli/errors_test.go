// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jeranaias/tasks-cli/internal/commands"
	"github.com/jeranaias/tasks-cli/internal/taskapi"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitGeneralError},
		{"unknown command", &commands.UnknownCommandError{Name: "bogus"}, ExitUsageError},
		{"invalid arguments", &commands.InvalidArgumentsError{Command: "list", Reason: "too many arguments"}, ExitUsageError},
		{"config", &ConfigError{Path: "/tmp/c.toml", Err: errors.New("bad")}, ExitConfigError},
		{
			"connection in handler",
			&commands.HandlerError{Command: "list", Err: &taskapi.ClientError{Type: taskapi.ErrTypeConnection, Message: "refused"}},
			ExitNetworkError,
		},
		{"timeout", fmt.Errorf("list: %w", taskapi.ErrTimeout), ExitNetworkError},
		{
			"bad request",
			&commands.HandlerError{Command: "list", Err: &taskapi.ClientError{Type: taskapi.ErrTypeBadRequest, Message: "invalid date"}},
			ExitGeneralError,
		},
		{
			"server error",
			&commands.HandlerError{Command: "list", Err: &taskapi.ClientError{Type: taskapi.ErrTypeServer, Message: "500"}},
			ExitGeneralError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := GetExitCode(tc.err); got != tc.want {
				t.Errorf("GetExitCode(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestConfigError_Message(t *testing.T) {
	err := &ConfigError{Path: "/etc/tasks.toml", Err: errors.New("ui.color: bad")}
	if got, want := err.Error(), "config /etc/tasks.toml: ui.color: bad"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, err.Err) {
		t.Error("ConfigError should unwrap to its cause")
	}

	noPath := &ConfigError{Err: errors.New("bad")}
	if got, want := noPath.Error(), "config: bad"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
