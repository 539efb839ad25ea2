// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Exit codes and error classification for tasks-cli.
//
// PATTERN:
//   - commands and handlers ALWAYS return errors, never print them
//   - the caller (shell or one-shot runner) prints exactly one line
//   - the one-shot runner maps the error to an exit code here

package cli

import (
	"errors"

	"github.com/jeranaias/tasks-cli/internal/commands"
	"github.com/jeranaias/tasks-cli/internal/taskapi"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a handler or unknown failure
	ExitGeneralError = 1
	// ExitUsageError indicates an unknown command or invalid arguments
	ExitUsageError = 2
	// ExitConfigError indicates an unreadable or invalid config file
	ExitConfigError = 3
	// ExitNetworkError indicates the task service could not be reached
	ExitNetworkError = 5
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ConfigError wraps a failure to load or validate configuration.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return "config " + e.Path + ": " + e.Err.Error()
	}
	return "config: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// GetExitCode determines the exit code for an error returned by the
// one-shot runner.
//   - ExitUsageError (2): unknown command, invalid arguments, bad flags
//   - ExitConfigError (3): ConfigError
//   - ExitNetworkError (5): connection failure or timeout
//   - ExitGeneralError (1): everything else
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if commands.IsUnknownCommand(err) || commands.IsInvalidArguments(err) {
		return ExitUsageError
	}

	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return ExitConfigError
	}

	if taskapi.IsConnection(err) || taskapi.IsTimeout(err) {
		return ExitNetworkError
	}

	return ExitGeneralError
}
