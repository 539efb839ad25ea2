// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
)

// =============================================================================
// DISPATCH ERRORS
// =============================================================================

// ErrHandlerPanic marks a HandlerError produced by a recovered handler panic.
var ErrHandlerPanic = errors.New("command handler panicked")

// ErrRegistryFrozen is returned by Register after Freeze.
var ErrRegistryFrozen = errors.New("command registry is frozen")

// UnknownCommandError is returned when the first token of an argument vector
// does not name a registered command.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: %s (type help for commands)", e.Name)
}

// InvalidArgumentsError is returned when the arguments of a known command do
// not match its schema. The handler never runs in that case.
type InvalidArgumentsError struct {
	Command  string
	Arg      string
	Reason   string
	Got      string
	Expected string
}

func (e *InvalidArgumentsError) Error() string {
	msg := e.Reason
	if e.Command != "" {
		msg = e.Command + ": " + msg
	}
	if e.Arg != "" {
		msg += " for argument '" + e.Arg + "'"
	}
	if e.Got != "" {
		msg += " (got: " + e.Got + ")"
	}
	if e.Expected != "" {
		msg += " - expected: " + e.Expected
	}
	return msg
}

// HandlerError wraps a failure raised by a command handler after lookup and
// validation succeeded.
type HandlerError struct {
	Command string
	Err     error
}

func (e *HandlerError) Error() string {
	return e.Command + ": " + e.Err.Error()
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR CHECKING HELPERS
// =============================================================================

// IsUnknownCommand reports whether err is (or wraps) an UnknownCommandError.
func IsUnknownCommand(err error) bool {
	var target *UnknownCommandError
	return errors.As(err, &target)
}

// IsInvalidArguments reports whether err is (or wraps) an InvalidArgumentsError.
func IsInvalidArguments(err error) bool {
	var target *InvalidArgumentsError
	return errors.As(err, &target)
}

// IsHandlerFailure reports whether err is (or wraps) a HandlerError.
func IsHandlerFailure(err error) bool {
	var target *HandlerError
	return errors.As(err, &target)
}
