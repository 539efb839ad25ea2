// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the command registry and line tokenizer.
//
// The same Registry serves the one-shot CLI and the interactive shell. It is
// policy-free: Dispatch returns every failure and leaves reporting and exit
// behavior to its caller.
//
// # Key Types
//
//   - Registry: Command table with lookup, validation and dispatch
//   - Command: Name, aliases, positional argument schema and handler
//   - Env: Collaborators handed to handlers (task source, output)
//   - Completer: Tab completion for the interactive shell
//
// # Errors
//
//   - UnknownCommandError: argv[0] is not registered
//   - InvalidArgumentsError: arguments do not match the schema
//   - HandlerError: the handler (or its task source) failed
//
// # Usage
//
//	registry := commands.NewRegistry()
//	registry.Freeze()
//	err := registry.Dispatch(ctx, env, commands.Tokenize(`list 2024-01-01`))
package commands
