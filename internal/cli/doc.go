// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the command-line interface for tasks-cli.
//
// Two front ends share one command registry:
//   - the one-shot runner (cobra), which dispatches os.Args and exits
//     non-zero on the first failure
//   - the interactive shell, which reports each failure and keeps going
//
// # Key Types
//
//   - App: Wires config, logging, the task service client and the registry
//   - Shell: Interactive read-dispatch loop with per-line error handling
//   - LineReader: Input source (liner on a terminal, a buffered reader for pipes)
//   - TaskPrinter: Renders task listings and errors with lipgloss
//
// # Usage
//
//	func main() {
//	    os.Exit(cli.Execute(os.Args[1:]))
//	}
//
// # Exit Codes
//
//   - 0: success, or the shell closed normally
//   - 1: a command failed
//   - 2: unknown command or invalid arguments
//   - 3: invalid configuration
//   - 5: task service unreachable or timed out
package cli
