// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for tasks-cli.
//
// Supports TOML and YAML configuration files, with defaults, environment
// variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - APIConfig: Task service URL, timeout, rate limit
//   - ShellConfig: Prompt and history settings
//   - UIConfig: Color mode
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command-line flags (applied by the cli package)
//   - Environment variables (TASKS_*)
//   - ~/.tasks-cli/config.toml
//   - ~/.tasks-cli/config.yaml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	timeout := cfg.TimeoutDuration()
package config
