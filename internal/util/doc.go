// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the CLI packages.
//
// # Key Functions
//
// Display width:
//   - StringWidth, TruncateWidth, PadRight: column-aware text sizing
//   - Rule: fixed-width separators for task listings
//
// File Operations:
//   - WriteFileAtomic: Crash-safe file replacement with fsync
//
// # Usage
//
//	title := util.TruncateWidth(task.Title, 60)
//	err := util.WriteFileAtomic(historyPath, 0600, func(w io.Writer) error {
//	    _, err := w.Write(data)
//	    return err
//	})
package util
