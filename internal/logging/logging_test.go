// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_DefaultLevelIsWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf})

	logger.Debug("debug line")
	logger.Info("info line")
	logger.Warn("warn line", zap.String("command", "list"))
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "debug line") || strings.Contains(out, "info line") {
		t.Errorf("output contains below-warn entries: %q", out)
	}
	if !strings.Contains(out, "warn line") {
		t.Errorf("output missing warn entry: %q", out)
	}
	if !strings.Contains(out, `"command": "list"`) {
		t.Errorf("output missing field: %q", out)
	}
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Verbose: true, Output: &buf})

	logger.Debug("dispatch", zap.Int("argc", 1))
	_ = logger.Sync()

	if !strings.Contains(buf.String(), "DEBUG") {
		t.Errorf("verbose logger dropped debug entry: %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	if Nop().Core().Enabled(zap.ErrorLevel) {
		t.Error("Nop logger should not be enabled at any level")
	}
}
