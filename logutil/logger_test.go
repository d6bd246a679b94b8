// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package logutil

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLoggerCreatesWithComponent(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)

	logger := NewLogger("page")
	if logger.Component() != "page" {
		t.Errorf("expected component 'page', got %q", logger.Component())
	}

	logger.Info("hello")
	if !strings.Contains(buf.String(), "component=page") {
		t.Errorf("expected output to contain component=page, got: %s", buf.String())
	}
}

func TestWithLoadAddsContext(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)

	NewLogger("page").WithLoad("abc-123").Info("rendered")

	output := buf.String()
	if !strings.Contains(output, "component=page") {
		t.Errorf("expected component=page in output, got: %s", output)
	}
	if !strings.Contains(output, "load=abc-123") {
		t.Errorf("expected load=abc-123 in output, got: %s", output)
	}
}

func TestWithOperationAndFields(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)

	logger := NewLogger("escape").WithOperation("start").WithFields("platform", "ios")
	logger.Warn("test")

	output := buf.String()
	if !strings.Contains(output, "operation=start") {
		t.Errorf("expected operation=start in output, got: %s", output)
	}
	if !strings.Contains(output, "platform=ios") {
		t.Errorf("expected platform=ios in output, got: %s", output)
	}
	if logger.Component() != "escape" {
		t.Errorf("component should survive chaining, got %q", logger.Component())
	}
}

func TestComponentLoggerDebugRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)

	NewLogger("page").Debug("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("debug output should be filtered at info level, got: %s", buf.String())
	}

	SetupLoggerWithWriter(&buf, true, false)
	NewLogger("page").Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected debug output, got: %s", buf.String())
	}
}
