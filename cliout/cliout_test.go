package cliout

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput captures stdout during function execution
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	defer func() { os.Stdout = oldStdout }()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()

	_ = w.Close()
	return <-done
}

func resetState(t *testing.T) {
	t.Helper()
	require.NoError(t, SetFormat("default"))
	NoColor()
	t.Cleanup(func() {
		_ = SetFormat("default")
		ResetColor()
	})
}

func TestSetFormat(t *testing.T) {
	resetState(t)

	require.NoError(t, SetFormat("json"))
	assert.Equal(t, FormatJSON, GetFormat())
	assert.True(t, IsJSON())

	require.NoError(t, SetFormat(""))
	assert.Equal(t, FormatDefault, GetFormat())

	err := SetFormat("yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
	assert.Equal(t, FormatDefault, GetFormat())
}

func TestPrint_JSON(t *testing.T) {
	resetState(t)
	require.NoError(t, SetFormat("json"))

	called := false
	output := captureOutput(t, func() {
		require.NoError(t, Print(map[string]string{"decision": "escape"}, func() { called = true }))
	})

	assert.False(t, called)
	assert.JSONEq(t, `{"decision":"escape"}`, output)
}

func TestPrint_Default(t *testing.T) {
	resetState(t)

	output := captureOutput(t, func() {
		require.NoError(t, Print(nil, func() { Plain("hello %s", "world") }))
	})
	assert.Equal(t, "hello world\n", output)
}

func TestCommandHeader(t *testing.T) {
	resetState(t)

	output := captureOutput(t, func() { CommandHeader("classify") })
	assert.Contains(t, output, "escapehatch classify")

	require.NoError(t, SetFormat("json"))
	output = captureOutput(t, func() { CommandHeader("classify") })
	assert.Empty(t, output)
}

func TestMessages_NoColor(t *testing.T) {
	resetState(t)

	output := captureOutput(t, func() {
		Success("done %d", 1)
		Error("failed")
		Warning("careful")
		Info("note")
		Label("Platform", "ios")
		Bullet("item")
		Item("indented")
		Hint("a", "b")
	})

	assert.NotContains(t, output, "\033[")
	assert.Contains(t, output, "done 1")
	assert.Contains(t, output, "failed")
	assert.Contains(t, output, "careful")
	assert.Contains(t, output, "Platform:")
	assert.Contains(t, output, "ios")
	assert.Contains(t, output, "   indented")
}

func TestForceColor(t *testing.T) {
	resetState(t)
	ForceColor()

	assert.Equal(t, BrightBlue+"https://example.com"+Reset, URL("https://example.com"))
	assert.Equal(t, Bold+"x"+Reset, Emphasize("x"))
	assert.Equal(t, Dim+"y"+Reset, Muted("y"))

	NoColor()
	assert.Equal(t, "https://example.com", URL("https://example.com"))
}

func TestColorEnabled_NoColorEnv(t *testing.T) {
	resetState(t)
	ResetColor()
	t.Setenv("NO_COLOR", "1")
	assert.False(t, colorEnabled())
}

func TestStatus(t *testing.T) {
	resetState(t)
	ForceColor()

	tests := []struct {
		status string
		color  string
	}{
		{"healthy", BrightGreen},
		{"immediate", BrightGreen},
		{"escape", BrightYellow},
		{"manual", BrightRed},
		{"unknown", BrightBlue},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.color+tt.status+Reset, Status(tt.status))
	}
	assert.Equal(t, "other", Status("other"))
}

func TestTable(t *testing.T) {
	resetState(t)

	output := captureOutput(t, func() {
		Table([]string{"Step", "URL"}, []TableRow{
			{"Step": "intent", "URL": "intent://example.com/"},
			{"Step": "x-safari", "URL": "x-safari-https://example.com/"},
		})
	})

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Step")
	assert.Contains(t, lines[2], "intent")
	assert.Contains(t, lines[3], "x-safari-https://example.com/")

	output = captureOutput(t, func() { Table([]string{"A"}, nil) })
	assert.Empty(t, output)
}
