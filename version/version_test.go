package version

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/escapehatch/cliout"
	"github.com/jongio/escapehatch/testutil"
)

func TestNew_Defaults(t *testing.T) {
	info := New("escapehatch")
	assert.Equal(t, "escapehatch", info.Name)
	assert.Equal(t, "0.0.0-dev", info.Version)
	assert.Equal(t, "unknown", info.BuildDate)
	assert.Equal(t, "unknown", info.GitCommit)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}

func TestInfo_String(t *testing.T) {
	info := &Info{Name: "escapehatch", Version: "1.2.3", BuildDate: "2026-01-01", GitCommit: "abc123"}
	assert.Equal(t, "escapehatch version 1.2.3 (commit: abc123, built: 2026-01-01)", info.String())
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	cmd := NewCommand(New("escapehatch"))
	cmd.SetArgs(args)
	return testutil.CaptureOutput(t, cmd.Execute)
}

func TestNewCommand_HumanReadable(t *testing.T) {
	require.NoError(t, cliout.SetFormat("default"))
	output := runCommand(t)
	for _, want := range []string{"escapehatch Version", "Version:", "Build Date:", "Git Commit:", "Go:"} {
		assert.Contains(t, output, want)
	}
}

func TestNewCommand_JSON(t *testing.T) {
	require.NoError(t, cliout.SetFormat("json"))
	t.Cleanup(func() { _ = cliout.SetFormat("default") })

	output := runCommand(t)
	var parsed Info
	require.NoError(t, json.Unmarshal([]byte(output), &parsed), output)
	assert.Equal(t, "escapehatch", parsed.Name)
	assert.Equal(t, "0.0.0-dev", parsed.Version)
}

func TestNewCommand_Quiet(t *testing.T) {
	require.NoError(t, cliout.SetFormat("default"))
	output := runCommand(t, "--quiet")
	assert.Equal(t, "0.0.0-dev", strings.TrimSpace(output))
}
