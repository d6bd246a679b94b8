// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package pathutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// FindToolInPath searches for a tool executable in the system PATH.
// Returns the full path to the executable if found, empty string otherwise.
func FindToolInPath(toolName string) string {
	path, err := exec.LookPath(exeName(toolName))
	if err != nil {
		return ""
	}
	return path
}

// SearchToolInSystemPath searches for a tool in common system directories.
// Returns the full path to the executable if found, empty string otherwise.
func SearchToolInSystemPath(toolName string) string {
	name := exeName(toolName)
	for _, dir := range systemDirs() {
		fullPath := filepath.Join(dir, name)
		if info, err := os.Stat(fullPath); err == nil && !info.IsDir() {
			return fullPath
		}
	}
	return ""
}

// LookPath has the signature of exec.LookPath and falls back to the common
// system directories when toolName is not on PATH.
func LookPath(toolName string) (string, error) {
	if path := FindToolInPath(toolName); path != "" {
		return path, nil
	}
	if path := SearchToolInSystemPath(toolName); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("%s: %w", toolName, exec.ErrNotFound)
}

// InstallSuggestion returns a suggestion for how to install a missing tool.
func InstallSuggestion(toolName string) string {
	suggestions := map[string]string{
		"wl-copy": "Install wl-clipboard (e.g. apt install wl-clipboard)",
		"xclip":   "Install xclip (e.g. apt install xclip)",
		"xsel":    "Install xsel (e.g. apt install xsel)",
		"pbcopy":  "pbcopy ships with macOS; check that /usr/bin is on PATH",
		"clip":    "clip ships with Windows; check that System32 is on PATH",
	}

	if suggestion, ok := suggestions[toolName]; ok {
		return suggestion
	}
	return fmt.Sprintf("Please install %s manually", toolName)
}

func exeName(toolName string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(toolName), ".exe") {
		return toolName + ".exe"
	}
	return toolName
}

func systemDirs() []string {
	if runtime.GOOS == "windows" {
		return []string{filepath.Join(os.Getenv("SystemRoot"), "System32")}
	}
	homeDir, _ := os.UserHomeDir()
	dirs := []string{
		"/usr/local/bin",
		"/usr/bin",
		"/bin",
		"/opt/homebrew/bin",
	}
	if homeDir != "" {
		dirs = append(dirs, filepath.Join(homeDir, ".local", "bin"))
	}
	return dirs
}
