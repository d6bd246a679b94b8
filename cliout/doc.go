// Package cliout provides structured output formatting for CLI commands with
// cross-platform terminal support and two output formats.
//
// # Features
//
//   - Default human-readable output and JSON (--output json)
//   - ANSI colour when stdout is a terminal (golang.org/x/term), disabled by
//     NO_COLOR, overridable with ForceColor and NoColor
//   - Unicode symbols with ASCII fallbacks for legacy Windows consoles
//
// # Basic Usage
//
//	cliout.CommandHeader("classify")
//	cliout.Label("Platform", string(env.Platform))
//	cliout.Success("Copied %s", cliout.URL(tgt.URL))
//
// # Output Formats
//
// Commands build one result value and hand it to Print with a formatter for
// the human-readable case:
//
//	return cliout.Print(result, func() {
//	    cliout.Label("Decision", cliout.Status(string(result.Decision)))
//	})
package cliout
