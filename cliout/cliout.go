package cliout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Format represents the output format.
type Format string

const (
	// FormatDefault is the default human-readable format.
	FormatDefault Format = "default"
	// FormatJSON is JSON format.
	FormatJSON Format = "json"
)

// ANSI color codes for consistent styling
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"

	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightBlue   = "\033[94m"
)

// Unicode symbols for modern CLI output
const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
	SymbolArrow   = "→"
	SymbolDot     = "•"
)

// ASCII fallback symbols for terminals that don't support Unicode
const (
	ASCIICheck   = "[+]"
	ASCIICross   = "[-]"
	ASCIIWarning = "[!]"
	ASCIIInfo    = "[i]"
	ASCIIArrow   = "->"
	ASCIIDot     = "*"
)

var (
	mu           sync.RWMutex
	globalFormat = FormatDefault
	// colorMode is nil until ForceColor or NoColor is called; until then
	// colour follows terminal detection.
	colorMode *bool
)

// ForceColor enables color output regardless of terminal detection.
func ForceColor() {
	mu.Lock()
	on := true
	colorMode = &on
	mu.Unlock()
}

// NoColor disables color output.
func NoColor() {
	mu.Lock()
	off := false
	colorMode = &off
	mu.Unlock()
}

// ResetColor returns to terminal detection.
func ResetColor() {
	mu.Lock()
	colorMode = nil
	mu.Unlock()
}

// colorEnabled reports whether ANSI codes should be written. NO_COLOR is
// honoured unless colour was forced.
func colorEnabled() bool {
	mu.RLock()
	mode := colorMode
	mu.RUnlock()

	if mode != nil {
		return *mode
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// paint wraps s in code when colour is enabled.
func paint(code, s string) string {
	if !colorEnabled() {
		return s
	}
	return code + s + Reset
}

// supportsUnicode detects if the terminal supports Unicode/emojis
var supportsUnicode = detectUnicodeSupport()

func detectUnicodeSupport() bool {
	if runtime.GOOS != "windows" {
		return true
	}
	// Windows Terminal, VS Code, ConEmu and PowerShell render Unicode; the
	// legacy console does not.
	if os.Getenv("WT_SESSION") != "" || os.Getenv("TERM_PROGRAM") == "vscode" || os.Getenv("ConEmuPID") != "" {
		return true
	}
	if os.Getenv("PSModulePath") != "" || os.Getenv("TERM") != "" {
		return true
	}
	return false
}

func getIcon(unicode, ascii string) string {
	if supportsUnicode {
		return unicode
	}
	return ascii
}

// out resolves stdout at call time so tests that swap os.Stdout see output.
func out() io.Writer {
	return os.Stdout
}

// SetFormat sets the global output format.
func SetFormat(format string) error {
	mu.Lock()
	defer mu.Unlock()

	switch format {
	case "default", "":
		globalFormat = FormatDefault
	case "json":
		globalFormat = FormatJSON
	default:
		return fmt.Errorf("invalid output format: %s (valid options: default, json)", format)
	}
	return nil
}

// GetFormat returns the current output format.
func GetFormat() Format {
	mu.RLock()
	defer mu.RUnlock()
	return globalFormat
}

// IsJSON returns true if the output format is JSON.
func IsJSON() bool {
	return GetFormat() == FormatJSON
}

// PrintJSON prints data as indented JSON to stdout.
func PrintJSON(data interface{}) error {
	encoder := json.NewEncoder(out())
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Print outputs data in the configured format.
// For default format, uses the formatter function.
// For JSON format, marshals the data object.
func Print(data interface{}, formatter func()) error {
	if IsJSON() {
		return PrintJSON(data)
	}
	formatter()
	return nil
}

// CommandHeader prints a minimal command header. Skipped in JSON mode.
func CommandHeader(command string) {
	if IsJSON() {
		return
	}
	fmt.Fprintln(out())
	fmt.Fprintln(out(), paint(Bold, "escapehatch "+command))
	fmt.Fprintln(out(), strings.Repeat("─", 30))
}

// Header prints a bold header with a divider
func Header(text string) {
	fmt.Fprintf(out(), "\n%s\n", paint(Bold, text))
	fmt.Fprintln(out(), strings.Repeat("=", len(text)))
}

// Section prints a section header
func Section(text string) {
	fmt.Fprintf(out(), "\n%s\n", paint(Cyan, getIcon(SymbolArrow, ASCIIArrow)+" "+text))
}

// Success prints a success message with green checkmark
func Success(format string, args ...interface{}) {
	fmt.Fprintf(out(), "%s %s\n", paint(BrightGreen, getIcon(SymbolCheck, ASCIICheck)), fmt.Sprintf(format, args...))
}

// Error prints an error message with red X
func Error(format string, args ...interface{}) {
	fmt.Fprintf(out(), "%s %s\n", paint(BrightRed, getIcon(SymbolCross, ASCIICross)), fmt.Sprintf(format, args...))
}

// Warning prints a warning message with yellow triangle
func Warning(format string, args ...interface{}) {
	fmt.Fprintf(out(), "%s  %s\n", paint(BrightYellow, getIcon(SymbolWarning, ASCIIWarning)), fmt.Sprintf(format, args...))
}

// Info prints an info message with blue info icon
func Info(format string, args ...interface{}) {
	fmt.Fprintf(out(), "%s  %s\n", paint(BrightBlue, getIcon(SymbolInfo, ASCIIInfo)), fmt.Sprintf(format, args...))
}

// Item prints an indented item
func Item(format string, args ...interface{}) {
	fmt.Fprintf(out(), "   %s\n", fmt.Sprintf(format, args...))
}

// Bullet prints a bulleted list item
func Bullet(format string, args ...interface{}) {
	fmt.Fprintf(out(), "  %s %s\n", getIcon(SymbolDot, ASCIIDot), fmt.Sprintf(format, args...))
}

// Newline prints a blank line
func Newline() {
	fmt.Fprintln(out())
}

// Hint prints compact hints on a single line with bullet separators.
func Hint(hints ...string) {
	if len(hints) == 0 {
		return
	}
	fmt.Fprintln(out(), paint(Dim, strings.Join(hints, " "+getIcon(SymbolDot, ASCIIDot)+" ")))
}

// Plain prints plain text without any formatting.
func Plain(format string, args ...interface{}) {
	fmt.Fprintf(out(), format+"\n", args...)
}

// Label prints a label and value pair
func Label(label, value string) {
	fmt.Fprintf(out(), "   %s %s\n", paint(Dim, fmt.Sprintf("%-14s", label+":")), value)
}

// URL returns a URL in bright blue
func URL(url string) string {
	return paint(BrightBlue, url)
}

// Emphasize returns bold text
func Emphasize(format string, args ...interface{}) string {
	return paint(Bold, fmt.Sprintf(format, args...))
}

// Muted returns dim text
func Muted(format string, args ...interface{}) string {
	return paint(Dim, fmt.Sprintf(format, args...))
}

// Status returns a status badge with appropriate color
func Status(status string) string {
	switch strings.ToLower(status) {
	case "success", "ok", "healthy", "immediate":
		return paint(BrightGreen, status)
	case "warning", "pending", "redirecting", "degraded", "escape":
		return paint(BrightYellow, status)
	case "error", "failed", "unhealthy", "manual":
		return paint(BrightRed, status)
	case "info", "unknown":
		return paint(BrightBlue, status)
	default:
		return status
	}
}

// TableRow represents a row in a table as a map of column header to value.
type TableRow map[string]string

// Table prints a simple table with the given headers and rows.
func Table(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	widths := make(map[string]int)
	for _, header := range headers {
		widths[header] = len(header)
	}
	for _, row := range rows {
		for _, header := range headers {
			if len(row[header]) > widths[header] {
				widths[header] = len(row[header])
			}
		}
	}

	w := out()
	fmt.Fprint(w, "   ")
	for _, header := range headers {
		fmt.Fprint(w, paint(Bold, fmt.Sprintf("%-*s", widths[header], header))+"  ")
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "   ")
	for _, header := range headers {
		fmt.Fprint(w, strings.Repeat("─", widths[header])+"  ")
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		fmt.Fprint(w, "   ")
		for _, header := range headers {
			fmt.Fprintf(w, "%-*s  ", widths[header], row[header])
		}
		fmt.Fprintln(w)
	}
}
