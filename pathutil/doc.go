// Package pathutil locates helper executables.
//
// LookPath searches PATH first and then a short list of common install
// directories, so programs installed under ~/.local/bin or Homebrew are found
// even when the service runs with a minimal PATH. InstallSuggestion returns a
// one-line hint for the clipboard helpers escapehatch knows about.
package pathutil
