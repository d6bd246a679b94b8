// Package commands implements the escapehatch command line: the page server
// and the offline tools for classifying user agents, simulating an escape
// and building destination links.
package commands
