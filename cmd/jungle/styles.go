package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor = lipgloss.Color("#2E8B57")
	errorColor  = lipgloss.Color("#A40000")
	mutedColor  = lipgloss.Color("#888888")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
	keyStyle   = lipgloss.NewStyle().Foreground(mutedColor)
)

// printError writes err with a styled prefix.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorStyle.Render("Error:"), err)
}

// printTitle writes a styled heading line.
func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
}
