package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var colors = enableColors()

var (
	styleError   = textStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true))
	styleSuccess = textStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true))
	styleInfo    = textStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("14")))
)

// textStyle renders text unchanged when colors are disabled.
type textStyle lipgloss.Style

// Render styles s.
func (t textStyle) Render(s string) string {
	if !colors {
		return s
	}
	return lipgloss.Style(t).Render(s)
}

// enableColors reports whether stderr is an interactive terminal that
// accepts colors.
func enableColors() bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
