// Package tui holds terminal styling for devkit's human-facing output.
package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Colors
var (
	errorColor     = lipgloss.Color("196") // Red
	secondaryColor = lipgloss.Color("245") // Gray
)

// Styles for one output stream
type Styles struct {
	ErrorLabel lipgloss.Style
	ErrorText  lipgloss.Style
}

// NewStyles builds styles bound to w. With color off every style renders
// plain text.
func NewStyles(w io.Writer, color bool) Styles {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		ErrorLabel: r.NewStyle().
			Bold(true).
			Foreground(errorColor),
		ErrorText: r.NewStyle().
			Foreground(secondaryColor),
	}
}

// RenderError formats a failure line as "Error: <msg>"
func (s Styles) RenderError(msg string) string {
	return s.ErrorLabel.Render("Error:") + " " + s.ErrorText.Render(msg)
}

// ColorEnabled resolves a color mode (auto, always, never) for w.
// auto means color only when w is a terminal.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return IsTerminal(w)
}

// IsTerminal reports whether w is an *os.File attached to a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
