package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ApplyColorProfile sets the lipgloss colour profile for the TUI. NO_COLOR
// or noColor forces plain ASCII output; otherwise the terminal's reported
// capabilities are used, upgraded when TERM or COLORTERM advertise more.
// Output that is not a terminal stays plain.
func ApplyColorProfile(noColor bool) {
	if noColor || strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(upgradeProfile(termenv.ColorProfile(), os.Getenv("TERM"), os.Getenv("COLORTERM")))
}

func upgradeProfile(profile termenv.Profile, term, colorterm string) termenv.Profile {
	// Ascii means no TTY or colour was refused; never add colour to it
	if profile == termenv.Ascii {
		return profile
	}
	term = strings.ToLower(strings.TrimSpace(term))
	colorterm = strings.ToLower(strings.TrimSpace(colorterm))
	switch {
	case strings.Contains(colorterm, "truecolor"), strings.Contains(colorterm, "24bit"):
		return termenv.TrueColor
	case strings.Contains(term, "256color"):
		if profile == termenv.ANSI {
			return termenv.ANSI256
		}
	}
	return profile
}
