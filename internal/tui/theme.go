package tui

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"quickcap/internal/capture"
)

// Colours must stay readable on light and dark backgrounds, so everything is an
// AdaptiveColor and faint styling is only used on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted     lipgloss.TerminalColor = ac("240", "243")
	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")
	colorControlBg lipgloss.TerminalColor = ac("252", "235")
	colorInputBg   lipgloss.TerminalColor = ac("254", "234")
	colorAccent    lipgloss.TerminalColor = ac("27", "62")
	colorBorder    lipgloss.TerminalColor = ac("250", "243")

	colorGood lipgloss.TerminalColor = ac("28", "42")
	colorBad  lipgloss.TerminalColor = ac("160", "203")
	colorInfo lipgloss.TerminalColor = ac("27", "75")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
}

func styleBadge() lipgloss.Style {
	return lipgloss.NewStyle().Padding(0, 1).Background(colorControlBg).Foreground(colorSurfaceFg)
}

func styleEditorBox(focused bool) lipgloss.Style {
	c := colorBorder
	if focused {
		c = colorAccent
	}
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c)
}

func styleStatus(t capture.Tone) lipgloss.Style {
	st := lipgloss.NewStyle().Bold(true)
	switch t {
	case capture.ToneGood:
		return st.Foreground(colorGood)
	case capture.ToneBad:
		return st.Foreground(colorBad)
	case capture.ToneInfo:
		return st.Foreground(colorInfo)
	default:
		return st.Foreground(colorMuted)
	}
}

// applyColorProfilePreference sets Lip Gloss's colour profile for the TUI.
//
// termenv.EnvColorProfile honours CLICOLOR/CLICOLOR_FORCE, which can disable colours in
// a TUI; here only NO_COLOR is honoured and the terminal's capabilities decide the rest.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the detector found.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection.
//
// Priority:
// 1) QUICKCAP_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg")
// 3) macOS appearance
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("QUICKCAP_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
			return
		}
	}

	if runtime.GOOS == "darwin" {
		if dark, ok := macOSHasDarkAppearance(); ok {
			lipgloss.SetHasDarkBackground(dark)
		}
	}
}

func macOSHasDarkAppearance() (dark bool, ok bool) {
	// Prints "Dark" in dark mode; exits 1 in light mode (key missing).
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").CombinedOutput()
	if ctx.Err() != nil {
		return false, false
	}
	if err == nil {
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	}
	if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 1 {
		return false, true
	}
	return false, false
}
