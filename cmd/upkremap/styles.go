// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/upkremap/upkremap/internal/pipeline"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#A78BFA"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}
	colorOK     = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}
	colorBad    = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	colorKey    = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
)

// Styles shared by CLI output. lipgloss drops the colors when NO_COLOR is set
// or stdout is not a terminal.
var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	SubtitleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	SuccessStyle  = lipgloss.NewStyle().Foreground(colorOK)
	ErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorBad)
	WarningStyle  = lipgloss.NewStyle().Foreground(colorWarn)
	KeyStyle      = lipgloss.NewStyle().Foreground(colorKey)
)

type badge struct {
	mark  string
	style lipgloss.Style
}

// statusBadges marks each archive in the end-of-run summary.
var statusBadges = map[pipeline.Status]badge{
	pipeline.StatusRemapped:  {"✓", SuccessStyle},
	pipeline.StatusDiscarded: {"-", SubtitleStyle},
	pipeline.StatusFailed:    {"✗", ErrorStyle},
	pipeline.StatusSkipped:   {"·", SubtitleStyle},
}

func statusBadge(s pipeline.Status) string {
	b, ok := statusBadges[s]
	if !ok {
		return "?"
	}
	return b.style.Render(b.mark)
}
