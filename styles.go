package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// --- STYLES ---
var (
	brandBlue   = lipgloss.Color("#2563eb")
	brandIndigo = lipgloss.Color("#4338ca")

	docStyle   = lipgloss.NewStyle().Margin(1, 2)
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(brandIndigo).
			Padding(0, 1)
	orderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Stage header
	stageTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(brandBlue)
	stageSubtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	etaStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	// Timeline status styles
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	currentStyle   = lipgloss.NewStyle().Foreground(brandBlue).Bold(true)
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	// Sections
	sectionTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	checkStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	expectationStyle  = lipgloss.NewStyle().
				Foreground(lipgloss.Color("220")).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("214")).
				Padding(0, 1)
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(brandBlue).
			Padding(0, 1)
	detailAttrStyle = lipgloss.NewStyle().Bold(true)
	detailValStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	detailPaneStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(brandIndigo)

	// Transient notices
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#059669")).
			Padding(0, 2)
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	copySuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)

	// Review modal
	modalStyle = lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(brandBlue)
	modalTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	starOnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	starOffStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	focusedStyle    = lipgloss.NewStyle().Foreground(brandBlue).Bold(true)
	disabledStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true)
	buttonStyle     = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.NormalBorder())
)

// configureColorProfile picks the lipgloss color profile. Colors are dropped when
// asked to, or when NO_COLOR or a dumb terminal says so.
func configureColorProfile(noColor bool) {
	if noColor || os.Getenv("NO_COLOR") != "" || strings.EqualFold(strings.TrimSpace(os.Getenv("TERM")), "dumb") {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}
