package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/talkroom/talkroom/internal/timeline"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Bold(true)
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	incomingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	outgoingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	connectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Italic(true)
	disconnectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Italic(true)

	memberPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)

	memberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("240"))
)

func bodyStyle(origin timeline.Origin) lipgloss.Style {
	switch origin {
	case timeline.OriginOutgoing:
		return outgoingStyle
	case timeline.OriginUserConnected:
		return connectedStyle
	case timeline.OriginUserDisconnected:
		return disconnectedStyle
	default:
		return incomingStyle
	}
}
