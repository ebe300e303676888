package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

func newTimelineViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.MouseWheelEnabled = true
	return vp
}

// View renders header, timeline (with optional member panel) and the
// input field.
func (m *Model) View() string {
	if !m.ready {
		return "connecting..."
	}

	header := headerStyle.Render("talkroom " + m.roomCode)
	if m.disconnected {
		header += disconnectedStyle.Render("  disconnected")
	} else {
		header += timeStyle.Render("  ctrl+b members · enter send · ctrl+j newline · esc quit")
	}

	body := m.viewport.View()
	if m.membersOpen {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderMemberPanel())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		inputStyle.Render(m.input.View()),
	)
}

func (m *Model) renderTimeline() string {
	if len(m.timelineBuf.entries) == 0 {
		return timeStyle.Render("No messages yet.")
	}

	var b strings.Builder
	for i, e := range m.timelineBuf.entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		style := bodyStyle(e.Origin)
		if e.Label != "" {
			b.WriteString(labelStyle.Render(e.Label))
		}
		b.WriteString(style.Render(e.Body))
		b.WriteString("  ")
		b.WriteString(timeStyle.Render(e.Time))
	}
	return b.String()
}

func (m *Model) renderMemberPanel() string {
	lines := make([]string, 0, len(m.rosterBuf.names)+1)
	lines = append(lines, labelStyle.Render("Members"))
	for _, name := range m.rosterBuf.names {
		lines = append(lines, memberStyle.Render(name))
	}

	return memberPanelStyle.
		Width(memberPanelWidth - 2).
		Height(m.viewport.Height).
		Render(strings.Join(lines, "\n"))
}
