package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/talkroom/talkroom/internal/proto"
)

// Update is the single dispatch point: channel events and user input both
// land here and run to completion before the next message is processed.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refreshTimeline()
		return m, nil

	case channelEventMsg:
		m.controller.Handle(proto.Event(msg))
		m.refreshTimeline()
		return m, waitForEvent(m.events)

	case channelClosedMsg:
		m.disconnected = true
		m.input.Blur()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+b":
			m.membersOpen = !m.membersOpen
			m.layout()
			return m, nil
		case "enter":
			if m.disconnected {
				return m, nil
			}
			if m.controller.Submit(m.input.Value()) {
				m.input.Reset()
				m.input.SetHeight(1)
				m.refreshTimeline()
			}
			return m, nil
		}
	}

	if m.disconnected {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.resizeInput()
	return m, cmd
}

// resizeInput re-measures the field on every content change: natural
// content height up to the cap, then the field scrolls instead of
// growing, and the latest content stays in view.
func (m *Model) resizeInput() {
	lines := strings.Count(m.input.Value(), "\n") + 1
	m.input.SetHeight(computeInputHeight(lines))
	m.layout()
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	timelineWidth := m.width
	if m.membersOpen {
		timelineWidth -= memberPanelWidth
	}

	inputHeight := m.input.Height() + 1 // top border
	headerHeight := 1
	bodyHeight := m.height - headerHeight - inputHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	if !m.ready {
		m.viewport = newTimelineViewport(timelineWidth, bodyHeight)
		m.ready = true
	} else {
		m.viewport.Width = timelineWidth
		m.viewport.Height = bodyHeight
	}
	m.input.SetWidth(m.width)

	m.refreshTimeline()
}

// refreshTimeline re-renders the viewport content and keeps the newest
// entry visible.
func (m *Model) refreshTimeline() {
	if !m.ready {
		return
	}
	if !m.timelineBuf.dirty && !m.rosterBuf.dirty {
		// Still re-render on layout changes; dirty flags only gate the
		// auto-scroll.
		m.viewport.SetContent(m.renderTimeline())
		return
	}

	m.timelineBuf.dirty = false
	m.rosterBuf.dirty = false
	m.viewport.SetContent(m.renderTimeline())
	m.viewport.GotoBottom()
}
