// Package ui is the terminal front end: a bubbletea program wiring the
// sync controller to a scrollable timeline, a member panel and an
// auto-sizing input field. All controller calls happen inside Update, so
// event handling stays on one logical thread.
package ui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/talkroom/talkroom/internal/proto"
	"github.com/talkroom/talkroom/internal/roster"
	"github.com/talkroom/talkroom/internal/session"
	"github.com/talkroom/talkroom/internal/sync"
	"github.com/talkroom/talkroom/internal/timefmt"
	"github.com/talkroom/talkroom/internal/timeline"
)

const (
	// maxInputLines caps the auto-sizing input field; past this the field
	// scrolls internally instead of growing.
	maxInputLines = 5

	memberPanelWidth = 24
)

// channelEventMsg delivers one inbound room event into the update loop.
type channelEventMsg proto.Event

// channelClosedMsg signals that the event stream is gone.
type channelClosedMsg struct{}

// Model is the bubbletea model for a joined room.
type Model struct {
	controller *sync.Controller
	events     <-chan proto.Event
	log        *zerolog.Logger

	timelineBuf *timelineBuffer
	rosterBuf   *rosterBuffer

	viewport viewport.Model
	input    textarea.Model

	roomCode     string
	membersOpen  bool
	disconnected bool
	ready        bool
	width        int
	height       int
}

// New assembles the TUI around an already-joined session. events is the
// inbound stream from the channel; emitter carries outgoing emissions.
func New(sess session.Context, events <-chan proto.Event, emitter sync.Emitter, roomCode string, logger *zerolog.Logger) *Model {
	tlBuf := &timelineBuffer{}
	rosBuf := &rosterBuffer{}

	renderer := timeline.New(tlBuf, timefmt.New(nil))
	ros := roster.New(rosBuf, sess)
	controller := sync.New(sess, ros, renderer, emitter, logger)

	input := textarea.New()
	input.Placeholder = "Type a message..."
	input.Prompt = ""
	input.CharLimit = 0
	input.SetHeight(1)
	input.ShowLineNumbers = false
	input.Focus()
	// Enter is claimed for sending; newlines go in with ctrl+j.
	input.KeyMap.InsertNewline.SetKeys("ctrl+j")

	return &Model{
		controller:  controller,
		events:      events,
		log:         logger,
		timelineBuf: tlBuf,
		rosterBuf:   rosBuf,
		input:       input,
		roomCode:    roomCode,
		membersOpen: true,
	}
}

// Init starts listening for channel events.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, waitForEvent(m.events))
}

func waitForEvent(events <-chan proto.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return channelClosedMsg{}
		}
		return channelEventMsg(ev)
	}
}

// computeInputHeight maps a content line count onto the field height:
// natural height up to maxInputLines, clamped after that.
func computeInputHeight(lines int) int {
	if lines < 1 {
		return 1
	}
	if lines > maxInputLines {
		return maxInputLines
	}
	return lines
}
