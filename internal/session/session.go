// Package session holds the viewer's own identity: display name and the
// server-issued member id, persisted across runs.
package session

import "context"

// Context exposes the local identity to the sync layer. The name is set by
// the join step before the sync core runs; the user id is overwritten on
// every userConnected event observed.
type Context interface {
	Name() string
	UserID() string
	SetName(name string)
	SetUserID(id string)
}

// Memory is an in-process Context for tests and throwaway sessions.
type Memory struct {
	name   string
	userID string
}

// NewMemory builds a Memory context with an initial name.
func NewMemory(name string) *Memory {
	return &Memory{name: name}
}

func (m *Memory) Name() string        { return m.name }
func (m *Memory) UserID() string      { return m.userID }
func (m *Memory) SetName(name string) { m.name = name }
func (m *Memory) SetUserID(id string) { m.userID = id }

var _ Context = (*Memory)(nil)

// background is used for the persistence writes triggered from the event
// dispatch path; those are fire-and-forget from the caller's view.
var background = context.Background()
