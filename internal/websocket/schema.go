package websocket

import "github.com/stemsi/roster-mahasiswa/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError    Event = "error"
	EventSnapshot Event = "snapshot"
	EventPong     Event = "pong"
)

// SnapshotResponse carries the full roster after connect and after every change.
// Cause is empty for the initial snapshot.
type SnapshotResponse struct {
	Event    Event                 `json:"event"`
	Cause    model.RosterEventType `json:"cause,omitempty"`
	Students []model.Student       `json:"students"`
	Stats    model.RosterStats     `json:"stats"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}

// NewSnapshot builds the snapshot message for a roster state.
func NewSnapshot(cause model.RosterEventType, snap model.RosterSnapshot) SnapshotResponse {
	students := snap.Students
	if students == nil {
		students = []model.Student{}
	}
	return SnapshotResponse{
		Event:    EventSnapshot,
		Cause:    cause,
		Students: students,
		Stats:    snap.Stats,
	}
}
