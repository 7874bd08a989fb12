package model

import "time"

// RosterStats is the summary shown above the list.
type RosterStats struct {
	Total    int `json:"total"`
	Cumlaude int `json:"cumlaude"`
}

// RosterSnapshot is everything the list view needs to render.
type RosterSnapshot struct {
	Students []Student   `json:"students"`
	Stats    RosterStats `json:"stats"`
}

// RosterEventType names the mutation that produced a RosterEvent.
type RosterEventType string

const (
	RosterEventAdded   RosterEventType = "added"
	RosterEventRemoved RosterEventType = "removed"
	RosterEventCleared RosterEventType = "cleared"
)

// RosterEvent is published after every successful mutation.
type RosterEvent struct {
	Type     RosterEventType `json:"type"`
	Snapshot RosterSnapshot  `json:"snapshot"`
	At       time.Time       `json:"at"`
}
