package model

import "time"

// NotificationKind selects the toast style.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is transient feedback for the user. It never affects roster state.
type Notification struct {
	Kind       NotificationKind `json:"kind"`
	Message    string           `json:"message"`
	DurationMS int64            `json:"duration_ms"`
}

// NewNotification builds a notification shown for d.
func NewNotification(kind NotificationKind, message string, d time.Duration) *Notification {
	return &Notification{Kind: kind, Message: message, DurationMS: d.Milliseconds()}
}
