package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeShiftScheduled NotificationType = "shift_scheduled"
	TypeShiftClockIn   NotificationType = "shift_clock_in"
	TypeShiftClockOut  NotificationType = "shift_clock_out"
)

// Notification represents a queued notification row. Delivery to devices is
// owned by an external collaborator reading these rows.
type Notification struct {
	ID          string
	BusinessID  string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}
