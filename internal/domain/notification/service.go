package notification

import (
	"context"
)

// Service defines the notification trigger interface. Enqueueing never
// blocks; a saturated queue returns ErrQueueFull, which callers are expected
// to log and swallow.
type Service interface {
	// QueueNotification queues a notification for async processing.
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error

	// Stop drains the background workers.
	Stop()
}
