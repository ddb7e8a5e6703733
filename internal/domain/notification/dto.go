package notification

// CreateNotificationRequest queues one notification for async persistence.
type CreateNotificationRequest struct {
	BusinessID  string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
}
