package notification

import (
	"context"
)

// Repository persists notification rows.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	CreateBatch(ctx context.Context, notifications []*Notification) error
}
