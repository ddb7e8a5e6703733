package business

import "context"

// BusinessRepository is a read-only lookup into the externally owned
// businesses table.
type BusinessRepository interface {
	GetByID(ctx context.Context, id string) (Business, error)
}
