package worker

import "context"

// WorkerRepository is a read-only lookup into the externally owned users table.
type WorkerRepository interface {
	GetByID(ctx context.Context, id string) (Worker, error)
}
