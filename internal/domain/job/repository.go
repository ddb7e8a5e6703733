package job

import "context"

// JobRepository is a read-only lookup into the externally owned jobs table.
type JobRepository interface {
	GetByID(ctx context.Context, id string) (Job, error)
}
