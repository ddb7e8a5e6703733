package worker

import "time"

// Worker is a read-only view of a worker/user record.
type Worker struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName returns the name used for display snapshots.
func (w Worker) DisplayName() string {
	if w.FirstName == "" {
		return w.LastName
	}
	if w.LastName == "" {
		return w.FirstName
	}
	return w.FirstName + " " + w.LastName
}
