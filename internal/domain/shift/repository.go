package shift

import (
	"context"
)

// ShiftRepository defines data access for shift records. Lifecycle
// transitions are conditional updates keyed on the expected current state so
// two racing callers cannot both win.
type ShiftRepository interface {
	// Create inserts a single shift record.
	Create(ctx context.Context, s Shift) (Shift, error)

	// CreateBatch inserts generated occurrences, skipping rows whose
	// (worker_id, job_id, scheduled_start) key already exists. Returns the
	// number of rows actually inserted.
	CreateBatch(ctx context.Context, shifts []Shift) (int, error)

	// GetByID retrieves a shift by ID.
	GetByID(ctx context.Context, id string) (Shift, error)

	// ApplyClockIn persists a clock-in transition. The update only matches a
	// record still in scheduled state with no prior clock-in; ErrAlreadyClockedIn
	// is returned when another caller got there first.
	ApplyClockIn(ctx context.Context, s Shift) error

	// ApplyClockOut persists a clock-out/completion transition. The update only
	// matches a clocked-in record with no prior clock-out.
	ApplyClockOut(ctx context.Context, s Shift) error

	// UpdateHours persists a manual hour/earnings correction without touching
	// status.
	UpdateHours(ctx context.Context, s Shift) error

	// List retrieves shifts with filters and pagination. Date and date-range
	// filters match any shift whose scheduled interval overlaps the window.
	List(ctx context.Context, filter ShiftFilter) ([]Shift, int64, error)
}
