package schedule

import "context"

// ScheduleService expands a job's recurrence rule into persisted scheduled
// shifts for an assigned worker.
type ScheduleService interface {
	// GenerateForAssignment expands the job's schedule rule and bulk-inserts
	// scheduled shifts, skipping occurrences that already exist.
	GenerateForAssignment(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
}
