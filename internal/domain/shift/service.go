package shift

import (
	"context"
)

// ShiftService defines business logic for the shift lifecycle.
type ShiftService interface {
	// Schedule creates a single scheduled shift (employer action).
	Schedule(ctx context.Context, req ScheduleShiftRequest) (ShiftResponse, error)

	// ClockIn records the assigned worker starting their shift, with an
	// optional geofence-checked location.
	ClockIn(ctx context.Context, req ClockInRequest) (ShiftResponse, error)

	// ClockOut records the assigned worker finishing their shift and computes
	// worked hours and earnings.
	ClockOut(ctx context.Context, req ClockOutRequest) (ShiftResponse, error)

	// MarkComplete closes a clocked-in shift on the employer's behalf when the
	// worker never clocked out.
	MarkComplete(ctx context.Context, req CompleteShiftRequest) (ShiftResponse, error)

	// UpdateHours is the employer's manual hour correction; earnings are
	// recomputed, status is untouched.
	UpdateHours(ctx context.Context, req UpdateHoursRequest) (ShiftResponse, error)

	// GetShift retrieves a single shift by ID.
	GetShift(ctx context.Context, id string) (ShiftResponse, error)

	// ListShifts retrieves shifts for the caller's business with filters.
	ListShifts(ctx context.Context, filter ShiftFilter) (ListShiftsResponse, error)

	// GetMyShifts retrieves shifts for the authenticated worker.
	GetMyShifts(ctx context.Context, filter ShiftFilter) (ListShiftsResponse, error)
}
