package response

import (
	"errors"
	"net/http"

	"github.com/workhive-app/workhive-backend-go/internal/domain/business"
	"github.com/workhive-app/workhive-backend-go/internal/domain/job"
	"github.com/workhive-app/workhive-backend-go/internal/domain/schedule"
	"github.com/workhive-app/workhive-backend-go/internal/domain/shift"
	"github.com/workhive-app/workhive-backend-go/internal/domain/worker"
	"github.com/workhive-app/workhive-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrAlreadyClockedIn):
		Conflict(w, "Shift is already clocked in")
	case errors.Is(err, shift.ErrAlreadyClockedOut):
		Conflict(w, "Shift is already clocked out")
	case errors.Is(err, shift.ErrNotClockedIn):
		BadRequest(w, "Shift has not been clocked in", nil)
	case errors.Is(err, shift.ErrNotShiftWorker):
		Forbidden(w, "Only the assigned worker can perform this action")
	case errors.Is(err, shift.ErrNotShiftEmployer):
		Forbidden(w, "Only the owning employer can perform this action")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrNoScheduleRule):
		BadRequest(w, "Job has no schedule rule to generate from", nil)
	case errors.Is(err, schedule.ErrInvalidRecurrence):
		BadRequest(w, "Invalid recurrence type", nil)

	// Collaborator lookups
	case errors.Is(err, job.ErrJobNotFound):
		NotFound(w, "Job not found")
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, business.ErrBusinessNotFound):
		NotFound(w, "Business not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
