package schedule

import (
	"github.com/workhive-app/workhive-backend-go/internal/pkg/validator"
)

// GenerateRequest asks for occurrence generation for a worker/job assignment.
type GenerateRequest struct {
	JobID    string `json:"job_id"`
	WorkerID string `json:"worker_id"`
	Limit    int    `json:"limit,omitempty"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.JobID) {
		errs = append(errs, validator.ValidationError{
			Field:   "job_id",
			Message: "job_id is required",
		})
	}
	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}
	if r.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// GenerateResponse reports how bulk generation went. Skipped counts
// occurrences that already existed for the same worker/job/start key.
type GenerateResponse struct {
	Planned int `json:"planned"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}
