package job

import (
	"time"

	"github.com/workhive-app/workhive-backend-go/internal/domain/location"
	"github.com/workhive-app/workhive-backend-go/internal/domain/schedule"
)

// Job is a read-only view of a job posting. Job CRUD is owned by an external
// collaborator; the scheduling core only needs these fields.
type Job struct {
	ID         string
	BusinessID string
	EmployerID string
	Title      string
	HourlyRate float64
	Location   *location.SiteLocation
	Schedule   *schedule.Rule
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
