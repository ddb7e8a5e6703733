package shift

import (
	"time"

	"github.com/workhive-app/workhive-backend-go/internal/domain/location"
)

// Status is the shift lifecycle state. Transitions are strict: scheduled →
// clocked_in → completed. Missed is accepted and preserved but only ever set
// by an external no-show process, never by this service.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusClockedIn Status = "clocked_in"
	StatusCompleted Status = "completed"
	StatusMissed    Status = "missed"
)

var StatusValues = []string{
	string(StatusScheduled),
	string(StatusClockedIn),
	string(StatusCompleted),
	string(StatusMissed),
}

// Shift is one concrete scheduled occurrence of a worker working a job.
// The *Snapshot fields are captured at creation so history stays legible if
// the worker, job, or business record changes later.
type Shift struct {
	ID         string
	WorkerID   string
	EmployerID string
	JobID      string
	BusinessID string

	ScheduledStart time.Time
	ScheduledEnd   time.Time

	Status     Status
	ClockInAt  *time.Time
	ClockOutAt *time.Time
	IsLate     *bool

	HourlyRate float64
	TotalHours *float64
	Earnings   *float64

	JobLocation      *location.SiteLocation
	ClockInLocation  *location.SiteLocation
	ClockOutLocation *location.SiteLocation

	LocationValidated         *bool
	LocationValidationMessage *string
	ClockInDistance           *float64
	ClockOutDistance          *float64

	WorkerNameSnapshot string
	JobTitleSnapshot   string
	LocationSnapshot   string

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
