package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/workhive-app/workhive-backend-go/internal/domain/business"
	"github.com/workhive-app/workhive-backend-go/internal/domain/job"
	"github.com/workhive-app/workhive-backend-go/internal/domain/location"
	"github.com/workhive-app/workhive-backend-go/internal/domain/notification"
	"github.com/workhive-app/workhive-backend-go/internal/domain/schedule"
	"github.com/workhive-app/workhive-backend-go/internal/domain/shift"
	"github.com/workhive-app/workhive-backend-go/internal/domain/worker"
)

type scheduleServiceImpl struct {
	shiftRepo    shift.ShiftRepository
	jobRepo      job.JobRepository
	workerRepo   worker.WorkerRepository
	businessRepo business.BusinessRepository
	notifier     notification.Service
	now          func() time.Time
}

// NewScheduleService creates a schedule service. The clock is injected so
// generation is reproducible in tests.
func NewScheduleService(
	shiftRepo shift.ShiftRepository,
	jobRepo job.JobRepository,
	workerRepo worker.WorkerRepository,
	businessRepo business.BusinessRepository,
	notifier notification.Service,
	now func() time.Time,
) schedule.ScheduleService {
	if now == nil {
		now = time.Now
	}
	return &scheduleServiceImpl{
		shiftRepo:    shiftRepo,
		jobRepo:      jobRepo,
		workerRepo:   workerRepo,
		businessRepo: businessRepo,
		notifier:     notifier,
		now:          now,
	}
}

func (s *scheduleServiceImpl) GenerateForAssignment(ctx context.Context, req schedule.GenerateRequest) (schedule.GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.GenerateResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return schedule.GenerateResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	businessID, ok := claims["business_id"].(string)
	if !ok || businessID == "" {
		return schedule.GenerateResponse{}, fmt.Errorf("business_id not found in token")
	}

	jobRecord, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return schedule.GenerateResponse{}, err
	}
	if jobRecord.BusinessID != businessID {
		return schedule.GenerateResponse{}, shift.ErrNotShiftEmployer
	}
	if jobRecord.Schedule == nil {
		return schedule.GenerateResponse{}, schedule.ErrNoScheduleRule
	}

	workerRecord, err := s.workerRepo.GetByID(ctx, req.WorkerID)
	if err != nil {
		return schedule.GenerateResponse{}, err
	}

	jobLocation, locationSnapshot := s.resolveJobSite(ctx, jobRecord)

	now := s.now().UTC()
	occurrences := GenerateOccurrences(*jobRecord.Schedule, now, req.Limit)
	if len(occurrences) == 0 {
		return schedule.GenerateResponse{}, nil
	}

	shifts := make([]shift.Shift, len(occurrences))
	for i, occ := range occurrences {
		shifts[i] = shift.Shift{
			ID:                 uuid.New().String(),
			WorkerID:           req.WorkerID,
			EmployerID:         jobRecord.EmployerID,
			JobID:              jobRecord.ID,
			BusinessID:         jobRecord.BusinessID,
			ScheduledStart:     occ.Start,
			ScheduledEnd:       occ.End,
			Status:             shift.StatusScheduled,
			HourlyRate:         jobRecord.HourlyRate,
			JobLocation:        jobLocation,
			WorkerNameSnapshot: workerRecord.DisplayName(),
			JobTitleSnapshot:   jobRecord.Title,
			LocationSnapshot:   locationSnapshot,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
	}

	created, err := s.shiftRepo.CreateBatch(ctx, shifts)
	if err != nil {
		return schedule.GenerateResponse{}, fmt.Errorf("failed to create generated shifts: %w", err)
	}

	if created > 0 {
		s.notifyGenerated(ctx, shifts[0], created)
	}

	return schedule.GenerateResponse{
		Planned: len(occurrences),
		Created: created,
		Skipped: len(occurrences) - created,
	}, nil
}

// resolveJobSite picks the geofence site and display label for generated
// shifts: the job's own location first, then the business location.
func (s *scheduleServiceImpl) resolveJobSite(ctx context.Context, jobRecord job.Job) (*location.SiteLocation, string) {
	site := jobRecord.Location
	snapshot := ""
	if site != nil {
		snapshot = site.FormattedAddress
	}

	if site == nil || snapshot == "" {
		biz, err := s.businessRepo.GetByID(ctx, jobRecord.BusinessID)
		if err != nil {
			if !errors.Is(err, business.ErrBusinessNotFound) {
				slog.Warn("Failed to load business for location fallback", "business_id", jobRecord.BusinessID, "error", err)
			}
			return site, snapshot
		}
		if site == nil {
			site = biz.Location
		}
		if snapshot == "" {
			if site != nil && site.FormattedAddress != "" {
				snapshot = site.FormattedAddress
			} else {
				snapshot = biz.Name
			}
		}
	}

	return site, snapshot
}

func (s *scheduleServiceImpl) notifyGenerated(ctx context.Context, first shift.Shift, created int) {
	req := notification.CreateNotificationRequest{
		BusinessID:  first.BusinessID,
		RecipientID: first.WorkerID,
		Type:        notification.TypeShiftScheduled,
		Title:       "New shifts scheduled",
		Message:     fmt.Sprintf("%d shifts were scheduled for %s", created, first.JobTitleSnapshot),
		Data: map[string]interface{}{
			"job_id":      first.JobID,
			"shift_count": created,
			"first_start": first.ScheduledStart.Format(time.RFC3339),
		},
	}
	if err := s.notifier.QueueNotification(ctx, req); err != nil {
		slog.Warn("Failed to queue shift notification", "worker_id", first.WorkerID, "error", err)
	}
}
