package shift

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/workhive-app/workhive-backend-go/internal/domain/business"
	"github.com/workhive-app/workhive-backend-go/internal/domain/job"
	"github.com/workhive-app/workhive-backend-go/internal/domain/location"
	"github.com/workhive-app/workhive-backend-go/internal/domain/notification"
	"github.com/workhive-app/workhive-backend-go/internal/domain/shift"
	"github.com/workhive-app/workhive-backend-go/internal/domain/worker"
	"github.com/workhive-app/workhive-backend-go/internal/pkg/geo"
)

type shiftServiceImpl struct {
	shiftRepo    shift.ShiftRepository
	jobRepo      job.JobRepository
	workerRepo   worker.WorkerRepository
	businessRepo business.BusinessRepository
	notifier     notification.Service
	now          func() time.Time
}

// NewShiftService creates a shift service. The clock is injected so lateness
// and hour computations are reproducible in tests.
func NewShiftService(
	shiftRepo shift.ShiftRepository,
	jobRepo job.JobRepository,
	workerRepo worker.WorkerRepository,
	businessRepo business.BusinessRepository,
	notifier notification.Service,
	now func() time.Time,
) shift.ShiftService {
	if now == nil {
		now = time.Now
	}
	return &shiftServiceImpl{
		shiftRepo:    shiftRepo,
		jobRepo:      jobRepo,
		workerRepo:   workerRepo,
		businessRepo: businessRepo,
		notifier:     notifier,
		now:          now,
	}
}

func claimString(ctx context.Context, key string) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	value, ok := claims[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%s not found in token", key)
	}
	return value, nil
}

// authorizeClock checks that the caller may act on the record's clock: the
// assigned worker, or an employer of the owning business closing out on the
// worker's behalf.
func authorizeClock(ctx context.Context, record shift.Shift) error {
	role, err := claimString(ctx, "role")
	if err != nil {
		return err
	}
	if role == "worker" {
		workerID, err := claimString(ctx, "worker_id")
		if err != nil {
			return err
		}
		if record.WorkerID != workerID {
			return shift.ErrNotShiftWorker
		}
		return nil
	}
	businessID, err := claimString(ctx, "business_id")
	if err != nil {
		return err
	}
	if record.BusinessID != businessID {
		return shift.ErrNotShiftEmployer
	}
	return nil
}

func (s *shiftServiceImpl) Schedule(ctx context.Context, req shift.ScheduleShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	businessID, err := claimString(ctx, "business_id")
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	jobRecord, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if jobRecord.BusinessID != businessID {
		return shift.ShiftResponse{}, shift.ErrNotShiftEmployer
	}

	workerRecord, err := s.workerRepo.GetByID(ctx, req.WorkerID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	// Validate() already checked the timestamp formats.
	start, _ := time.Parse(time.RFC3339, req.ScheduledStart)
	end, _ := time.Parse(time.RFC3339, req.ScheduledEnd)

	rate := jobRecord.HourlyRate
	if req.HourlyRate != nil {
		rate = *req.HourlyRate
	}

	site, snapshot, err := s.resolveSite(ctx, req.Location, jobRecord)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	now := s.now().UTC()
	record := shift.Shift{
		ID:                 uuid.New().String(),
		WorkerID:           req.WorkerID,
		EmployerID:         jobRecord.EmployerID,
		JobID:              jobRecord.ID,
		BusinessID:         jobRecord.BusinessID,
		ScheduledStart:     start.UTC(),
		ScheduledEnd:       end.UTC(),
		Status:             shift.StatusScheduled,
		HourlyRate:         rate,
		JobLocation:        site,
		WorkerNameSnapshot: workerRecord.DisplayName(),
		JobTitleSnapshot:   jobRecord.Title,
		LocationSnapshot:   snapshot,
		Notes:              req.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := s.shiftRepo.Create(ctx, record)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	s.queueNotification(ctx, notification.CreateNotificationRequest{
		BusinessID:  created.BusinessID,
		RecipientID: created.WorkerID,
		Type:        notification.TypeShiftScheduled,
		Title:       "New shift scheduled",
		Message:     fmt.Sprintf("You have a new shift for %s on %s", created.JobTitleSnapshot, created.ScheduledStart.Format("2006-01-02")),
		Data: map[string]interface{}{
			"shift_id":        created.ID,
			"scheduled_start": created.ScheduledStart.Format(time.RFC3339),
		},
	})

	return toResponse(created), nil
}

func (s *shiftServiceImpl) ClockIn(ctx context.Context, req shift.ClockInRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	record, err := s.shiftRepo.GetByID(ctx, req.ID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if err := authorizeClock(ctx, record); err != nil {
		return shift.ShiftResponse{}, err
	}
	if record.Status == shift.StatusCompleted {
		return shift.ShiftResponse{}, shift.ErrAlreadyClockedOut
	}
	if record.Status != shift.StatusScheduled || record.ClockInAt != nil {
		return shift.ShiftResponse{}, shift.ErrAlreadyClockedIn
	}

	// Records created outside the scheduling path may carry no rate or
	// display snapshots yet; resolve them from the job before the first
	// transition locks them in.
	if record.HourlyRate <= 0 || record.JobTitleSnapshot == "" {
		jobRecord, err := s.jobRepo.GetByID(ctx, record.JobID)
		if err != nil {
			return shift.ShiftResponse{}, err
		}
		if record.HourlyRate <= 0 {
			record.HourlyRate = jobRecord.HourlyRate
		}
		if record.JobTitleSnapshot == "" {
			record.JobTitleSnapshot = jobRecord.Title
		}
		if record.LocationSnapshot == "" && jobRecord.Location != nil {
			record.LocationSnapshot = jobRecord.Location.FormattedAddress
		}
	}

	now := s.now().UTC()
	isLate := now.After(record.ScheduledStart)

	record.Status = shift.StatusClockedIn
	record.ClockInAt = &now
	record.IsLate = &isLate
	record.UpdatedAt = now

	if req.Location != nil && req.Location.Latitude != nil && req.Location.Longitude != nil {
		verdict := geo.ValidateSite(record.JobLocation, *req.Location.Latitude, *req.Location.Longitude)
		record.LocationValidated = &verdict.IsValid
		record.LocationValidationMessage = &verdict.Message
		record.ClockInDistance = verdict.Distance
	}
	if site := normalizePayload(req.Location, record.LocationSnapshot); site != nil {
		record.ClockInLocation = site
	}

	if err := s.shiftRepo.ApplyClockIn(ctx, record); err != nil {
		return shift.ShiftResponse{}, err
	}

	s.queueNotification(ctx, notification.CreateNotificationRequest{
		BusinessID:  record.BusinessID,
		RecipientID: record.EmployerID,
		SenderID:    &record.WorkerID,
		Type:        notification.TypeShiftClockIn,
		Title:       "Worker clocked in",
		Message:     fmt.Sprintf("%s clocked in for %s", record.WorkerNameSnapshot, record.JobTitleSnapshot),
		Data: map[string]interface{}{
			"shift_id":    record.ID,
			"clock_in_at": now.Format(time.RFC3339),
			"is_late":     isLate,
		},
	})

	return toResponse(record), nil
}

func (s *shiftServiceImpl) ClockOut(ctx context.Context, req shift.ClockOutRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	record, err := s.shiftRepo.GetByID(ctx, req.ID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if err := authorizeClock(ctx, record); err != nil {
		return shift.ShiftResponse{}, err
	}
	if record.Status == shift.StatusCompleted || record.ClockOutAt != nil {
		return shift.ShiftResponse{}, shift.ErrAlreadyClockedOut
	}
	if record.Status != shift.StatusClockedIn || record.ClockInAt == nil {
		return shift.ShiftResponse{}, shift.ErrNotClockedIn
	}

	now := s.now().UTC()
	rate := record.HourlyRate
	if req.HourlyRate != nil {
		rate = *req.HourlyRate
	}

	hours := now.Sub(*record.ClockInAt).Hours()
	if hours < 0 {
		hours = 0
	}
	totalHours := round2(hours)
	earnings := round2(totalHours * rate)

	record.Status = shift.StatusCompleted
	record.ClockOutAt = &now
	record.HourlyRate = rate
	record.TotalHours = &totalHours
	record.Earnings = &earnings
	record.UpdatedAt = now

	if req.Location != nil && req.Location.Latitude != nil && req.Location.Longitude != nil {
		verdict := geo.ValidateSite(record.JobLocation, *req.Location.Latitude, *req.Location.Longitude)
		record.LocationValidated = &verdict.IsValid
		record.LocationValidationMessage = &verdict.Message
		record.ClockOutDistance = verdict.Distance
	}
	if site := normalizePayload(req.Location, record.LocationSnapshot); site != nil {
		record.ClockOutLocation = site
	}

	if err := s.shiftRepo.ApplyClockOut(ctx, record); err != nil {
		return shift.ShiftResponse{}, err
	}

	s.queueNotification(ctx, notification.CreateNotificationRequest{
		BusinessID:  record.BusinessID,
		RecipientID: record.EmployerID,
		SenderID:    &record.WorkerID,
		Type:        notification.TypeShiftClockOut,
		Title:       "Worker clocked out",
		Message:     fmt.Sprintf("%s clocked out of %s after %.2f hours", record.WorkerNameSnapshot, record.JobTitleSnapshot, totalHours),
		Data: map[string]interface{}{
			"shift_id":     record.ID,
			"clock_out_at": now.Format(time.RFC3339),
			"total_hours":  totalHours,
			"earnings":     earnings,
		},
	})

	return toResponse(record), nil
}

func (s *shiftServiceImpl) MarkComplete(ctx context.Context, req shift.CompleteShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	businessID, err := claimString(ctx, "business_id")
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	record, err := s.shiftRepo.GetByID(ctx, req.ID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if record.BusinessID != businessID {
		return shift.ShiftResponse{}, shift.ErrNotShiftEmployer
	}
	if record.Status == shift.StatusCompleted || record.ClockOutAt != nil {
		return shift.ShiftResponse{}, shift.ErrAlreadyClockedOut
	}
	if record.Status != shift.StatusClockedIn || record.ClockInAt == nil {
		return shift.ShiftResponse{}, shift.ErrNotClockedIn
	}

	now := s.now().UTC()

	// Close at the scheduled end when it already passed, so a forgotten
	// clock-out does not keep accruing hours. A clock-in recorded after the
	// scheduled end falls back to the current instant instead.
	end := now
	if now.After(record.ScheduledEnd) && record.ScheduledEnd.After(*record.ClockInAt) {
		end = record.ScheduledEnd
	}

	rate := record.HourlyRate
	if req.HourlyRate != nil {
		rate = *req.HourlyRate
	}

	totalHours := round2(end.Sub(*record.ClockInAt).Hours())
	earnings := round2(totalHours * rate)

	record.Status = shift.StatusCompleted
	record.ClockOutAt = &end
	record.HourlyRate = rate
	record.TotalHours = &totalHours
	record.Earnings = &earnings
	record.UpdatedAt = now

	if err := s.shiftRepo.ApplyClockOut(ctx, record); err != nil {
		return shift.ShiftResponse{}, err
	}

	s.queueNotification(ctx, notification.CreateNotificationRequest{
		BusinessID:  record.BusinessID,
		RecipientID: record.WorkerID,
		Type:        notification.TypeShiftClockOut,
		Title:       "Shift marked complete",
		Message:     fmt.Sprintf("Your shift for %s was marked complete", record.JobTitleSnapshot),
		Data: map[string]interface{}{
			"shift_id":    record.ID,
			"total_hours": totalHours,
			"earnings":    earnings,
		},
	})

	return toResponse(record), nil
}

func (s *shiftServiceImpl) UpdateHours(ctx context.Context, req shift.UpdateHoursRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	businessID, err := claimString(ctx, "business_id")
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	record, err := s.shiftRepo.GetByID(ctx, req.ID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if record.BusinessID != businessID {
		return shift.ShiftResponse{}, shift.ErrNotShiftEmployer
	}

	rate := record.HourlyRate
	if req.HourlyRate != nil {
		rate = *req.HourlyRate
	}

	totalHours := round2(req.TotalHours)
	earnings := round2(totalHours * rate)

	record.HourlyRate = rate
	record.TotalHours = &totalHours
	record.Earnings = &earnings
	record.UpdatedAt = s.now().UTC()

	if err := s.shiftRepo.UpdateHours(ctx, record); err != nil {
		return shift.ShiftResponse{}, err
	}

	return toResponse(record), nil
}

func (s *shiftServiceImpl) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	record, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	role, err := claimString(ctx, "role")
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if role == "worker" {
		workerID, err := claimString(ctx, "worker_id")
		if err != nil {
			return shift.ShiftResponse{}, err
		}
		if record.WorkerID != workerID {
			return shift.ShiftResponse{}, shift.ErrNotShiftWorker
		}
	} else {
		businessID, err := claimString(ctx, "business_id")
		if err != nil {
			return shift.ShiftResponse{}, err
		}
		if record.BusinessID != businessID {
			return shift.ShiftResponse{}, shift.ErrNotShiftEmployer
		}
	}

	return toResponse(record), nil
}

func (s *shiftServiceImpl) ListShifts(ctx context.Context, filter shift.ShiftFilter) (shift.ListShiftsResponse, error) {
	if err := filter.Validate(); err != nil {
		return shift.ListShiftsResponse{}, err
	}

	businessID, err := claimString(ctx, "business_id")
	if err != nil {
		return shift.ListShiftsResponse{}, err
	}
	filter.BusinessID = &businessID

	return s.list(ctx, filter)
}

func (s *shiftServiceImpl) GetMyShifts(ctx context.Context, filter shift.ShiftFilter) (shift.ListShiftsResponse, error) {
	if err := filter.Validate(); err != nil {
		return shift.ListShiftsResponse{}, err
	}

	workerID, err := claimString(ctx, "worker_id")
	if err != nil {
		return shift.ListShiftsResponse{}, err
	}
	filter.WorkerID = &workerID

	return s.list(ctx, filter)
}

func (s *shiftServiceImpl) list(ctx context.Context, filter shift.ShiftFilter) (shift.ListShiftsResponse, error) {
	records, total, err := s.shiftRepo.List(ctx, filter)
	if err != nil {
		return shift.ListShiftsResponse{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, len(records))
	for i, r := range records {
		responses[i] = toResponse(r)
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	}

	from, to := 0, 0
	if len(records) > 0 {
		from = (filter.Page-1)*filter.Limit + 1
		to = from + len(records) - 1
	}

	return shift.ListShiftsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    fmt.Sprintf("%d-%d of %d", from, to, total),
		Shifts:     responses,
	}, nil
}

// resolveSite normalizes the request location when present, falling back to
// the job's location and then the business location.
func (s *shiftServiceImpl) resolveSite(ctx context.Context, payload *shift.LocationPayload, jobRecord job.Job) (*location.SiteLocation, string, error) {
	fallbackLabel := ""
	if jobRecord.Location != nil {
		fallbackLabel = jobRecord.Location.FormattedAddress
	}

	if input, ok := payload.Input(); ok {
		site, err := location.Normalize(input, fallbackLabel)
		if err != nil {
			return nil, "", err
		}
		return &site, site.FormattedAddress, nil
	}

	if jobRecord.Location != nil && !jobRecord.Location.IsZero() {
		return jobRecord.Location, jobRecord.Location.FormattedAddress, nil
	}

	biz, err := s.businessRepo.GetByID(ctx, jobRecord.BusinessID)
	if err != nil {
		return nil, "", err
	}
	if biz.Location != nil && !biz.Location.IsZero() {
		snapshot := biz.Location.FormattedAddress
		if snapshot == "" {
			snapshot = biz.Name
		}
		return biz.Location, snapshot, nil
	}
	return nil, biz.Name, nil
}

func normalizePayload(payload *shift.LocationPayload, fallbackLabel string) *location.SiteLocation {
	input, ok := payload.Input()
	if !ok {
		return nil
	}
	site, err := location.Normalize(input, fallbackLabel)
	if err != nil {
		return nil
	}
	return &site
}

func (s *shiftServiceImpl) queueNotification(ctx context.Context, req notification.CreateNotificationRequest) {
	if err := s.notifier.QueueNotification(ctx, req); err != nil {
		slog.Warn("Failed to queue shift notification", "recipient_id", req.RecipientID, "type", req.Type, "error", err)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func toResponse(r shift.Shift) shift.ShiftResponse {
	resp := shift.ShiftResponse{
		ID:         r.ID,
		WorkerID:   r.WorkerID,
		EmployerID: r.EmployerID,
		JobID:      r.JobID,
		BusinessID: r.BusinessID,

		ScheduledStart: r.ScheduledStart.Format(time.RFC3339),
		ScheduledEnd:   r.ScheduledEnd.Format(time.RFC3339),

		Status:     string(r.Status),
		IsLate:     r.IsLate,
		HourlyRate: r.HourlyRate,
		TotalHours: r.TotalHours,
		Earnings:   r.Earnings,

		JobLocation:      r.JobLocation,
		ClockInLocation:  r.ClockInLocation,
		ClockOutLocation: r.ClockOutLocation,

		LocationValidated:         r.LocationValidated,
		LocationValidationMessage: r.LocationValidationMessage,
		ClockInDistance:           r.ClockInDistance,
		ClockOutDistance:          r.ClockOutDistance,

		WorkerName: r.WorkerNameSnapshot,
		JobTitle:   r.JobTitleSnapshot,
		Location:   r.LocationSnapshot,
		Notes:      r.Notes,

		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
	}

	if r.ClockInAt != nil {
		v := r.ClockInAt.Format(time.RFC3339)
		resp.ClockInAt = &v
	}
	if r.ClockOutAt != nil {
		v := r.ClockOutAt.Format(time.RFC3339)
		resp.ClockOutAt = &v
	}

	return resp
}
