package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive-app/workhive-backend-go/internal/domain/business"
	"github.com/workhive-app/workhive-backend-go/internal/domain/job"
	"github.com/workhive-app/workhive-backend-go/internal/domain/location"
	"github.com/workhive-app/workhive-backend-go/internal/domain/notification"
	"github.com/workhive-app/workhive-backend-go/internal/domain/schedule"
	"github.com/workhive-app/workhive-backend-go/internal/domain/shift"
	"github.com/workhive-app/workhive-backend-go/internal/domain/worker"
)

type fakeShiftRepo struct {
	shifts map[string]shift.Shift
}

func (r *fakeShiftRepo) Create(_ context.Context, s shift.Shift) (shift.Shift, error) {
	r.shifts[s.ID] = s
	return s, nil
}

func (r *fakeShiftRepo) CreateBatch(_ context.Context, shifts []shift.Shift) (int, error) {
	created := 0
	for _, s := range shifts {
		dup := false
		for _, existing := range r.shifts {
			if existing.WorkerID == s.WorkerID && existing.JobID == s.JobID && existing.ScheduledStart.Equal(s.ScheduledStart) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		r.shifts[s.ID] = s
		created++
	}
	return created, nil
}

func (r *fakeShiftRepo) GetByID(_ context.Context, id string) (shift.Shift, error) {
	s, ok := r.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (r *fakeShiftRepo) ApplyClockIn(_ context.Context, _ shift.Shift) error  { return nil }
func (r *fakeShiftRepo) ApplyClockOut(_ context.Context, _ shift.Shift) error { return nil }
func (r *fakeShiftRepo) UpdateHours(_ context.Context, _ shift.Shift) error   { return nil }
func (r *fakeShiftRepo) List(_ context.Context, _ shift.ShiftFilter) ([]shift.Shift, int64, error) {
	return nil, 0, nil
}

type fakeJobRepo struct{ jobs map[string]job.Job }

func (r *fakeJobRepo) GetByID(_ context.Context, id string) (job.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return job.Job{}, job.ErrJobNotFound
	}
	return j, nil
}

type fakeWorkerRepo struct{ workers map[string]worker.Worker }

func (r *fakeWorkerRepo) GetByID(_ context.Context, id string) (worker.Worker, error) {
	w, ok := r.workers[id]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

type fakeBusinessRepo struct{ businesses map[string]business.Business }

func (r *fakeBusinessRepo) GetByID(_ context.Context, id string) (business.Business, error) {
	b, ok := r.businesses[id]
	if !ok {
		return business.Business{}, business.ErrBusinessNotFound
	}
	return b, nil
}

type fakeNotifier struct {
	queued []notification.CreateNotificationRequest
}

func (n *fakeNotifier) QueueNotification(_ context.Context, req notification.CreateNotificationRequest) error {
	n.queued = append(n.queued, req)
	return nil
}

func (n *fakeNotifier) Stop() {}

func employerContext(t *testing.T, businessID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{"business_id": businessID, "role": "employer"})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func weeklyRule() *schedule.Rule {
	startTime := "09:00"
	endTime := "17:00"
	end := time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)
	return &schedule.Rule{
		StartDate:  time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), // Monday
		EndDate:    &end,
		StartTime:  &startTime,
		EndTime:    &endTime,
		Recurrence: schedule.RecurrenceWeekly,
		WorkDays:   []string{"weekday"},
	}
}

func newGenerationFixture(rule *schedule.Rule) (schedule.ScheduleService, *fakeShiftRepo, *fakeNotifier) {
	lat, lon := 40.7128, -74.006
	shiftRepo := &fakeShiftRepo{shifts: make(map[string]shift.Shift)}
	jobRepo := &fakeJobRepo{jobs: map[string]job.Job{
		"job-1": {
			ID:         "job-1",
			BusinessID: "biz-1",
			EmployerID: "emp-1",
			Title:      "Barista",
			HourlyRate: 18.50,
			Schedule:   rule,
			Location: &location.SiteLocation{
				Latitude: &lat, Longitude: &lon,
				FormattedAddress: "123 Hudson St, New York, NY",
				AllowedRadiusM:   150,
			},
		},
	}}
	workerRepo := &fakeWorkerRepo{workers: map[string]worker.Worker{
		"wrk-1": {ID: "wrk-1", FirstName: "Ava", LastName: "Chen"},
	}}
	businessRepo := &fakeBusinessRepo{businesses: map[string]business.Business{
		"biz-1": {ID: "biz-1", Name: "Hudson Coffee"},
	}}
	notifier := &fakeNotifier{}

	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	svc := NewScheduleService(shiftRepo, jobRepo, workerRepo, businessRepo, notifier, func() time.Time { return now })
	return svc, shiftRepo, notifier
}

func TestGenerateForAssignment_CreatesShifts(t *testing.T) {
	svc, shiftRepo, notifier := newGenerationFixture(weeklyRule())
	ctx := employerContext(t, "biz-1")

	resp, err := svc.GenerateForAssignment(ctx, schedule.GenerateRequest{JobID: "job-1", WorkerID: "wrk-1"})

	require.NoError(t, err)
	assert.Equal(t, 5, resp.Planned)
	assert.Equal(t, 5, resp.Created)
	assert.Equal(t, 0, resp.Skipped)

	require.Len(t, shiftRepo.shifts, 5)
	for _, s := range shiftRepo.shifts {
		assert.Equal(t, shift.StatusScheduled, s.Status)
		assert.Equal(t, 18.50, s.HourlyRate)
		assert.Equal(t, "Ava Chen", s.WorkerNameSnapshot)
		assert.Equal(t, "Barista", s.JobTitleSnapshot)
		assert.Equal(t, "123 Hudson St, New York, NY", s.LocationSnapshot)
		assert.Equal(t, 8*time.Hour, s.ScheduledEnd.Sub(s.ScheduledStart))
	}

	require.Len(t, notifier.queued, 1)
	assert.Equal(t, notification.TypeShiftScheduled, notifier.queued[0].Type)
	assert.Equal(t, "wrk-1", notifier.queued[0].RecipientID)
}

func TestGenerateForAssignment_Rerun(t *testing.T) {
	svc, _, _ := newGenerationFixture(weeklyRule())
	ctx := employerContext(t, "biz-1")

	first, err := svc.GenerateForAssignment(ctx, schedule.GenerateRequest{JobID: "job-1", WorkerID: "wrk-1"})
	require.NoError(t, err)
	require.Equal(t, 5, first.Created)

	second, err := svc.GenerateForAssignment(ctx, schedule.GenerateRequest{JobID: "job-1", WorkerID: "wrk-1"})
	require.NoError(t, err)
	assert.Equal(t, 5, second.Planned)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 5, second.Skipped)
}

func TestGenerateForAssignment_NoScheduleRule(t *testing.T) {
	svc, _, _ := newGenerationFixture(nil)
	ctx := employerContext(t, "biz-1")

	_, err := svc.GenerateForAssignment(ctx, schedule.GenerateRequest{JobID: "job-1", WorkerID: "wrk-1"})

	assert.ErrorIs(t, err, schedule.ErrNoScheduleRule)
}

func TestGenerateForAssignment_WrongBusiness(t *testing.T) {
	svc, _, _ := newGenerationFixture(weeklyRule())
	ctx := employerContext(t, "biz-other")

	_, err := svc.GenerateForAssignment(ctx, schedule.GenerateRequest{JobID: "job-1", WorkerID: "wrk-1"})

	assert.ErrorIs(t, err, shift.ErrNotShiftEmployer)
}

func TestGenerateForAssignment_UnknownJob(t *testing.T) {
	svc, _, _ := newGenerationFixture(weeklyRule())
	ctx := employerContext(t, "biz-1")

	_, err := svc.GenerateForAssignment(ctx, schedule.GenerateRequest{JobID: "job-missing", WorkerID: "wrk-1"})

	assert.ErrorIs(t, err, job.ErrJobNotFound)
}

func TestGenerateForAssignment_ValidationErrors(t *testing.T) {
	svc, _, _ := newGenerationFixture(weeklyRule())
	ctx := employerContext(t, "biz-1")

	_, err := svc.GenerateForAssignment(ctx, schedule.GenerateRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "job_id")
}
