package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workhive-app/workhive-backend-go/internal/domain/report"
	"github.com/workhive-app/workhive-backend-go/internal/domain/shift"
)

type reportServiceImpl struct {
	shiftRepo shift.ShiftRepository
	now       func() time.Time
}

// NewReportService creates a report service over persisted shift records.
func NewReportService(shiftRepo shift.ShiftRepository, now func() time.Time) report.ReportService {
	if now == nil {
		now = time.Now
	}
	return &reportServiceImpl{shiftRepo: shiftRepo, now: now}
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

func (s *reportServiceImpl) ManagementReport(ctx context.Context, filter shift.ShiftFilter) (report.ManagementReportResponse, error) {
	if err := filter.Validate(); err != nil {
		return report.ManagementReportResponse{}, err
	}

	businessID, err := claimString(ctx, "business_id")
	if err != nil {
		return report.ManagementReportResponse{}, err
	}
	filter.BusinessID = &businessID

	records, _, err := s.shiftRepo.List(ctx, filter)
	if err != nil {
		return report.ManagementReportResponse{}, fmt.Errorf("failed to list shifts for report: %w", err)
	}

	rows := make([]report.ManagementRow, 0, len(records))
	summary := report.ManagementSummary{}
	workers := make(map[string]struct{})

	for _, rec := range records {
		row := report.ManagementRow{
			ShiftID:    rec.ID,
			WorkerID:   rec.WorkerID,
			WorkerName: rec.WorkerNameSnapshot,
			JobTitle:   rec.JobTitleSnapshot,
			Date:       rec.ScheduledStart.UTC().Format("2006-01-02"),
			Location:   rec.LocationSnapshot,
			HourlyRate: rec.HourlyRate,
			TotalHours: rec.TotalHours,
			Earnings:   rec.Earnings,
			Status:     string(rec.Status),
			IsLate:     rec.IsLate,
		}
		if rec.ClockInAt != nil {
			v := rec.ClockInAt.UTC().Format(time.RFC3339)
			row.ClockInTime = &v
		}
		if rec.ClockOutAt != nil {
			v := rec.ClockOutAt.UTC().Format(time.RFC3339)
			row.ClockOutTime = &v
		}
		rows = append(rows, row)

		workers[rec.WorkerID] = struct{}{}
		if rec.Status == shift.StatusCompleted {
			summary.CompletedShifts++
		}
		if rec.IsLate != nil && *rec.IsLate {
			summary.LateArrivals++
		}
		// Sums are rounded at each step so the totals match what a
		// row-by-row reader would compute by hand.
		if rec.TotalHours != nil {
			summary.TotalHours = round2(summary.TotalHours + *rec.TotalHours)
		}
		if rec.Earnings != nil {
			summary.TotalPayroll = round2(summary.TotalPayroll + *rec.Earnings)
		}
	}
	summary.TotalWorkers = len(workers)

	return report.ManagementReportResponse{Rows: rows, Summary: summary}, nil
}

func (s *reportServiceImpl) WorkerSchedule(ctx context.Context, filter shift.ShiftFilter) (report.WorkerScheduleResponse, error) {
	if err := filter.Validate(); err != nil {
		return report.WorkerScheduleResponse{}, err
	}

	workerID, err := claimString(ctx, "worker_id")
	if err != nil {
		return report.WorkerScheduleResponse{}, err
	}
	filter.WorkerID = &workerID

	records, _, err := s.shiftRepo.List(ctx, filter)
	if err != nil {
		return report.WorkerScheduleResponse{}, fmt.Errorf("failed to list shifts for schedule: %w", err)
	}

	now := s.now().UTC()
	byDate := make(map[string]*report.ScheduleDay)

	for _, rec := range records {
		start := rec.ScheduledStart.UTC()
		end := rec.ScheduledEnd.UTC()
		date := start.Format("2006-01-02")

		day, ok := byDate[date]
		if !ok {
			day = &report.ScheduleDay{Date: date}
			byDate[date] = day
		}

		entry := report.ScheduleEntry{
			ShiftID:      rec.ID,
			JobTitle:     rec.JobTitleSnapshot,
			Location:     rec.LocationSnapshot,
			Start:        start.Format(time.RFC3339),
			End:          end.Format(time.RFC3339),
			Status:       string(rec.Status),
			IsPast:       !end.After(now),
			IsInProgress: !start.After(now) && end.After(now),
			IsUpcoming:   start.After(now),
		}

		day.Shifts = append(day.Shifts, entry)
		day.TotalShifts++
		day.TotalHours = round2(day.TotalHours + round2(end.Sub(start).Hours()))
	}

	days := make([]report.ScheduleDay, 0, len(byDate))
	for _, day := range byDate {
		sort.Slice(day.Shifts, func(i, j int) bool { return day.Shifts[i].Start < day.Shifts[j].Start })
		days = append(days, *day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	return report.WorkerScheduleResponse{Days: days}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
