package report

import (
	"context"

	"github.com/workhive-app/workhive-backend-go/internal/domain/shift"
)

// ReportService derives presentation views from persisted shift records.
type ReportService interface {
	// ManagementReport builds the employer management view for the caller's
	// business, honoring shift list filters.
	ManagementReport(ctx context.Context, filter shift.ShiftFilter) (ManagementReportResponse, error)

	// WorkerSchedule builds the authenticated worker's day-grouped schedule.
	WorkerSchedule(ctx context.Context, filter shift.ShiftFilter) (WorkerScheduleResponse, error)
}
