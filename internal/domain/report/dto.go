package report

// ManagementRow is one per-shift row in the employer management view.
type ManagementRow struct {
	ShiftID      string   `json:"shift_id"`
	WorkerID     string   `json:"worker_id"`
	WorkerName   string   `json:"worker_name"`
	JobTitle     string   `json:"job_title"`
	Date         string   `json:"date"` // YYYY-MM-DD (UTC)
	ClockInTime  *string  `json:"clock_in_time,omitempty"`
	ClockOutTime *string  `json:"clock_out_time,omitempty"`
	Location     string   `json:"location"`
	HourlyRate   float64  `json:"hourly_rate"`
	TotalHours   *float64 `json:"total_hours,omitempty"`
	Earnings     *float64 `json:"earnings,omitempty"`
	Status       string   `json:"status"`
	IsLate       *bool    `json:"is_late,omitempty"`
}

// ManagementSummary aggregates an employer's shift records. Hour and payroll
// sums are rounded to 2 decimals at each accumulation step.
type ManagementSummary struct {
	TotalWorkers    int     `json:"total_workers"`
	CompletedShifts int     `json:"completed_shifts"`
	LateArrivals    int     `json:"late_arrivals"`
	TotalHours      float64 `json:"total_hours"`
	TotalPayroll    float64 `json:"total_payroll"`
}

// ManagementReportResponse is the employer management view.
type ManagementReportResponse struct {
	Rows    []ManagementRow   `json:"rows"`
	Summary ManagementSummary `json:"summary"`
}

// ScheduleEntry is one shift in a worker's day-grouped schedule.
type ScheduleEntry struct {
	ShiftID      string `json:"shift_id"`
	JobTitle     string `json:"job_title"`
	Location     string `json:"location"`
	Start        string `json:"start"`
	End          string `json:"end"`
	Status       string `json:"status"`
	IsPast       bool   `json:"is_past"`
	IsInProgress bool   `json:"is_in_progress"`
	IsUpcoming   bool   `json:"is_upcoming"`
}

// ScheduleDay groups a worker's shifts on one UTC calendar date.
type ScheduleDay struct {
	Date        string          `json:"date"` // YYYY-MM-DD
	TotalShifts int             `json:"total_shifts"`
	TotalHours  float64         `json:"total_hours"`
	Shifts      []ScheduleEntry `json:"shifts"`
}

// WorkerScheduleResponse is the worker's day-grouped schedule view.
type WorkerScheduleResponse struct {
	Days []ScheduleDay `json:"days"`
}
