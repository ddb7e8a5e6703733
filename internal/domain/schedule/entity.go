package schedule

import "time"

// Recurrence determines how a rule expands into concrete shift occurrences.
type Recurrence string

const (
	RecurrenceOneTime Recurrence = "one_time"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceCustom  Recurrence = "custom"
)

var RecurrenceValues = []string{
	string(RecurrenceOneTime),
	string(RecurrenceWeekly),
	string(RecurrenceMonthly),
	string(RecurrenceCustom),
}

// Rule is a recurring-shift rule attached to a job. StartTime/EndTime are
// time-of-day strings ("09:00" or "09:00:30"). WorkDays holds weekday tokens
// or named groups (weekday/weekend/daily); when Recurrence is custom the
// occurrence dates come from CustomDates instead of weekday matching.
type Rule struct {
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	StartTime   *string    `json:"start_time,omitempty"`
	EndTime     *string    `json:"end_time,omitempty"`
	Recurrence  Recurrence `json:"recurrence"`
	WorkDays    []string   `json:"work_days,omitempty"`
	CustomDates []string   `json:"custom_dates,omitempty"`
}

// Occurrence is one concrete shift interval derived from a rule.
type Occurrence struct {
	Start time.Time
	End   time.Time
}
