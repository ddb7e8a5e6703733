package shift

import (
	"strings"

	"github.com/workhive-app/workhive-backend-go/internal/domain/location"
	"github.com/workhive-app/workhive-backend-go/internal/pkg/validator"
)

// ========================================
// SHIFT DTOs
// ========================================

// LocationPayload is the wire shape for a worker- or employer-supplied
// location. Input() maps it onto an explicit location input variant.
type LocationPayload struct {
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	Street           *string  `json:"street,omitempty"`
	City             *string  `json:"city,omitempty"`
	State            *string  `json:"state,omitempty"`
	FormattedAddress *string  `json:"formatted_address,omitempty"`
	AllowedRadiusM   int      `json:"allowed_radius_m,omitempty"`
}

// Input converts the payload into a location input variant. The second
// return value is false when the payload carries nothing usable.
func (p *LocationPayload) Input() (location.Input, bool) {
	if p == nil {
		return nil, false
	}

	label := ""
	if p.FormattedAddress != nil {
		label = *p.FormattedAddress
	}

	if p.Latitude != nil && p.Longitude != nil {
		return location.CoordinatePair{
			Latitude:  *p.Latitude,
			Longitude: *p.Longitude,
			Label:     label,
			RadiusM:   p.AllowedRadiusM,
		}, true
	}

	if p.Street != nil || p.City != nil || p.State != nil {
		addr := location.StructuredAddress{RadiusM: p.AllowedRadiusM}
		if p.Street != nil {
			addr.Street = *p.Street
		}
		if p.City != nil {
			addr.City = *p.City
		}
		if p.State != nil {
			addr.State = *p.State
		}
		addr.Latitude = p.Latitude
		addr.Longitude = p.Longitude
		return addr, true
	}

	if !validator.IsEmpty(label) {
		return location.FreeTextLabel{Text: label}, true
	}

	return nil, false
}

func (p *LocationPayload) validate(errs validator.ValidationErrors) validator.ValidationErrors {
	if p == nil {
		return errs
	}
	if (p.Latitude == nil) != (p.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude must be supplied together",
		})
	}
	if p.Latitude != nil && !validator.IsValidLatitude(*p.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be a finite number between -90 and 90",
		})
	}
	if p.Longitude != nil && !validator.IsValidLongitude(*p.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be a finite number between -180 and 180",
		})
	}
	return errs
}

// ScheduleShiftRequest creates a single scheduled shift.
type ScheduleShiftRequest struct {
	WorkerID       string           `json:"worker_id"`
	JobID          string           `json:"job_id"`
	ScheduledStart string           `json:"scheduled_start"` // RFC3339
	ScheduledEnd   string           `json:"scheduled_end"`   // RFC3339
	HourlyRate     *float64         `json:"hourly_rate,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	Location       *LocationPayload `json:"location,omitempty"`
}

func (r *ScheduleShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}
	if validator.IsEmpty(r.JobID) {
		errs = append(errs, validator.ValidationError{
			Field:   "job_id",
			Message: "job_id is required",
		})
	}

	start, startOK := validator.IsValidDateTime(r.ScheduledStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "scheduled_start",
			Message: "scheduled_start must be an ISO8601 timestamp",
		})
	}
	end, endOK := validator.IsValidDateTime(r.ScheduledEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "scheduled_end",
			Message: "scheduled_end must be an ISO8601 timestamp",
		})
	}
	if startOK && endOK && !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "scheduled_end",
			Message: "scheduled_end must be after scheduled_start",
		})
	}

	if r.HourlyRate != nil && (*r.HourlyRate <= 0 || !validator.IsFinite(*r.HourlyRate)) {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate must be a positive number",
		})
	}

	errs = r.Location.validate(errs)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ClockInRequest records the assigned worker starting a shift.
type ClockInRequest struct {
	ID       string           `json:"-"`
	Location *LocationPayload `json:"location,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "shift id is required",
		})
	}
	errs = r.Location.validate(errs)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ClockOutRequest records the assigned worker finishing a shift. An explicit
// hourly_rate overrides the rate resolved at scheduling time.
type ClockOutRequest struct {
	ID         string           `json:"-"`
	HourlyRate *float64         `json:"hourly_rate,omitempty"`
	Location   *LocationPayload `json:"location,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "shift id is required",
		})
	}
	if r.HourlyRate != nil && (*r.HourlyRate <= 0 || !validator.IsFinite(*r.HourlyRate)) {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate must be a positive number",
		})
	}
	errs = r.Location.validate(errs)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CompleteShiftRequest is the employer's mark-complete action for a
// clocked-in shift whose worker never clocked out.
type CompleteShiftRequest struct {
	ID         string   `json:"-"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
}

func (r *CompleteShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "shift id is required",
		})
	}
	if r.HourlyRate != nil && (*r.HourlyRate <= 0 || !validator.IsFinite(*r.HourlyRate)) {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate must be a positive number",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateHoursRequest is the employer's manual hour correction.
type UpdateHoursRequest struct {
	ID         string   `json:"-"`
	TotalHours float64  `json:"total_hours"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
}

func (r *UpdateHoursRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "shift id is required",
		})
	}
	if r.TotalHours < 0 || !validator.IsFinite(r.TotalHours) {
		errs = append(errs, validator.ValidationError{
			Field:   "total_hours",
			Message: "total_hours must be zero or greater",
		})
	}
	if r.HourlyRate != nil && (*r.HourlyRate <= 0 || !validator.IsFinite(*r.HourlyRate)) {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate must be a positive number",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ShiftResponse is the wire shape of a shift record.
type ShiftResponse struct {
	ID         string `json:"id"`
	WorkerID   string `json:"worker_id"`
	EmployerID string `json:"employer_id"`
	JobID      string `json:"job_id"`
	BusinessID string `json:"business_id"`

	ScheduledStart string `json:"scheduled_start"`
	ScheduledEnd   string `json:"scheduled_end"`

	Status     string  `json:"status"`
	ClockInAt  *string `json:"clock_in_at,omitempty"`
	ClockOutAt *string `json:"clock_out_at,omitempty"`
	IsLate     *bool   `json:"is_late,omitempty"`

	HourlyRate float64  `json:"hourly_rate"`
	TotalHours *float64 `json:"total_hours,omitempty"`
	Earnings   *float64 `json:"earnings,omitempty"`

	JobLocation      *location.SiteLocation `json:"job_location,omitempty"`
	ClockInLocation  *location.SiteLocation `json:"clock_in_location,omitempty"`
	ClockOutLocation *location.SiteLocation `json:"clock_out_location,omitempty"`

	LocationValidated         *bool    `json:"location_validated,omitempty"`
	LocationValidationMessage *string  `json:"location_validation_message,omitempty"`
	ClockInDistance           *float64 `json:"clock_in_distance,omitempty"`
	ClockOutDistance          *float64 `json:"clock_out_distance,omitempty"`

	WorkerName string  `json:"worker_name"`
	JobTitle   string  `json:"job_title"`
	Location   string  `json:"location"`
	Notes      *string `json:"notes,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ShiftFilter filters the employer-facing shift list.
type ShiftFilter struct {
	WorkerID   *string `json:"worker_id,omitempty"`
	JobID      *string `json:"job_id,omitempty"`
	BusinessID *string `json:"business_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	Date       *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // scheduled_start, clock_in_at, clock_out_at, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *ShiftFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Limit validation
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	// Status validation
	if f.Status != nil {
		if !validator.IsInSlice(*f.Status, StatusValues) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: scheduled, clocked_in, completed, missed",
			})
		}
	}

	// Date validation
	for field, v := range map[string]*string{"date": f.Date, "start_date": f.StartDate, "end_date": f.EndDate} {
		if v != nil && *v != "" {
			if _, valid := validator.IsValidDate(*v); !valid {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	// Sort validation
	if f.SortBy != "" {
		validSortFields := []string{"scheduled_start", "clock_in_at", "clock_out_at", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: scheduled_start, clock_in_at, clock_out_at, status",
			})
		}
	} else {
		f.SortBy = "scheduled_start" // Default sort
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "asc" // Default ascending (soonest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ListShiftsResponse is a paginated shift list.
type ListShiftsResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Showing    string          `json:"showing"`
	Shifts     []ShiftResponse `json:"shifts"`
}
