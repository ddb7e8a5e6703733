package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/workhive-app/workhive-backend-go/internal/domain/location"
	"github.com/workhive-app/workhive-backend-go/internal/domain/shift"
	"github.com/workhive-app/workhive-backend-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `
	id, worker_id, employer_id, job_id, business_id,
	scheduled_start, scheduled_end, status,
	clock_in_at, clock_out_at, is_late,
	hourly_rate, total_hours, earnings,
	job_location, clock_in_location, clock_out_location,
	location_validated, location_validation_message,
	clock_in_distance, clock_out_distance,
	worker_name, job_title, location, notes,
	created_at, updated_at`

func marshalSite(site *location.SiteLocation) ([]byte, error) {
	if site == nil {
		return nil, nil
	}
	data, err := json.Marshal(site)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal site location: %w", err)
	}
	return data, nil
}

func unmarshalSite(data []byte) (*location.SiteLocation, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var site location.SiteLocation
	if err := json.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("failed to unmarshal site location: %w", err)
	}
	return &site, nil
}

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	var jobLoc, clockInLoc, clockOutLoc []byte

	err := row.Scan(
		&s.ID, &s.WorkerID, &s.EmployerID, &s.JobID, &s.BusinessID,
		&s.ScheduledStart, &s.ScheduledEnd, &s.Status,
		&s.ClockInAt, &s.ClockOutAt, &s.IsLate,
		&s.HourlyRate, &s.TotalHours, &s.Earnings,
		&jobLoc, &clockInLoc, &clockOutLoc,
		&s.LocationValidated, &s.LocationValidationMessage,
		&s.ClockInDistance, &s.ClockOutDistance,
		&s.WorkerNameSnapshot, &s.JobTitleSnapshot, &s.LocationSnapshot, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return shift.Shift{}, err
	}

	if s.JobLocation, err = unmarshalSite(jobLoc); err != nil {
		return shift.Shift{}, err
	}
	if s.ClockInLocation, err = unmarshalSite(clockInLoc); err != nil {
		return shift.Shift{}, err
	}
	if s.ClockOutLocation, err = unmarshalSite(clockOutLoc); err != nil {
		return shift.Shift{}, err
	}

	return s, nil
}

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	jobLoc, err := marshalSite(s.JobLocation)
	if err != nil {
		return shift.Shift{}, err
	}

	query := `
		INSERT INTO shifts (
			id, worker_id, employer_id, job_id, business_id,
			scheduled_start, scheduled_end, status, hourly_rate,
			job_location, worker_name, job_title, location, notes,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		)
	`

	_, err = q.Exec(ctx, query,
		s.ID, s.WorkerID, s.EmployerID, s.JobID, s.BusinessID,
		s.ScheduledStart, s.ScheduledEnd, string(s.Status), s.HourlyRate,
		jobLoc, s.WorkerNameSnapshot, s.JobTitleSnapshot, s.LocationSnapshot, s.Notes,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return s, nil
}

// batchInsertChunk bounds the parameter count of a single bulk INSERT.
const batchInsertChunk = 200

// CreateBatch implements shift.ShiftRepository. Rows whose
// (worker_id, job_id, scheduled_start) key already exists are skipped, so
// re-running generation never duplicates shifts. Large batches are chunked
// inside one transaction so a failed chunk rolls the whole run back.
func (r *shiftRepository) CreateBatch(ctx context.Context, shifts []shift.Shift) (int, error) {
	if len(shifts) == 0 {
		return 0, nil
	}

	if len(shifts) <= batchInsertChunk {
		return r.insertBatch(ctx, GetQuerier(ctx, r.db), shifts)
	}

	total := 0
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		for start := 0; start < len(shifts); start += batchInsertChunk {
			end := start + batchInsertChunk
			if end > len(shifts) {
				end = len(shifts)
			}
			created, err := r.insertBatch(txCtx, GetQuerier(txCtx, r.db), shifts[start:end])
			if err != nil {
				return err
			}
			total += created
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return total, nil
}

func (r *shiftRepository) insertBatch(ctx context.Context, q database.Querier, shifts []shift.Shift) (int, error) {
	const cols = 16
	valueStrings := make([]string, 0, len(shifts))
	valueArgs := make([]interface{}, 0, len(shifts)*cols)

	for i, s := range shifts {
		jobLoc, err := marshalSite(s.JobLocation)
		if err != nil {
			return 0, err
		}

		base := i * cols
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ", ")+")")
		valueArgs = append(valueArgs,
			s.ID, s.WorkerID, s.EmployerID, s.JobID, s.BusinessID,
			s.ScheduledStart, s.ScheduledEnd, string(s.Status), s.HourlyRate,
			jobLoc, s.WorkerNameSnapshot, s.JobTitleSnapshot, s.LocationSnapshot, s.Notes,
			s.CreatedAt, s.UpdatedAt,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO shifts (
			id, worker_id, employer_id, job_id, business_id,
			scheduled_start, scheduled_end, status, hourly_rate,
			job_location, worker_name, job_title, location, notes,
			created_at, updated_at
		) VALUES %s
		ON CONFLICT (worker_id, job_id, scheduled_start) DO NOTHING
	`, strings.Join(valueStrings, ", "))

	tag, err := q.Exec(ctx, query, valueArgs...)
	if err != nil {
		return 0, fmt.Errorf("failed to batch create shifts: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf("SELECT %s FROM shifts WHERE id = $1", shiftColumns)

	s, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return s, nil
}

// ApplyClockIn implements shift.ShiftRepository. The WHERE clause only
// matches a still-scheduled record, so a racing second clock-in loses.
func (r *shiftRepository) ApplyClockIn(ctx context.Context, s shift.Shift) error {
	q := GetQuerier(ctx, r.db)

	clockInLoc, err := marshalSite(s.ClockInLocation)
	if err != nil {
		return err
	}

	query := `
		UPDATE shifts SET
			status = $1,
			clock_in_at = $2,
			is_late = $3,
			clock_in_location = $4,
			location_validated = $5,
			location_validation_message = $6,
			clock_in_distance = $7,
			hourly_rate = $8,
			job_title = $9,
			location = $10,
			updated_at = $11
		WHERE id = $12
		  AND status = 'scheduled'
		  AND clock_in_at IS NULL
	`

	tag, err := q.Exec(ctx, query,
		string(s.Status), s.ClockInAt, s.IsLate,
		clockInLoc, s.LocationValidated, s.LocationValidationMessage, s.ClockInDistance,
		s.HourlyRate, s.JobTitleSnapshot, s.LocationSnapshot,
		s.UpdatedAt, s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to apply clock-in: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrAlreadyClockedIn
	}

	return nil
}

// ApplyClockOut implements shift.ShiftRepository.
func (r *shiftRepository) ApplyClockOut(ctx context.Context, s shift.Shift) error {
	q := GetQuerier(ctx, r.db)

	clockOutLoc, err := marshalSite(s.ClockOutLocation)
	if err != nil {
		return err
	}

	query := `
		UPDATE shifts SET
			status = $1,
			clock_out_at = $2,
			hourly_rate = $3,
			total_hours = $4,
			earnings = $5,
			clock_out_location = $6,
			location_validated = $7,
			location_validation_message = $8,
			clock_out_distance = $9,
			updated_at = $10
		WHERE id = $11
		  AND status = 'clocked_in'
		  AND clock_out_at IS NULL
	`

	tag, err := q.Exec(ctx, query,
		string(s.Status), s.ClockOutAt, s.HourlyRate, s.TotalHours, s.Earnings,
		clockOutLoc, s.LocationValidated, s.LocationValidationMessage, s.ClockOutDistance,
		s.UpdatedAt, s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to apply clock-out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrAlreadyClockedOut
	}

	return nil
}

// UpdateHours implements shift.ShiftRepository.
func (r *shiftRepository) UpdateHours(ctx context.Context, s shift.Shift) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts SET
			hourly_rate = $1,
			total_hours = $2,
			earnings = $3,
			updated_at = $4
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, s.HourlyRate, s.TotalHours, s.Earnings, s.UpdatedAt, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update shift hours: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// List implements shift.ShiftRepository. Date filters match any shift whose
// scheduled interval overlaps the requested window, not just shifts starting
// inside it.
func (r *shiftRepository) List(ctx context.Context, filter shift.ShiftFilter) ([]shift.Shift, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.WorkerID != nil && *filter.WorkerID != "" {
		conditions = append(conditions, fmt.Sprintf("worker_id = $%d", argIdx))
		args = append(args, *filter.WorkerID)
		argIdx++
	}
	if filter.JobID != nil && *filter.JobID != "" {
		conditions = append(conditions, fmt.Sprintf("job_id = $%d", argIdx))
		args = append(args, *filter.JobID)
		argIdx++
	}
	if filter.BusinessID != nil && *filter.BusinessID != "" {
		conditions = append(conditions, fmt.Sprintf("business_id = $%d", argIdx))
		args = append(args, *filter.BusinessID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Date != nil && *filter.Date != "" {
		day, err := time.Parse("2006-01-02", *filter.Date)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid date filter: %w", err)
		}
		conditions = append(conditions, fmt.Sprintf("scheduled_start < $%d AND scheduled_end > $%d", argIdx, argIdx+1))
		args = append(args, day.AddDate(0, 0, 1), day)
		argIdx += 2
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		from, err := time.Parse("2006-01-02", *filter.StartDate)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid start_date filter: %w", err)
		}
		conditions = append(conditions, fmt.Sprintf("scheduled_end > $%d", argIdx))
		args = append(args, from)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		to, err := time.Parse("2006-01-02", *filter.EndDate)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid end_date filter: %w", err)
		}
		conditions = append(conditions, fmt.Sprintf("scheduled_start < $%d", argIdx))
		args = append(args, to.AddDate(0, 0, 1))
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM shifts WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shifts: %w", err)
	}

	validSortColumns := map[string]string{
		"scheduled_start": "scheduled_start",
		"clock_in_at":     "clock_in_at",
		"clock_out_at":    "clock_out_at",
		"status":          "status",
	}
	sortColumn, ok := validSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "scheduled_start"
	}

	sortOrder := "ASC"
	if strings.ToUpper(filter.SortOrder) == "DESC" {
		sortOrder = "DESC"
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s FROM shifts
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, shiftColumns, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate shifts: %w", err)
	}

	return shifts, total, nil
}
