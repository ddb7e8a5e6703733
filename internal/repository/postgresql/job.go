package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/workhive-app/workhive-backend-go/internal/domain/job"
	"github.com/workhive-app/workhive-backend-go/internal/domain/schedule"
	"github.com/workhive-app/workhive-backend-go/internal/pkg/database"
)

type jobRepository struct {
	db *database.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *database.DB) job.JobRepository {
	return &jobRepository{db: db}
}

// GetByID implements job.JobRepository.
func (r *jobRepository) GetByID(ctx context.Context, id string) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, business_id, employer_id, title, hourly_rate,
			   location, schedule, created_at, updated_at
		FROM jobs
		WHERE id = $1
	`

	var j job.Job
	var locJSON, schedJSON []byte
	err := q.QueryRow(ctx, query, id).Scan(
		&j.ID, &j.BusinessID, &j.EmployerID, &j.Title, &j.HourlyRate,
		&locJSON, &schedJSON, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("failed to get job: %w", err)
	}

	if j.Location, err = unmarshalSite(locJSON); err != nil {
		return job.Job{}, err
	}
	if len(schedJSON) > 0 {
		var rule schedule.Rule
		if err := json.Unmarshal(schedJSON, &rule); err != nil {
			return job.Job{}, fmt.Errorf("failed to unmarshal job schedule: %w", err)
		}
		j.Schedule = &rule
	}

	return j, nil
}
