package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/workhive-app/workhive-backend-go/internal/domain/business"
	"github.com/workhive-app/workhive-backend-go/internal/pkg/database"
)

type businessRepository struct {
	db *database.DB
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *database.DB) business.BusinessRepository {
	return &businessRepository{db: db}
}

// GetByID implements business.BusinessRepository.
func (r *businessRepository) GetByID(ctx context.Context, id string) (business.Business, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, owner_id, name, location, created_at, updated_at
		FROM businesses
		WHERE id = $1
	`

	var b business.Business
	var locJSON []byte
	err := q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.OwnerID, &b.Name, &locJSON, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return business.Business{}, business.ErrBusinessNotFound
		}
		return business.Business{}, fmt.Errorf("failed to get business: %w", err)
	}

	if b.Location, err = unmarshalSite(locJSON); err != nil {
		return business.Business{}, err
	}

	return b, nil
}
