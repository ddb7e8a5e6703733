package business

import (
	"time"

	"github.com/workhive-app/workhive-backend-go/internal/domain/location"
)

// Business is a read-only view of a business record. Its location is the
// last-resort geofence fallback when a job has none of its own.
type Business struct {
	ID        string
	OwnerID   string
	Name      string
	Location  *location.SiteLocation
	CreatedAt time.Time
	UpdatedAt time.Time
}
