package ports

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/pricing"
)

// ServiceDirectory looks up the catalogue of laundry services.
type ServiceDirectory interface {
	// FindByIDs resolves ids in one round trip. Unknown ids are absent from the result.
	FindByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]pricing.Quote, error)
}
