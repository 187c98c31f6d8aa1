// Package servicerepo reads the laundry service catalogue.
package servicerepo

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/pricing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceDTO is a services row.
type ServiceDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Price     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Unit      string          `gorm:"type:varchar(8);not null;default:'pcs'"`
	IsActive  bool            `gorm:"not null;default:true"`
	CreatedAt time.Time       `gorm:"not null"`
}

func (ServiceDTO) TableName() string {
	return "services"
}

// GormServiceDirectory implements ports.ServiceDirectory.
type GormServiceDirectory struct {
	db *gorm.DB
}

func NewGormServiceDirectory(db *gorm.DB) *GormServiceDirectory {
	return &GormServiceDirectory{db: db}
}

// FindByIDs resolves all ids with a single ANY($1) lookup. Inactive services still
// resolve: an order may reference a service retired after the client loaded its
// catalogue.
func (d *GormServiceDirectory) FindByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]pricing.Quote, error) {
	quotes := make(map[kernel.UUID]pricing.Quote, len(ids))
	if len(ids) == 0 {
		return quotes, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	var dtos []ServiceDTO
	err := d.db.WithContext(ctx).
		Where("id = ANY(?::uuid[])", pq.Array(keys)).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		quotes[id] = pricing.Quote{
			Name:  dto.Name,
			Price: dto.Price,
			Unit:  pricing.Unit(dto.Unit),
		}
	}
	return quotes, nil
}
