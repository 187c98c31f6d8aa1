// Package sequencerepo hands out per-day business number counters.
package sequencerepo

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// SequenceDTO is a number_sequences row: the last value handed out for a prefix on a
// day.
type SequenceDTO struct {
	Prefix string    `gorm:"type:varchar(8);primaryKey"`
	Day    time.Time `gorm:"type:date;primaryKey"`
	Value  int64     `gorm:"not null"`
}

func (SequenceDTO) TableName() string {
	return "number_sequences"
}

// GormNumberSequence implements ports.NumberSequence with an upsert. The row lock
// taken by ON CONFLICT DO UPDATE serializes concurrent callers for the same prefix and
// day until their transactions end.
type GormNumberSequence struct {
	db *gorm.DB
}

func NewGormNumberSequence(db *gorm.DB) *GormNumberSequence {
	return &GormNumberSequence{db: db}
}

func (s *GormNumberSequence) Next(ctx context.Context, prefix kernel.NumberPrefix, day kernel.Date) (int64, error) {
	if prefix == "" {
		return 0, errs.NewValueIsRequiredError("prefix")
	}
	if err := day.Validate(); err != nil {
		return 0, err
	}

	var value int64
	err := s.db.WithContext(ctx).Raw(`
		INSERT INTO number_sequences (prefix, day, value)
		VALUES (?, ?, 1)
		ON CONFLICT (prefix, day) DO UPDATE SET value = number_sequences.value + 1
		RETURNING value
	`, string(prefix), day.Time()).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}
