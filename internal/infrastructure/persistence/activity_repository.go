package persistence

import (
	"context"

	"github.com/nexbasket/backend/internal/domain/activity"
	"gorm.io/gorm"
)

// GormActivityRepository implements activity.Repository using GORM
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// Save appends an entry to the activity feed
func (r *GormActivityRepository) Save(ctx context.Context, a *activity.Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// FindRecent returns the newest entries first, at most limit of them
func (r *GormActivityRepository) FindRecent(ctx context.Context, limit int) ([]activity.Activity, error) {
	if limit <= 0 {
		limit = 10
	}

	var entries []activity.Activity
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Ensure GormActivityRepository implements activity.Repository
var _ activity.Repository = (*GormActivityRepository)(nil)
