package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotStore persists the last good prediction payload for each city.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, city string, payload []byte, fetchedAt time.Time) error
	LoadSnapshots(ctx context.Context) ([]models.PredictionSnapshot, error)
}

type GormSnapshotStore struct {
	db *gorm.DB
}

func NewGormSnapshotStore(db *gorm.DB) *GormSnapshotStore {
	return &GormSnapshotStore{db: db}
}

func (s *GormSnapshotStore) SaveSnapshot(ctx context.Context, city string, payload []byte, fetchedAt time.Time) error {
	snap := models.PredictionSnapshot{
		City:      city,
		Payload:   datatypes.JSON(payload),
		FetchedAt: fetchedAt,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "city"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "fetched_at"}),
	}).Create(&snap).Error
	if err != nil {
		return fmt.Errorf("failed to save snapshot for %s: %w", city, err)
	}
	return nil
}

func (s *GormSnapshotStore) LoadSnapshots(ctx context.Context) ([]models.PredictionSnapshot, error) {
	var snaps []models.PredictionSnapshot
	if err := s.db.WithContext(ctx).Find(&snaps).Error; err != nil {
		return nil, fmt.Errorf("failed to load snapshots: %w", err)
	}
	return snaps, nil
}
