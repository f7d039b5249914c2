package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/models"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/voting"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, report *models.Report) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	report.NetScore = 0
	report.Votes = nil
	if err := s.db.WithContext(ctx).Omit("Votes").Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	report.FillVoters()
	return nil
}

func (s *GormStore) Get(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	return s.load(s.db.WithContext(ctx), id)
}

func (s *GormStore) ListByScore(ctx context.Context, limit int) ([]models.Report, error) {
	query := s.db.WithContext(ctx)
	if limit > 0 {
		query = query.Limit(limit)
	}
	return s.find(query)
}

func (s *GormStore) ListRecent(ctx context.Context, since time.Time, minScore int) ([]models.Report, error) {
	return s.find(s.db.WithContext(ctx).
		Where("created_at >= ? AND net_score >= ?", since, minScore))
}

func (s *GormStore) find(query *gorm.DB) ([]models.Report, error) {
	var reports []models.Report
	err := query.
		Preload("Votes").
		Order("net_score DESC").
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	for i := range reports {
		reports[i].FillVoters()
	}
	return reports, nil
}

// Vote locks the report row so concurrent toggles on the same report are
// serialised, then writes the vote row and applies the score delta as an
// in-database increment.
func (s *GormStore) Vote(ctx context.Context, id uuid.UUID, userID string, dir voting.Direction) (*models.Report, error) {
	if userID == "" {
		return nil, voting.ErrMissingVoter
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&report, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReportNotFound
			}
			return err
		}
		if report.AuthorID == userID {
			return voting.ErrSelfVote
		}

		var existing models.ReportVote
		current := voting.None
		err := tx.Where("report_id = ? AND user_id = ?", id, userID).First(&existing).Error
		switch {
		case err == nil:
			current = existing.Direction
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		tr, err := voting.Toggle(current, dir)
		if err != nil {
			return err
		}

		switch {
		case tr.Next == voting.None:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		case current == voting.None:
			vote := models.ReportVote{
				ID:        uuid.New(),
				ReportID:  id,
				UserID:    userID,
				Direction: tr.Next,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
		default:
			if err := tx.Model(&existing).Update("direction", tr.Next).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Report{}).
			Where("id = ?", id).
			Update("net_score", gorm.Expr("net_score + ?", tr.Delta)).Error
	})
	if err != nil {
		return nil, err
	}
	return s.load(s.db.WithContext(ctx), id)
}

func (s *GormStore) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.First(&report, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReportNotFound
			}
			return err
		}
		if report.AuthorID != userID {
			return ErrNotAuthor
		}
		if err := tx.Where("report_id = ?", id).Delete(&models.ReportVote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&report).Error
	})
}

func (s *GormStore) load(db *gorm.DB, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := db.Preload("Votes").First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	report.FillVoters()
	return &report, nil
}
