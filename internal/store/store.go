// Package store persists community reports and their votes.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/models"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/voting"
	"github.com/google/uuid"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrNotAuthor      = errors.New("only the author can delete this report")
)

// ReportStore is implemented by the Postgres and in-memory stores.
type ReportStore interface {
	Create(ctx context.Context, report *models.Report) error
	Get(ctx context.Context, id uuid.UUID) (*models.Report, error)
	// ListByScore returns reports ordered by net score, highest first.
	ListByScore(ctx context.Context, limit int) ([]models.Report, error)
	// ListRecent returns every report created at or after since with a net
	// score of at least minScore, in ListByScore order.
	ListRecent(ctx context.Context, since time.Time, minScore int) ([]models.Report, error)
	// Vote toggles userID's vote in the requested direction and returns the
	// updated report.
	Vote(ctx context.Context, id uuid.UUID, userID string, dir voting.Direction) (*models.Report, error)
	Delete(ctx context.Context, id uuid.UUID, userID string) error
}
