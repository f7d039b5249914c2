package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/models"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/voting"
	"github.com/google/uuid"
)

// MemoryStore keeps reports in process. It is used by tests and local runs
// without a database.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[uuid.UUID]*memoryReport
	now     func() time.Time
}

type memoryReport struct {
	report models.Report
	tally  *voting.Tally
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reports: make(map[uuid.UUID]*memoryReport),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Create(_ context.Context, report *models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = s.now()
	}
	report.NetScore = 0
	report.Votes = nil
	report.FillVoters()

	stored := *report
	s.reports[report.ID] = &memoryReport{report: stored, tally: voting.NewTally(report.AuthorID)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	out := entry.snapshot()
	return &out, nil
}

func (s *MemoryStore) ListByScore(_ context.Context, limit int) ([]models.Report, error) {
	out := s.collect(func(models.Report) bool { return true })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) ListRecent(_ context.Context, since time.Time, minScore int) ([]models.Report, error) {
	return s.collect(func(r models.Report) bool {
		return !r.CreatedAt.Before(since) && r.NetScore >= minScore
	}), nil
}

func (s *MemoryStore) collect(keep func(models.Report) bool) []models.Report {
	s.mu.RLock()
	out := make([]models.Report, 0, len(s.reports))
	for _, entry := range s.reports {
		if r := entry.snapshot(); keep(r) {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].NetScore != out[j].NetScore {
			return out[i].NetScore > out[j].NetScore
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *MemoryStore) Vote(_ context.Context, id uuid.UUID, userID string, dir voting.Direction) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	if _, err := entry.tally.Toggle(userID, dir); err != nil {
		return nil, err
	}
	out := entry.snapshot()
	return &out, nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.reports[id]
	if !ok {
		return ErrReportNotFound
	}
	if entry.report.AuthorID != userID {
		return ErrNotAuthor
	}
	delete(s.reports, id)
	return nil
}

func (e *memoryReport) snapshot() models.Report {
	r := e.report
	r.NetScore = e.tally.NetScore()
	r.Upvoters = e.tally.Upvoters()
	r.Downvoters = e.tally.Downvoters()
	return r
}
