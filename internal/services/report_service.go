package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/identity"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/models"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/realtime"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/session"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/store"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/voting"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

var (
	ErrUnauthenticated = errors.New("sign in to continue")
	ErrValidation      = errors.New("invalid report")
)

// Categories accepted on new reports.
var Categories = []string{"accident", "congestion", "roadwork", "hazard", "event", "other"}

const (
	maxTitleLen       = 120
	maxDescriptionLen = 1000
	maxLocationLen    = 255
	feedLimit         = 100
)

type CreateReportInput struct {
	Title       string
	Description string
	Location    string
	Category    string
}

// RouteQuery selects recent reports relevant to a trip.
type RouteQuery struct {
	Source      string
	Destination string
	Hours       int
	MinScore    int
	Limit       int
}

type ReportService struct {
	store      store.ReportStore
	moderation *ModerationService
	broker     *realtime.Broker[[]models.Report]
	now        func() time.Time

	// publishMu orders list+publish so the newest listing is published last.
	publishMu sync.Mutex
}

func NewReportService(s store.ReportStore, moderation *ModerationService, broker *realtime.Broker[[]models.Report]) *ReportService {
	return &ReportService{
		store:      s,
		moderation: moderation,
		broker:     broker,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func validCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

func (s *ReportService) Create(ctx context.Context, sess session.Session, in CreateReportInput) (*models.Report, error) {
	if !sess.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if in.Category == "" {
		in.Category = "other"
	}

	switch {
	case in.Title == "":
		return nil, validationError("title is required")
	case utf8.RuneCountInString(in.Title) > maxTitleLen:
		return nil, validationError("title must be at most %d characters", maxTitleLen)
	case utf8.RuneCountInString(in.Description) > maxDescriptionLen:
		return nil, validationError("description must be at most %d characters", maxDescriptionLen)
	case in.Location == "":
		return nil, validationError("location is required")
	case utf8.RuneCountInString(in.Location) > maxLocationLen:
		return nil, validationError("location must be at most %d characters", maxLocationLen)
	case !validCategory(in.Category):
		return nil, validationError("category must be one of %s", strings.Join(Categories, ", "))
	}

	if s.moderation != nil {
		err := s.moderation.Screen(map[string]string{
			"title":       in.Title,
			"description": in.Description,
		}, "title", "description")
		if err != nil {
			return nil, err
		}
	}

	report := &models.Report{
		AuthorID:    sess.UserID,
		AuthorName:  identity.DeriveName(sess.UserID),
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Category:    in.Category,
		CreatedAt:   s.now(),
	}
	if err := s.store.Create(ctx, report); err != nil {
		return nil, err
	}

	slog.Info("report created", "component", "reports", "report_id", report.ID.String(), "user_id", sess.UserID)
	s.publish(ctx)
	return report, nil
}

func (s *ReportService) Get(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	return s.store.Get(ctx, id)
}

// List returns the feed ordered by net score, highest first.
func (s *ReportService) List(ctx context.Context, limit int) ([]models.Report, error) {
	if limit <= 0 || limit > feedLimit {
		limit = feedLimit
	}
	return s.store.ListByScore(ctx, limit)
}

func (s *ReportService) ToggleUpvote(ctx context.Context, sess session.Session, id uuid.UUID) (*models.Report, error) {
	return s.vote(ctx, sess, id, voting.Up)
}

func (s *ReportService) ToggleDownvote(ctx context.Context, sess session.Session, id uuid.UUID) (*models.Report, error) {
	return s.vote(ctx, sess, id, voting.Down)
}

func (s *ReportService) vote(ctx context.Context, sess session.Session, id uuid.UUID, dir voting.Direction) (*models.Report, error) {
	if !sess.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	report, err := s.store.Vote(ctx, id, sess.UserID, dir)
	if err != nil {
		return nil, err
	}
	s.publish(ctx)
	return report, nil
}

func (s *ReportService) Delete(ctx context.Context, sess session.Session, id uuid.UUID) error {
	if !sess.IsAuthenticated() {
		return ErrUnauthenticated
	}
	if err := s.store.Delete(ctx, id, sess.UserID); err != nil {
		return err
	}
	slog.Info("report deleted", "component", "reports", "report_id", id.String(), "user_id", sess.UserID)
	s.publish(ctx)
	return nil
}

// ForRoute returns recent reports whose location, title or description
// mention either end of the trip. Reports without a location are kept.
func (s *ReportService) ForRoute(ctx context.Context, q RouteQuery) ([]models.Report, error) {
	if q.Hours <= 0 {
		q.Hours = 24
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}

	cutoff := s.now().Add(-time.Duration(q.Hours) * time.Hour)
	all, err := s.store.ListRecent(ctx, cutoff, q.MinScore)
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	src := fold.String(strings.TrimSpace(q.Source))
	dst := fold.String(strings.TrimSpace(q.Destination))

	mentions := func(text, term string) bool {
		return term != "" && strings.Contains(text, term)
	}

	out := make([]models.Report, 0, q.Limit)
	for _, r := range all {
		loc := fold.String(r.Location)
		title := fold.String(r.Title)
		desc := fold.String(r.Description)

		relevant := loc == "" ||
			mentions(loc, src) || mentions(src, loc) ||
			mentions(loc, dst) || mentions(dst, loc) ||
			mentions(title, src) || mentions(title, dst) ||
			mentions(desc, src) || mentions(desc, dst)
		if src == "" && dst == "" {
			relevant = true
		}
		if relevant {
			out = append(out, r)
		}
		if len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

// Subscribe streams the ordered feed after every change. The current feed
// is delivered first.
func (s *ReportService) Subscribe(ctx context.Context) (<-chan []models.Report, func()) {
	if !s.broker.HasSnapshot() {
		s.publish(ctx)
	}
	return s.broker.Subscribe()
}

// Prime publishes the stored feed so early subscribers see it.
func (s *ReportService) Prime(ctx context.Context) {
	s.publish(ctx)
}

func (s *ReportService) publish(ctx context.Context) {
	if s.broker == nil {
		return
	}
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	reports, err := s.store.ListByScore(ctx, feedLimit)
	if err != nil {
		slog.Error("failed to publish report feed", "component", "reports", "error", err)
		return
	}
	s.broker.Publish(reports)
}
