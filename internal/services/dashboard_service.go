package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/alerts"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/poller"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/store"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/traffic"
	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/upstream"
)

var ErrCityNotTracked = errors.New("city is not tracked")

// PredictionSource is the part of the upstream client the dashboard polls.
type PredictionSource interface {
	Predict(ctx context.Context, city string) (*upstream.Prediction, error)
	Locations(ctx context.Context) ([]string, error)
}

// TrendPoint is one forecast hour as charted on the dashboard.
type TrendPoint struct {
	Hour       int             `json:"hour"`
	Time       string          `json:"time"`
	Step       json.RawMessage `json:"step,omitempty"`
	Level      string          `json:"level"`
	Percent    int             `json:"percent"`
	Speed      int             `json:"speed"`
	Bottleneck bool            `json:"bottleneck"`
}

type Dashboard struct {
	City       string                                `json:"city"`
	Prediction poller.Snapshot[*upstream.Prediction] `json:"prediction"`
	Trend      []TrendPoint                          `json:"trend"`
}

type AlertFeed struct {
	City          string         `json:"city"`
	Window        alerts.Window  `json:"window"`
	Notifications []alerts.View  `json:"notifications"`
	Summary       alerts.Summary `json:"summary"`
	Loading       bool           `json:"loading"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// DashboardService owns one prediction poller per tracked city plus the
// locations poller, and serves reads from their cells.
type DashboardService struct {
	source      PredictionSource
	snapshots   store.SnapshotStore
	predictions map[string]*poller.Poller[*upstream.Prediction]
	locations   *poller.Poller[[]string]
	cities      []string
}

func NewDashboardService(source PredictionSource, snapshots store.SnapshotStore, cities []string, interval time.Duration) *DashboardService {
	s := &DashboardService{
		source:      source,
		snapshots:   snapshots,
		predictions: make(map[string]*poller.Poller[*upstream.Prediction], len(cities)),
		cities:      cities,
	}

	for _, city := range cities {
		p := poller.New("predict:"+city, interval, func(ctx context.Context) (*upstream.Prediction, error) {
			pred, err := source.Predict(ctx, city)
			if err != nil {
				return nil, err
			}
			if pred == nil || pred.Empty() {
				return nil, poller.ErrNoData
			}
			return pred, nil
		})
		p.OnSuccess = func(ctx context.Context, pred *upstream.Prediction, at time.Time) {
			s.persist(ctx, city, pred, at)
		}
		s.predictions[city] = p
	}

	s.locations = poller.New("locations", interval, func(ctx context.Context) ([]string, error) {
		locs, err := source.Locations(ctx)
		if err != nil {
			return nil, err
		}
		if len(locs) == 0 {
			return nil, poller.ErrNoData
		}
		return locs, nil
	})
	return s
}

// Runners returns every poller for the caller to run.
func (s *DashboardService) Runners() []poller.Runner {
	out := make([]poller.Runner, 0, len(s.predictions)+1)
	for _, city := range s.cities {
		out = append(out, s.predictions[city])
	}
	return append(out, s.locations)
}

// Warm seeds the prediction cells from persisted snapshots. Snapshots for
// cities no longer tracked are ignored.
func (s *DashboardService) Warm(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	snaps, err := s.snapshots.LoadSnapshots(ctx)
	if err != nil {
		return err
	}
	for _, snap := range snaps {
		p, ok := s.predictions[snap.City]
		if !ok {
			continue
		}
		var pred upstream.Prediction
		if err := json.Unmarshal(snap.Payload, &pred); err != nil {
			slog.Warn("skipping unreadable prediction snapshot", "component", "dashboard", "city", snap.City, "error", err)
			continue
		}
		p.Cell.Set(&pred, snap.FetchedAt)
	}
	return nil
}

func (s *DashboardService) persist(ctx context.Context, city string, pred *upstream.Prediction, at time.Time) {
	if s.snapshots == nil {
		return
	}
	payload, err := json.Marshal(pred)
	if err != nil {
		slog.Error("failed to encode prediction snapshot", "component", "dashboard", "city", city, "error", err)
		return
	}
	if err := s.snapshots.SaveSnapshot(ctx, city, payload, at); err != nil {
		slog.Error("failed to persist prediction snapshot", "component", "dashboard", "city", city, "error", err)
	}
}

func (s *DashboardService) prediction(city string) (poller.Snapshot[*upstream.Prediction], error) {
	p, ok := s.predictions[city]
	if !ok {
		return poller.Snapshot[*upstream.Prediction]{}, fmt.Errorf("%w: %s", ErrCityNotTracked, city)
	}
	return p.Cell.Get(), nil
}

func (s *DashboardService) Dashboard(city string) (*Dashboard, error) {
	snap, err := s.prediction(city)
	if err != nil {
		return nil, err
	}
	d := &Dashboard{City: city, Prediction: snap, Trend: []TrendPoint{}}
	if snap.Value != nil {
		d.Trend = Trend(snap.Value.Forecast)
	}
	return d, nil
}

// Trend converts forecast points into chart points.
func Trend(forecast []upstream.ForecastPoint) []TrendPoint {
	out := make([]TrendPoint, 0, len(forecast))
	for _, f := range forecast {
		out = append(out, TrendPoint{
			Hour:       f.Hour,
			Time:       fmt.Sprintf("%d:00", f.Hour),
			Step:       f.Step,
			Level:      f.CongestionLevel,
			Percent:    traffic.CongestionPercent(f.CongestionLevel),
			Speed:      traffic.SpeedEstimate(f.CongestionLevel),
			Bottleneck: f.IsBottleneck,
		})
	}
	return out
}

func (s *DashboardService) Alerts(city string, window alerts.Window, now time.Time) (*AlertFeed, error) {
	snap, err := s.prediction(city)
	if err != nil {
		return nil, err
	}
	feed := &AlertFeed{
		City:          city,
		Window:        window,
		Notifications: []alerts.View{},
		Loading:       snap.Loading,
		UpdatedAt:     snap.UpdatedAt,
	}
	if snap.Value == nil {
		return feed, nil
	}
	merged := alerts.Merge(snap.Value.Alerts, snap.Value.Context.Events.Details.Events)
	filtered := alerts.FilterWindow(merged, window, now)
	feed.Notifications = alerts.Views(filtered)
	feed.Summary = alerts.Summarize(filtered)
	return feed, nil
}

func (s *DashboardService) Locations() poller.Snapshot[[]string] {
	return s.locations.Cell.Get()
}

func (s *DashboardService) Cities() []string {
	return s.cities
}
