package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
)

const DefaultInterval = 30 * time.Second

// ErrNoData is returned by a FetchFunc when the resource answered but had
// nothing to report yet. The cell is left as it was.
var ErrNoData = errors.New("no data")

type FetchFunc[T any] func(ctx context.Context) (T, error)

type Poller[T any] struct {
	Name     string
	Interval time.Duration
	Fetch    FetchFunc[T]
	Cell     *Cell[T]

	// OnSuccess runs after a fetched value has been applied to the cell.
	OnSuccess func(ctx context.Context, v T, at time.Time)

	Logger *slog.Logger
	Now    func() time.Time

	wg sync.WaitGroup
}

func New[T any](name string, interval time.Duration, fetch FetchFunc[T]) *Poller[T] {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller[T]{
		Name:     name,
		Interval: interval,
		Fetch:    fetch,
		Cell:     NewCell[T](),
		Logger:   slog.Default(),
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run fetches once immediately and then on every tick until ctx is done.
// Each fetch runs in its own goroutine, so a slow request never delays the
// next tick and the last response to arrive wins. Cancelling ctx aborts
// in-flight fetches; Run waits for them before returning.
func (p *Poller[T]) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()
	defer p.wg.Wait()

	p.launch(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.launch(ctx)
		}
	}
}

func (p *Poller[T]) launch(ctx context.Context) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.Tick(ctx)
	}()
}

// Tick performs a single fetch and applies the result.
func (p *Poller[T]) Tick(ctx context.Context) {
	start := p.Now()
	v, err := p.Fetch(ctx)
	switch {
	case errors.Is(err, ErrNoData):
		p.Cell.Empty()
		p.Logger.Debug("poll returned no data", "component", "poller", "resource", p.Name)
		return
	case err != nil && ctx.Err() != nil:
		return
	case err != nil:
		p.Cell.Fail(err)
		p.Logger.Warn("poll failed", "component", "poller", "resource", p.Name, "error", err,
			"latency_ms", float64(p.Now().Sub(start).Milliseconds()))
		sentry.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("resource", p.Name)
			sentry.CaptureException(err)
		})
		return
	}

	at := p.Now()
	if !p.Cell.Set(v, at) {
		return
	}
	if p.OnSuccess != nil {
		p.OnSuccess(ctx, v, at)
	}
}
