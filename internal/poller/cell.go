// Package poller keeps remote resources fresh by re-fetching them on a fixed
// interval and publishing the latest value through a Cell.
package poller

import (
	"sync"
	"time"
)

// Snapshot is a point-in-time read of a Cell.
type Snapshot[T any] struct {
	Value     T         `json:"value"`
	HasValue  bool      `json:"has_value"`
	Loading   bool      `json:"loading"`
	UpdatedAt time.Time `json:"updated_at"`
	LastError string    `json:"last_error,omitempty"`
}

// Cell holds the current value of one polled resource. Only the owning
// Poller writes to it; any number of readers may call Get.
type Cell[T any] struct {
	mu        sync.RWMutex
	value     T
	hasValue  bool
	loading   bool
	updatedAt time.Time
	lastErr   error
}

func NewCell[T any]() *Cell[T] {
	return &Cell[T]{loading: true}
}

func (c *Cell[T]) Get() Snapshot[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := Snapshot[T]{
		Value:     c.value,
		HasValue:  c.hasValue,
		Loading:   c.loading,
		UpdatedAt: c.updatedAt,
	}
	if c.lastErr != nil {
		s.LastError = c.lastErr.Error()
	}
	return s
}

// Set replaces the value wholesale. A write stamped earlier than the current
// value is ignored so UpdatedAt never moves backwards. Set reports whether
// the value was applied.
func (c *Cell[T]) Set(v T, at time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if c.hasValue && at.Before(c.updatedAt) {
		return false
	}
	c.value = v
	c.hasValue = true
	c.updatedAt = at
	c.lastErr = nil
	return true
}

// Fail records a failed attempt and keeps the previous value.
func (c *Cell[T]) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.lastErr = err
}

// Empty records an attempt that returned no data. The previous value stays.
func (c *Cell[T]) Empty() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
}
