package api

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/lanes/internal/events"
)

// Metrics tracks server statistics using atomic operations for thread-safety
type Metrics struct {
	Requests        atomic.Int64
	ClientErrors    atomic.Int64
	ServerErrors    atomic.Int64
	Moves           atomic.Int64
	MoveFailures    atomic.Int64
	EventsPublished atomic.Int64
	EventFailures   atomic.Int64
	InFlight        atomic.Int32
	StartTime       time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// observeStatus counts a finished request by its status class
func (m *Metrics) observeStatus(status int) {
	m.Requests.Add(1)
	switch {
	case status >= 500:
		m.ServerErrors.Add(1)
	case status >= 400:
		m.ClientErrors.Add(1)
	}
}

// observeMove counts a move attempt
func (m *Metrics) observeMove(err error) {
	if err != nil {
		m.MoveFailures.Add(1)
		return
	}
	m.Moves.Add(1)
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	Requests        int64     `json:"requests"`
	ClientErrors    int64     `json:"client_errors"`
	ServerErrors    int64     `json:"server_errors"`
	Moves           int64     `json:"moves"`
	MoveFailures    int64     `json:"move_failures"`
	EventsPublished int64     `json:"events_published"`
	EventFailures   int64     `json:"event_failures"`
	InFlight        int32     `json:"in_flight"`
	StartTime       time.Time `json:"start_time"`
	Uptime          string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Requests:        m.Requests.Load(),
		ClientErrors:    m.ClientErrors.Load(),
		ServerErrors:    m.ServerErrors.Load(),
		Moves:           m.Moves.Load(),
		MoveFailures:    m.MoveFailures.Load(),
		EventsPublished: m.EventsPublished.Load(),
		EventFailures:   m.EventFailures.Load(),
		InFlight:        m.InFlight.Load(),
		StartTime:       m.StartTime,
		Uptime:          time.Since(m.StartTime).String(),
	}
}

// countingPublisher counts publish outcomes before delegating
type countingPublisher struct {
	next    events.Publisher
	metrics *Metrics
}

// InstrumentPublisher wraps p so every publish is reflected in m
func InstrumentPublisher(p events.Publisher, m *Metrics) events.Publisher {
	return &countingPublisher{next: p, metrics: m}
}

func (c *countingPublisher) Publish(ctx context.Context, e events.Event) error {
	if err := c.next.Publish(ctx, e); err != nil {
		c.metrics.EventFailures.Add(1)
		return err
	}
	c.metrics.EventsPublished.Add(1)
	return nil
}

func (c *countingPublisher) Close() error {
	return c.next.Close()
}
