package services

import (
	"context"

	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/repomanager"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// Counter reports record totals.
type Counter interface {
	Counts(ctx context.Context) (repomanager.Counts, error)
}

// CounterFunc adapts a function to Counter.
type CounterFunc func(ctx context.Context) (repomanager.Counts, error)

func (f CounterFunc) Counts(ctx context.Context) (repomanager.Counts, error) { return f(ctx) }

// Status is the liveness of the two backing stores.
type Status struct {
	Redis bool
	DB    bool
}

// StatusService answers health and statistics queries.
type StatusService struct {
	cache   Pinger
	db      Pinger
	counter Counter
}

func NewStatusService(cache, db Pinger, counter Counter) *StatusService {
	return &StatusService{cache: cache, db: db, counter: counter}
}

func (s *StatusService) Status(ctx context.Context) Status {
	return Status{
		Redis: s.cache.Ping(ctx) == nil,
		DB:    s.db.Ping(ctx) == nil,
	}
}

func (s *StatusService) Stats(ctx context.Context) (repomanager.Counts, error) {
	return s.counter.Counts(ctx)
}
