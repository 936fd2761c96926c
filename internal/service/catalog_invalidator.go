package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/course-enrollment-api/pkg/jobs"
)

const (
	catalogKeyPrefix      = "catalog:"
	catalogKeyPattern     = catalogKeyPrefix + "*"
	catalogInvalidateType = "catalog.invalidate"
)

type catalogCache interface {
	Enabled() bool
	MarkStale()
	Invalidate(ctx context.Context, pattern string) error
}

// CatalogInvalidator clears cached section listings after mutations. Work is handed to a
// background queue so requests never wait on Redis.
type CatalogInvalidator struct {
	cache   catalogCache
	queue   *jobs.Queue
	metrics *MetricsService
	logger  *zap.Logger
}

// NewCatalogInvalidator builds the invalidator and its queue. Call Start before serving traffic.
func NewCatalogInvalidator(cache catalogCache, metrics *MetricsService, logger *zap.Logger, cfg jobs.QueueConfig) *CatalogInvalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger
	}
	inv := &CatalogInvalidator{cache: cache, metrics: metrics, logger: logger}
	inv.queue = jobs.NewQueue("catalog-invalidation", inv.handle, cfg)
	return inv
}

// Start launches the queue workers.
func (i *CatalogInvalidator) Start(ctx context.Context) {
	if i == nil {
		return
	}
	i.queue.Start(ctx)
}

// Stop cancels pending invalidations and waits for workers to exit.
func (i *CatalogInvalidator) Stop() {
	if i == nil {
		return
	}
	i.queue.Stop()
}

// Invalidate schedules removal of every catalog:* key. Listings read before this call are
// no longer written back to the cache. It is a no-op without a cache.
func (i *CatalogInvalidator) Invalidate(ctx context.Context) {
	if i == nil || i.cache == nil || !i.cache.Enabled() {
		return
	}
	i.cache.MarkStale()
	job := jobs.Job{ID: uuid.NewString(), Type: catalogInvalidateType, Payload: catalogKeyPattern}
	err := i.queue.TryEnqueue(job)
	switch {
	case err == nil:
		return
	case errors.Is(err, jobs.ErrQueueFull):
		// A queued job will clear the same keys.
		i.logger.Debug("catalog invalidation already pending")
	default:
		i.logger.Warn("catalog invalidation queue unavailable, invalidating inline", zap.Error(err))
		_ = i.handle(ctx, job)
	}
}

func (i *CatalogInvalidator) handle(ctx context.Context, job jobs.Job) error {
	pattern, ok := job.Payload.(string)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", job.Payload, job.Type)
	}
	err := i.cache.Invalidate(ctx, pattern)
	i.metrics.RecordInvalidation(err)
	return err
}
