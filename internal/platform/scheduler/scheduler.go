package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	portssvc "github.com/temidayo/currency-exchange-service/internal/core/ports/services"
	"github.com/temidayo/currency-exchange-service/internal/middleware"
	"github.com/temidayo/currency-exchange-service/internal/platform/config"
	"github.com/temidayo/currency-exchange-service/internal/platform/metrics"
)

// IngestionScheduler runs ingestion cycles at a fixed cadence with
// exponential backoff inside each cycle. Cycles never overlap: if one is
// still running when the next tick fires, the tick is skipped.
type IngestionScheduler struct {
	interval     time.Duration
	fetchTimeout time.Duration
	baseDelay    time.Duration
	maxDelay     time.Duration
	maxAttempts  int
	ingestionSvc portssvc.IngestionSvcFacade
	metrics      *metrics.ExchangeMetrics
	logger       *slog.Logger
	mu           sync.Mutex
}

// NewIngestionScheduler creates a new IngestionScheduler from config.
func NewIngestionScheduler(cfg *config.Config, ingestionSvc portssvc.IngestionSvcFacade, m *metrics.ExchangeMetrics, logger *slog.Logger) *IngestionScheduler {
	return &IngestionScheduler{
		interval:     cfg.IngestInterval,
		fetchTimeout: cfg.IngestFetchTimeout,
		baseDelay:    cfg.IngestRetryBaseDelay,
		maxDelay:     cfg.IngestRetryMaxDelay,
		maxAttempts:  cfg.IngestRetryMaxAttempts,
		ingestionSvc: ingestionSvc,
		metrics:      m,
		logger:       logger,
	}
}

// Start blocks running cycles until ctx is cancelled. The first cycle runs
// immediately so a fresh deployment has rates before the first tick.
func (s *IngestionScheduler) Start(ctx context.Context) {
	s.logger.Info("Ingestion scheduler started", slog.Duration("interval", s.interval), slog.Int("max_attempts", s.maxAttempts))

	s.RunCycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Ingestion scheduler stopped", slog.String("reason", ctx.Err().Error()))
			return
		case <-ticker.C:
			s.RunCycle(ctx)
		}
	}
}

// RunCycle executes one ingestion cycle, retrying transient failures with
// exponential backoff. Only one cycle runs at a time; a cycle that finds
// another still holding the lock skips instead of queueing.
func (s *IngestionScheduler) RunCycle(ctx context.Context) {
	if !s.mu.TryLock() {
		s.metrics.RecordIngestionCycle(metrics.CycleSkipped)
		s.logger.Warn("Skipping ingestion cycle, previous cycle still running")
		return
	}
	defer s.mu.Unlock()

	cycleLogger := s.logger.With(slog.String("cycle_id", uuid.NewString()))
	cycleCtx := middleware.ContextWithLogger(ctx, cycleLogger)

	b, _ := retry.NewExponential(s.baseDelay)
	b = retry.WithCappedDuration(s.maxDelay, b)
	// WithMaxRetries counts retries, not attempts.
	b = retry.WithMaxRetries(uint64(s.maxAttempts-1), b)

	var stored int
	attempt := 0

	err := retry.Do(cycleCtx, b, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			s.metrics.RecordRetryAttempt()
		}

		attemptCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()

		n, err := s.ingestionSvc.FetchAndStore(attemptCtx)
		if err != nil {
			cycleLogger.Warn("Ingestion attempt failed", slog.Int("attempt", attempt), slog.String("error", err.Error()))
			return retry.RetryableError(err)
		}

		stored = n
		return nil
	})
	if err != nil {
		s.metrics.RecordIngestionCycle(metrics.CycleFailure)
		if errors.Is(err, context.Canceled) {
			cycleLogger.Warn("Ingestion cycle aborted", slog.String("error", err.Error()))
			return
		}
		cycleLogger.Error("Ingestion cycle failed", slog.Int("attempts", attempt), slog.String("error", err.Error()))
		return
	}

	s.metrics.RecordIngestionCycle(metrics.CycleSuccess)
	cycleLogger.Info("Ingestion cycle completed", slog.Int("attempts", attempt), slog.Int("stored", stored))
}
