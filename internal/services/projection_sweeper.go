package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/honeynil/course-purchase-service/internal/infrastructure/redis"
	"github.com/honeynil/course-purchase-service/internal/repository"
)

const sweepLockKey = "lock:projection-sweep"

// ProjectionSweeper periodically re-projects completed purchases that never
// got their enrollment applied. A Redis lock keeps replicas from sweeping
// the same batch at once. Each run holds the lock under its own token and
// releases it only while the token is still there.
type ProjectionSweeper struct {
	purchases    repository.PurchaseRepository
	projector    EnrollmentProjector
	redisClient  redis.RedisClient
	interval     time.Duration
	batchSize    int
	storeTimeout time.Duration
}

func NewProjectionSweeper(
	purchases repository.PurchaseRepository,
	projector EnrollmentProjector,
	redisClient redis.RedisClient,
	interval time.Duration,
	batchSize int,
	storeTimeout time.Duration,
) *ProjectionSweeper {
	return &ProjectionSweeper{
		purchases:    purchases,
		projector:    projector,
		redisClient:  redisClient,
		interval:     interval,
		batchSize:    batchSize,
		storeTimeout: storeTimeout,
	}
}

func (s *ProjectionSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("projection sweeper started", "interval", s.interval, "batch_size", s.batchSize)
	for {
		select {
		case <-ctx.Done():
			slog.Info("projection sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				slog.Error("projection sweep failed", "error", err)
			}
		}
	}
}

// SweepOnce returns the number of purchases projected in this pass.
func (s *ProjectionSweeper) SweepOnce(ctx context.Context) (int, error) {
	token := uuid.NewString()
	ok, err := s.redisClient.SetNX(ctx, sweepLockKey, token, s.interval)
	if err != nil {
		return 0, err
	}
	if !ok {
		slog.Debug("projection sweep already running elsewhere")
		return 0, nil
	}
	defer func() {
		released, err := s.redisClient.DelIfValue(context.WithoutCancel(ctx), sweepLockKey, token)
		if err != nil {
			slog.Error("failed to release sweep lock", "error", err)
			return
		}
		if !released {
			slog.Warn("sweep lock expired before the run finished", "interval", s.interval)
		}
	}()

	sctx, cancel := storeContext(ctx, s.storeTimeout)
	pending, err := s.purchases.ListUnprojected(sctx, s.batchSize)
	cancel()
	if err != nil {
		return 0, err
	}

	projected := 0
	for i := range pending {
		if ctx.Err() != nil {
			break
		}
		rec := &pending[i]
		if err := s.projector.Project(ctx, rec); err != nil {
			slog.Warn("sweep projection failed", "purchase_id", rec.ID, "error", err)
			s.recordFailure(ctx, rec.ID)
			continue
		}
		projected++
	}

	if len(pending) > 0 {
		slog.Info("projection sweep finished", "found", len(pending), "projected", projected)
	}
	return projected, nil
}

func (s *ProjectionSweeper) recordFailure(ctx context.Context, id int64) {
	sctx, cancel := storeContext(context.WithoutCancel(ctx), s.storeTimeout)
	defer cancel()
	if err := s.purchases.MarkProjectionFailed(sctx, id); err != nil {
		slog.Error("failed to record projection failure", "purchase_id", id, "error", err)
	}
}
