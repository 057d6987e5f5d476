package scheduler

import (
	"context"
	"errors"
	"time"

	"leavedesk/internal/leaverequest"
	leaverequesterrors "leavedesk/internal/leaverequest/errors"

	"go.uber.org/zap"
)

// Config tunes the grace-period sweep. GracePeriod is how long a request may
// sit pending before the sweep resolves it on the manager's behalf.
type Config struct {
	SweepInterval time.Duration
	GracePeriod   time.Duration
	BatchSize     int
}

func (c Config) withDefaults() Config {
	if c.SweepInterval <= 0 {
		c.SweepInterval = 24 * time.Hour
	}
	if c.GracePeriod <= 0 {
		c.GracePeriod = 72 * time.Hour
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	return c
}

// RunAutoApproveSweep periodically approves requests that have been pending
// longer than the grace period. Each candidate goes through the same
// transactional approval path as a manual decision, so a concurrent manager
// decision or a second sweep instance simply loses the conditional update
// and is skipped.
func RunAutoApproveSweep(
	ctx context.Context,
	cfg Config,
	repo leaverequest.Repository,
	service leaverequest.Service,
	logger *zap.Logger,
) {
	cfg = cfg.withDefaults()
	log := logger.Named("scheduler.auto_approve")

	ticker := time.NewTicker(cfg.SweepInterval)
	defer ticker.Stop()

	log.Info("auto-approve sweep started",
		zap.Duration("sweep_interval", cfg.SweepInterval),
		zap.Duration("grace_period", cfg.GracePeriod),
		zap.Int("batch_size", cfg.BatchSize),
	)

	for {
		select {
		case <-ctx.Done():
			log.Info("auto-approve sweep stopped")
			return
		case <-ticker.C:
			if err := sweepOnce(ctx, cfg, repo, service, log); err != nil {
				log.Error("auto-approve sweep failed", zap.Error(err))
			}
		}
	}
}

func sweepOnce(
	ctx context.Context,
	cfg Config,
	repo leaverequest.Repository,
	service leaverequest.Service,
	log *zap.Logger,
) error {
	cutoff := time.Now().Add(-cfg.GracePeriod)

	candidates, err := repo.FindPendingOlderThan(ctx, cutoff, cfg.BatchSize)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return nil
	}

	log.Info("sweeping aged pending requests",
		zap.Int("candidates", len(candidates)),
		zap.Time("cutoff", cutoff),
	)

	var approved, skipped int
	for _, lr := range candidates {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		_, err := service.AutoApprove(ctx, lr.ID.String())
		switch {
		case err == nil:
			approved++
		case errors.Is(err, leaverequesterrors.ErrAlreadyDecided):
			// Decided between the listing and the approval attempt.
			skipped++
		default:
			// One bad request must not stall the rest of the batch.
			skipped++
			log.Warn("auto-approve skipped",
				zap.String("request_id", lr.ID.String()),
				zap.String("request_number", lr.RequestNumber),
				zap.Error(err),
			)
		}
	}

	log.Info("auto-approve sweep finished",
		zap.Int("approved", approved),
		zap.Int("skipped", skipped),
	)
	return nil
}
