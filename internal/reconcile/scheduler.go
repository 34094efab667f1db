package reconcile

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// StartScheduler runs the reconciler on a fixed interval until the scheduler
// is shut down. The returned scheduler must be shut down on exit.
func StartScheduler(r *Reconciler, interval time.Duration, log *zap.Logger) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if _, err := r.Run(ctx); err != nil {
				log.Error("reconciliation pass failed", zap.Error(err))
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	log.Info("reconciliation scheduler started", zap.Duration("interval", interval))
	return s, nil
}
