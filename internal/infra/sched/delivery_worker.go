package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"serial-story-subscription/internal/infra/metrics"
	"serial-story-subscription/internal/usecase"
)

// DeliveryWorker periodically emails due chapters via the use case.
type DeliveryWorker struct {
	interval   time.Duration
	deliveryUC usecase.DeliveryUseCase
	statsUC    usecase.StatsUseCase
	log        *zerolog.Logger
}

func NewDeliveryWorker(interval time.Duration, deliveryUC usecase.DeliveryUseCase, statsUC usecase.StatsUseCase, logger *zerolog.Logger) *DeliveryWorker {
	dlvLog := logger.With().Str("component", "DeliveryWorker").Logger()
	return &DeliveryWorker{
		interval:   interval,
		deliveryUC: deliveryUC,
		statsUC:    statsUC,
		log:        &dlvLog,
	}
}

func (w *DeliveryWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting delivery worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping delivery worker")
			return ctx.Err()
		case <-ticker.C:
			n, err := w.deliveryUC.DeliverDue(ctx)
			if err != nil {
				w.log.Error().Err(err).Msg("delivery worker error")
			}
			if n > 0 {
				metrics.AddChapterDeliveries("sent", n)
				w.log.Info().Int("count", n).Msg("chapters delivered")
			}
			w.refreshGauges(ctx)
		}
	}
}

func (w *DeliveryWorker) refreshGauges(ctx context.Context) {
	totals, err := w.statsUC.Totals(ctx)
	if err != nil {
		w.log.Warn().Err(err).Msg("stats refresh failed")
		return
	}
	metrics.SetSubscriptionsTotal(totals.SubsByStatus)
}
