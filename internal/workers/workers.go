package workers

import (
	"context"
	"errors"

	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/internal/notifier"
)

type Workers struct {
	workers []Worker
}

func NewWorkers(hub *notifier.Hub, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			newHubWorker(hub, logger),
		},
	}
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

// hubWorker runs the event hub's dispatch loop in the background until the
// context is cancelled.
type hubWorker struct {
	hub    *notifier.Hub
	logger *logger.Logger
}

func newHubWorker(hub *notifier.Hub, logger *logger.Logger) *hubWorker {
	return &hubWorker{hub: hub, logger: logger}
}

func (w *hubWorker) Run(ctx context.Context) {
	go func() {
		err := w.hub.Run(ctx)
		if err == nil || errors.Is(err, context.Canceled) {
			// the hub reports context cancellation; that is the normal
			// shutdown path, not a failure
			w.logger.Info().Str("func", "hubWorker.Run").Msg("event hub stopped")
			return
		}
		w.logger.Error().Err(err).Str("func", "hubWorker.Run").Msg("event hub stopped")
	}()
}
