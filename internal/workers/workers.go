package workers

import (
	"context"

	"github.com/plateup/plateup-server/internal/config"
	"github.com/plateup/plateup-server/internal/logger"
	"github.com/plateup/plateup-server/internal/service"
)

// Workers aggregates every background worker of the application.
type Workers struct {
	workers []Worker
}

// NewWorkers wires the application's background workers: currently the
// periodic recipe import job.
func NewWorkers(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			NewImportJob(services.ImportService, cfg.Provider.FetchInterval, logger),
		},
	}
}

// Start launches all workers against ctx.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops all workers in reverse start order and waits for them to exit.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
