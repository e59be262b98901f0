package workers

import (
	"context"
	"sync"
	"time"

	"github.com/plateup/plateup-server/internal/logger"
	"github.com/plateup/plateup-server/internal/service"
)

const defaultImportInterval = time.Hour

// importJob periodically replenishes the recipe catalog from the external
// provider. One run happens right after Start so a fresh deployment does not
// sit on an empty catalog until the first tick.
type importJob struct {
	importService service.ImportService
	interval      time.Duration
	logger        *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewImportJob creates an importJob that calls ImportRecipes every interval
// (defaulting to one hour when non-positive). The job is idle until Start is
// called.
func NewImportJob(importService service.ImportService, interval time.Duration, logger *logger.Logger) Worker {
	if interval <= 0 {
		interval = defaultImportInterval
	}

	return &importJob{
		importService: importService,
		interval:      interval,
		logger:        logger,
	}
}

// Start implements Worker. It stops any previously running job, then
// launches a background goroutine that imports one batch immediately and
// again on every tick. The goroutine exits when ctx is cancelled or Stop is
// called.
func (j *importJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		j.runOnce(jobCtx)

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runOnce(jobCtx)
			}
		}
	}()
}

func (j *importJob) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	if _, err := j.importService.ImportRecipes(ctx); err != nil {
		j.logger.Warn().Err(err).Str("func", "*importJob.runOnce").Msg("recipe import run failed")
	}
}

// Stop implements Worker. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is
// not running (no-op in that case).
func (j *importJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
