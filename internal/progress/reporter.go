// internal/progress/reporter.go
package progress

import (
	"sync"
	"time"

	"github.com/bstardust/datestamp/internal/logger"
)

// Reporter tracks and reports stamping progress. It is the read-only view
// the batch exposes while items move to their terminal states.
type Reporter struct {
	mu             sync.Mutex
	total          int
	done           int
	failed         int
	fallbacks      int
	startTime      time.Time
	lastUpdateTime time.Time
	updateInterval time.Duration
}

// New creates a new progress reporter
func New() *Reporter {
	return &Reporter{
		updateInterval: 2 * time.Second,
	}
}

// Start initializes the reporter with the total number of photos
func (r *Reporter) Start(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.total = total
	r.done = 0
	r.failed = 0
	r.fallbacks = 0
	r.startTime = time.Now()
	r.lastUpdateTime = time.Now()

	logger.Info("Stamping %d photos", total)
}

// Complete marks a photo as stamped. fallback records that the timestamp
// came from the wall clock rather than embedded metadata.
func (r *Reporter) Complete(name string, fallback bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.done++
	if fallback {
		r.fallbacks++
		logger.Debug("No capture metadata in %s, used current time", name)
	}
	r.updateProgress()
}

// Error marks a photo as failed
func (r *Reporter) Error(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failed++
	logger.Warn("Failed to stamp %s: %v", name, err)
	r.updateProgress()
}

// Finish completes the progress reporting
func (r *Reporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	duration := time.Since(r.startTime)

	logger.Info("Stamping complete: %d/%d photos stamped, %d failed, %d used wall-clock time, in %s",
		r.done, r.total, r.failed, r.fallbacks, duration.Round(time.Millisecond))
}

// updateProgress displays throttled progress; callers hold the lock
func (r *Reporter) updateProgress() {
	now := time.Now()
	if now.Sub(r.lastUpdateTime) < r.updateInterval {
		return
	}

	r.lastUpdateTime = now
	processed := r.done + r.failed
	if processed == 0 || r.total == 0 {
		return
	}

	percentage := float64(processed) / float64(r.total) * 100
	logger.Info("Progress: %.1f%% (%d/%d, %d stamped, %d failed)",
		percentage, processed, r.total, r.done, r.failed)
}
