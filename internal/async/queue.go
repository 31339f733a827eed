package async

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/blind-rankings/internal/common"
)

// Job asks for a report rebuild after a daily report changed.
type Job struct {
	Path        string
	SubmittedAt time.Time
	TraceID     string
}

// Refresher rebuilds the served report.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RebuildQueue runs rebuilds on a single worker. A job arriving while one is
// already pending is folded into it.
type RebuildQueue struct {
	target  Refresher
	logger  *slog.Logger
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*RebuildQueue)

func WithProcessTimeout(d time.Duration) Option {
	return func(q *RebuildQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewRebuildQueue(target Refresher, logger *slog.Logger, opts ...Option) *RebuildQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &RebuildQueue{
		target:  target,
		logger:  logger,
		timeout: 3 * time.Minute,
		ch:      make(chan Job, 1),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *RebuildQueue) start() {
	q.once.Do(func() {
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			for job := range q.ch {
				ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
				ctx = common.WithRunID(ctx, job.TraceID)
				start := time.Now()
				err := q.target.Refresh(ctx)
				cancel()

				if err != nil {
					q.logger.Error("rebuild failed", "path", job.Path, "trace_id", job.TraceID, "error", err)
				} else {
					q.logger.Info("rebuild finished",
						"path", job.Path,
						"trace_id", job.TraceID,
						"queued_ms", start.Sub(job.SubmittedAt).Milliseconds(),
						"elapsed_ms", time.Since(start).Milliseconds(),
					)
				}
			}
			q.logger.Info("rebuild worker stopped")
		}()
	})
}

// Enqueue never blocks. It reports whether a new rebuild was scheduled; false
// means the queue is closed or a pending rebuild already covers the job.
func (q *RebuildQueue) Enqueue(_ context.Context, job Job) bool {
	if job.SubmittedAt.IsZero() {
		job.SubmittedAt = time.Now()
	}
	if job.TraceID == "" {
		job.TraceID = uuid.NewString()
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "path", job.Path)
		return false
	}
	select {
	case q.ch <- job:
		q.logger.Debug("rebuild queued", "path", job.Path, "trace_id", job.TraceID)
		return true
	default:
		q.logger.Debug("rebuild already pending", "path", job.Path)
		return false
	}
}

// Shutdown stops accepting jobs and waits for the worker to drain.
func (q *RebuildQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}
