package static

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/HMasataka/logging"
	"github.com/gammazero/workerpool"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += int64(n)
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// AccessLog writes one record per request. Records are handed to a single
// worker so they leave in completion order without blocking the handler.
type AccessLog struct {
	logger *slog.Logger
	stats  *Stats
	worker *workerpool.WorkerPool

	mu     sync.RWMutex
	closed bool
}

func NewAccessLog(logger *slog.Logger, stats *Stats) *AccessLog {
	return &AccessLog{
		logger: logger,
		stats:  stats,
		worker: workerpool.New(1),
	}
}

func (a *AccessLog) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		entry := RequestRecord{
			Method:   r.Method,
			Path:     r.URL.Path,
			Remote:   r.RemoteAddr,
			Status:   rec.status,
			Bytes:    rec.bytes,
			Duration: time.Since(start),
			Time:     start,
		}
		ctx := requestContext(r)

		a.mu.RLock()
		defer a.mu.RUnlock()

		if a.closed {
			// Handlers outliving Shutdown still count, but are logged inline.
			a.write(ctx, entry)
			return
		}

		a.worker.Submit(func() {
			a.write(ctx, entry)
		})
	})
}

func (a *AccessLog) write(ctx context.Context, entry RequestRecord) {
	if a.stats != nil {
		a.stats.Record(entry)
	}

	level := slog.LevelInfo
	if entry.Status >= http.StatusBadRequest {
		level = slog.LevelWarn
	}

	a.logger.Log(ctx, level, "request",
		slog.Int("status", entry.Status),
		slog.Int64("bytes", entry.Bytes),
		slog.Duration("duration", entry.Duration),
	)
}

// requestContext carries the request identity to a logging.NewHandler backed
// logger. It outlives the request so the worker can still read it.
func requestContext(r *http.Request) context.Context {
	ctx := context.WithoutCancel(r.Context())
	ctx = logging.WithValue(ctx, "method", r.Method)
	ctx = logging.WithValue(ctx, "path", r.URL.Path)
	ctx = logging.WithValue(ctx, "remote", r.RemoteAddr)

	return ctx
}

// Close drains pending records. Requests finishing afterwards are logged inline.
func (a *AccessLog) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	a.mu.Unlock()

	a.worker.StopWait()
}
