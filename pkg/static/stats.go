package static

import (
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
	"github.com/gammazero/deque"
	"github.com/samber/lo"
)

const (
	defaultHistorySize = 32
	defaultIdleAfter   = time.Second
)

type RequestRecord struct {
	Method   string
	Path     string
	Remote   string
	Status   int
	Bytes    int64
	Duration time.Duration
	Time     time.Time
}

type Snapshot struct {
	Requests       int64
	NotFound       int64
	NotImplemented int64
	Bytes          int64
}

// Stats counts served requests and keeps the most recent ones.
type Stats struct {
	requests       atomic.Int64
	notFound       atomic.Int64
	notImplemented atomic.Int64
	bytes          atomic.Int64

	mu      sync.Mutex
	recent  deque.Deque[RequestRecord]
	history int

	idle   func(f func())
	logger *slog.Logger
}

func NewStats(logger *slog.Logger, history int, idleAfter time.Duration) *Stats {
	if history <= 0 {
		history = defaultHistorySize
	}
	if idleAfter <= 0 {
		idleAfter = defaultIdleAfter
	}

	s := &Stats{
		history: history,
		idle:    debounce.New(idleAfter),
		logger:  logger,
	}
	s.recent.SetBaseCap(history)

	return s
}

func (s *Stats) Record(rec RequestRecord) {
	s.requests.Add(1)
	s.bytes.Add(rec.Bytes)

	switch rec.Status {
	case http.StatusNotFound:
		s.notFound.Add(1)
	case http.StatusNotImplemented:
		s.notImplemented.Add(1)
	}

	s.mu.Lock()
	s.recent.PushBack(rec)
	for s.recent.Len() > s.history {
		s.recent.PopFront()
	}
	s.mu.Unlock()

	s.idle(func() {
		s.LogSummary("idle")
	})
}

func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Requests:       s.requests.Load(),
		NotFound:       s.notFound.Load(),
		NotImplemented: s.notImplemented.Load(),
		Bytes:          s.bytes.Load(),
	}
}

// Recent returns the retained requests, oldest first.
func (s *Stats) Recent() []RequestRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RequestRecord, 0, s.recent.Len())
	for i := 0; i < s.recent.Len(); i++ {
		out = append(out, s.recent.At(i))
	}

	return out
}

// LogSummary logs the counters and the paths of the retained requests.
func (s *Stats) LogSummary(reason string) {
	snap := s.Snapshot()
	recent := lo.Map(s.Recent(), func(rec RequestRecord, _ int) string {
		return rec.Path
	})

	s.logger.Debug("requests served",
		slog.String("reason", reason),
		slog.Int64("requests", snap.Requests),
		slog.Int64("not_found", snap.NotFound),
		slog.Int64("not_implemented", snap.NotImplemented),
		slog.Int64("bytes", snap.Bytes),
		slog.Any("recent", recent),
	)
}
