package static

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/NotCherry/Projekt-Grupowy-PAI/pkg/config"
	"github.com/samber/lo"
)

type ServerOptions struct {
	Logger *slog.Logger
	// Stats is created from Logger when nil.
	Stats *Stats
}

func DefaultServerOptions() ServerOptions {
	return ServerOptions{
		Logger: slog.Default(),
	}
}

// Server serves one root directory on one listening socket.
type Server struct {
	cfg        config.ServerConfig
	logger     *slog.Logger
	stats      *Stats
	accessLog  *AccessLog
	httpServer *http.Server

	mu       sync.Mutex
	state    State
	listener net.Listener
}

func NewServer(cfg config.ServerConfig, opts ServerOptions) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Server{
		cfg:    cfg,
		logger: opts.Logger,
		stats:  opts.Stats,
		state:  StateNotStarted,
	}

	if s.stats == nil {
		s.stats = NewStats(s.logger, defaultHistorySize, defaultIdleAfter)
	}
	s.accessLog = NewAccessLog(s.logger, s.stats)

	s.httpServer = &http.Server{
		Handler:  s.accessLog.Wrap(NewHandler(cfg.Root)),
		ErrorLog: slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	return s
}

// Listen binds the socket. A busy port is returned as is, wrapped with the address.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNotStarted {
		return fmt.Errorf("%w: %s", ErrAlreadyStarted, s.state)
	}

	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr(), err)
	}

	s.listener = ln
	s.state = StateListening

	if s.cfg.AllInterfaces() {
		s.logger.Warn("listening on all interfaces, the root directory is reachable from the network",
			slog.String("addr", ln.Addr().String()))
	}

	s.logger.Info("listening",
		slog.String("addr", ln.Addr().String()),
		slog.String("root", s.cfg.Root))

	return nil
}

// Serve blocks until Shutdown. It returns nil after a graceful stop.
func (s *Server) Serve() error {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()

	if ln == nil {
		return ErrNotListening
	}

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests until
// ctx is done, after which remaining connections are closed.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateListening {
		s.mu.Unlock()
		return nil
	}
	s.state = StateStopping
	s.mu.Unlock()

	s.logger.Info("shutting down server...")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		s.logger.Warn("graceful shutdown timed out, closing connections", slog.String("error", err.Error()))
		s.httpServer.Close()
	}

	s.accessLog.Close()
	s.stats.LogSummary("shutdown")

	s.mu.Lock()
	s.state = StateStopped
	s.mu.Unlock()

	return err
}

func (s *Server) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Addr is the bound address, or "" before Listen.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// URL is what a local browser should open. Wildcard and loopback binds are
// shown as localhost.
func (s *Server) URL() string {
	port := s.cfg.Port
	if _, p, err := net.SplitHostPort(s.Addr()); err == nil {
		port, _ = strconv.Atoi(p)
	}

	host := lo.Ternary(s.cfg.AllInterfaces() || isLoopback(s.cfg.Host), "localhost", s.cfg.Host)

	return "http://" + net.JoinHostPort(host, strconv.Itoa(port)) + "/"
}

func (s *Server) Stats() *Stats {
	return s.stats
}

func (s *Server) ShutdownTimeout() time.Duration {
	if s.cfg.ShutdownTimeout <= 0 {
		return config.DefaultShutdownTimeout
	}
	return time.Duration(s.cfg.ShutdownTimeout)
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
