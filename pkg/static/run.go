package static

import (
	"context"
	"log/slog"
)

// Run binds, announces and serves until ctx is cancelled. A bind failure is
// returned before anything is announced.
func Run(ctx context.Context, s *Server, n Notifier) error {
	if err := s.Listen(); err != nil {
		return err
	}

	n.Started(s.URL())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve()
	}()

	select {
	case err := <-errCh:
		if shutdownErr := s.Shutdown(context.Background()); shutdownErr != nil {
			s.logger.Warn("shutdown after serve failure", slog.String("error", shutdownErr.Error()))
		}
		n.Stopped()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout())
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("forced shutdown", slog.String("error", err.Error()))
	}

	if err := <-errCh; err != nil {
		return err
	}

	n.Stopped()

	return nil
}
