package static_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"syscall"
	"testing"
	"time"

	"github.com/NotCherry/Projekt-Grupowy-PAI/pkg/config"
	"github.com/NotCherry/Projekt-Grupowy-PAI/pkg/static"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOptions() static.ServerOptions {
	opts := static.DefaultServerOptions()
	opts.Logger = discardLogger()
	return opts
}

func newTestServer(t *testing.T, cfg config.ServerConfig) *static.Server {
	t.Helper()

	s := static.NewServer(cfg, testOptions())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Shutdown(ctx)
	})

	return s
}

func loopbackConfig(t *testing.T) config.ServerConfig {
	return config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            0,
		Root:            newSite(t),
		ShutdownTimeout: config.Duration(time.Second),
	}
}

func portOf(t *testing.T, addr string) int {
	t.Helper()

	_, p, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(p)
	require.NoError(t, err)

	return port
}

func TestServer_Lifecycle(t *testing.T) {
	s := newTestServer(t, loopbackConfig(t))
	assert.Equal(t, static.StateNotStarted, s.State())
	assert.Empty(t, s.Addr())

	require.NoError(t, s.Listen())
	assert.Equal(t, static.StateListening, s.State())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve()
	}()

	res, err := http.Get(s.URL() + "hello.txt")
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "hello, world\n", string(body))

	require.NoError(t, s.Shutdown(context.Background()))
	assert.Equal(t, static.StateStopped, s.State())
	assert.NoError(t, <-errCh)

	_, err = net.DialTimeout("tcp", s.Addr(), 100*time.Millisecond)
	assert.Error(t, err, "listener must be closed after shutdown")

	snap := s.Stats().Snapshot()
	assert.Equal(t, int64(1), snap.Requests)
	assert.Equal(t, int64(len("hello, world\n")), snap.Bytes)
}

func TestServer_SecondBindFails(t *testing.T) {
	first := newTestServer(t, loopbackConfig(t))
	require.NoError(t, first.Listen())

	cfg := loopbackConfig(t)
	cfg.Port = portOf(t, first.Addr())
	second := newTestServer(t, cfg)

	err := second.Listen()
	require.Error(t, err)
	assert.ErrorIs(t, err, syscall.EADDRINUSE)
	assert.Equal(t, static.StateNotStarted, second.State())
}

func TestServer_Errors(t *testing.T) {
	t.Run("Serve before Listen", func(t *testing.T) {
		s := newTestServer(t, loopbackConfig(t))

		assert.ErrorIs(t, s.Serve(), static.ErrNotListening)
	})

	t.Run("Listen twice", func(t *testing.T) {
		s := newTestServer(t, loopbackConfig(t))
		require.NoError(t, s.Listen())

		assert.ErrorIs(t, s.Listen(), static.ErrAlreadyStarted)
	})

	t.Run("Shutdown before Listen is a no-op", func(t *testing.T) {
		s := newTestServer(t, loopbackConfig(t))

		assert.NoError(t, s.Shutdown(context.Background()))
		assert.Equal(t, static.StateNotStarted, s.State())
	})
}

func TestServer_URL(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{host: "127.0.0.1", want: "http://localhost:8000/"},
		{host: "localhost", want: "http://localhost:8000/"},
		{host: "", want: "http://localhost:8000/"},
		{host: "0.0.0.0", want: "http://localhost:8000/"},
		{host: "192.168.1.10", want: "http://192.168.1.10:8000/"},
		{host: "fd00::1", want: "http://[fd00::1]:8000/"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			s := static.NewServer(config.ServerConfig{Host: tt.host, Port: 8000, Root: "."}, testOptions())

			assert.Equal(t, tt.want, s.URL())
		})
	}

	t.Run("ephemeral port uses the bound port", func(t *testing.T) {
		s := newTestServer(t, loopbackConfig(t))
		require.NoError(t, s.Listen())

		assert.Equal(t, "http://localhost:"+strconv.Itoa(portOf(t, s.Addr()))+"/", s.URL())
	})
}

func TestServer_ShutdownTimeout(t *testing.T) {
	s := static.NewServer(config.ServerConfig{Root: "."}, testOptions())
	assert.Equal(t, config.DefaultShutdownTimeout, s.ShutdownTimeout())

	s = static.NewServer(config.ServerConfig{Root: ".", ShutdownTimeout: config.Duration(time.Minute)}, testOptions())
	assert.Equal(t, time.Minute, s.ShutdownTimeout())
}
