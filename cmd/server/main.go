package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/HMasataka/logging"
	"github.com/NotCherry/Projekt-Grupowy-PAI/pkg/config"
	"github.com/NotCherry/Projekt-Grupowy-PAI/pkg/static"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger := newLogger(cfg.Log, stderr)
	slog.SetDefault(logger)

	ctx, stop := interruptContext()
	defer stop()

	opts := static.DefaultServerOptions()
	opts.Logger = logger
	server := static.NewServer(cfg.Server, opts)

	if err := static.Run(ctx, server, static.NewConsoleNotifier(stdout)); err != nil {
		slog.Error("server error", slog.String("error", err.Error()))
		return 1
	}

	return 0
}

// interruptContext is cancelled by the first SIGINT or SIGTERM. The handler is
// released right away, so a second interrupt during the drain kills the process.
func interruptContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	context.AfterFunc(ctx, stop)

	return ctx, stop
}

// parseConfig layers defaults, the optional TOML file and explicitly set flags.
func parseConfig(args []string, stderr io.Writer) (config.Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(stderr)

	defaults := config.DefaultConfig()
	configPath := fs.String("config", "", "optional TOML config file")
	host := fs.String("host", defaults.Server.Host, `bind host ("" or 0.0.0.0 for all interfaces)`)
	port := fs.Int("port", defaults.Server.Port, "listen port")
	root := fs.String("root", defaults.Server.Root, "directory to serve")
	logLevel := fs.String("log-level", defaults.Log.Level, "debug, info, warn or error")
	logFormat := fs.String("log-format", defaults.Log.Format, "json or text")

	if err := fs.Parse(args); err != nil {
		return defaults, err
	}

	cfg := defaults
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return defaults, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Server.Host = *host
		case "port":
			cfg.Server.Port = *port
		case "root":
			cfg.Server.Root = *root
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-format":
			cfg.Log.Format = *logFormat
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler = slog.NewJSONHandler(w, opts)
	if cfg.Format == "text" {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(logging.NewHandler(h))
}
