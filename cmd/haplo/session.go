package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jwaldrip/odin/cli"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/haplo"
	"github.com/arloliu/haplo/block"
	"github.com/arloliu/haplo/config"
	"github.com/arloliu/haplo/internal/ctxlog"
	"github.com/arloliu/haplo/section"
	"github.com/arloliu/haplo/snapshot"
)

// session holds what every sub-command needs: the resolved configuration, a logger in the
// context and an optional metrics registry.
type session struct {
	ctx         context.Context
	stop        context.CancelFunc
	cfg         config.Config
	logger      *slog.Logger
	registry    *prometheus.Registry
	metricsPath string
}

// newSession resolves the global flags of c's parent over the configuration file.
// Flags left at their zero value keep the file's setting.
func newSession(c cli.Command) (*session, error) {
	global := c.Parent()

	cfg, err := config.Load(global.Flag("C").String())
	if err != nil {
		return nil, err
	}
	if t := global.Flag("t").Get().(int); t > 0 {
		cfg.Parallelism = t
	}
	if lvl := global.Flag("log-level").String(); lvl != "" {
		cfg.LogLevel = lvl
	}
	if lf := global.Flag("log-format").String(); lf != "" {
		cfg.LogFormat = lf
	}

	logger := ctxlog.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx = ctxlog.WithLogger(ctx, logger)

	s := &session{
		ctx:         ctx,
		stop:        stop,
		cfg:         cfg,
		logger:      logger,
		metricsPath: global.Flag("metrics").String(),
	}
	if s.metricsPath != "" {
		s.registry = prometheus.NewRegistry()
	}
	logger.Debug("session configured",
		"parallelism", cfg.Parallelism,
		"flip_policy", cfg.FlipPolicy.String(),
		"compression", cfg.Compression.String())

	return s, nil
}

func (s *session) blockOptions() []block.Option {
	opts := s.cfg.BlockOptions(s.logger)
	if s.registry != nil {
		opts = append(opts, block.WithMetrics(s.registry))
	}

	return opts
}

// load builds a block from path, which holds either a snapshot or a text matrix.
func (s *session) load(path string) (*block.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if _, err := section.ParseHeader(data); err == nil {
		s.logger.Debug("loading snapshot", "path", path, "bytes", len(data))
		return snapshot.Decode(s.ctx, data, s.blockOptions()...)
	}

	s.logger.Debug("loading read matrix", "path", path)

	return haplo.LoadFile(s.ctx, path, s.blockOptions()...)
}

// close releases the signal handler and flushes metrics.
func (s *session) close() error {
	s.stop()
	if s.registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(s.metricsPath, s.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	s.logger.Debug("metrics written", "path", s.metricsPath)

	return nil
}

// run wraps a sub-command body with session setup and error reporting.
func run(c cli.Command, body func(s *session, path string) error) {
	path := c.Param("file").String()
	if path == "" {
		fatal(fmt.Errorf("%s: missing input file", c.Name()))
	}

	s, err := newSession(c)
	if err != nil {
		fatal(err)
	}

	err = body(s, path)
	if cerr := s.close(); err == nil {
		err = cerr
	}
	if err != nil {
		s.logger.Error("command failed", "command", c.Name(), "error", err)
		fatal(err)
	}
}
