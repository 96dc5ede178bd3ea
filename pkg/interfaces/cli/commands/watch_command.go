package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vsinha/prodseq/pkg/infrastructure/config"
	"github.com/vsinha/prodseq/pkg/infrastructure/events"
	"github.com/vsinha/prodseq/pkg/infrastructure/logging"
	"github.com/vsinha/prodseq/pkg/infrastructure/metrics"
	"github.com/vsinha/prodseq/pkg/infrastructure/repositories/memory"
)

// WatchCommand recomputes the sequence on an interval within one stabilizer
// session, reloading both input files every time
type WatchCommand struct {
	config   *config.Config
	out      io.Writer
	count    int // stop after this many recomputations; 0 runs until cancelled
	today    func() time.Time
	registry *memory.SessionRegistry
}

// NewWatchCommand creates a watch command
func NewWatchCommand(cfg *config.Config, out io.Writer, count int) *WatchCommand {
	return &WatchCommand{
		config:   cfg,
		out:      out,
		count:    count,
		today:    time.Now,
		registry: memory.NewSessionRegistry(),
	}
}

// Execute runs until ctx is cancelled, SIGINT/SIGTERM arrives or count is reached
func (c *WatchCommand) Execute(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	interval := c.config.WatchInterval
	if interval <= 0 {
		return fmt.Errorf("watch_interval must be positive, got %s", interval)
	}

	id, snapshots := c.registry.Open()
	defer c.registry.Close(id)

	logger := logging.FromContext(ctx).WithField("session", id.String())
	ctx = logging.WithLogger(ctx, logger)

	store := events.NewInMemoryEventStore(logger)
	defer store.Wait()
	sub, err := store.Subscribe([]string{events.SequencePulledAheadEvent}, events.HandlerFunc(func(event events.Event) error {
		if data, ok := event.Data().(events.SequencePulledAhead); ok {
			logger.WithFields(logrus.Fields{
				"previous": data.PreviousOrder,
				"new":      data.NewOrder,
			}).Warn("earlier shortage pulled ahead of the locked sequence")
		}
		return nil
	}))
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Unsubscribe(sub); err != nil {
			logger.WithError(err).Warn("failed to unsubscribe pull-ahead alerts")
		}
	}()

	command := NewSequenceCommand(c.config, c.out)
	command.today = c.today
	command.snapshots = snapshots
	command.events = store

	if c.config.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		command.metrics = metrics.NewPrometheus(reg, "")
		server := startMetricsServer(ctx, c.config.MetricsAddr, reg, logger)
		defer shutdownMetricsServer(server, logger)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runs := 0
	for {
		if _, err := command.Execute(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			logger.WithError(err).Error("recompute failed")
		}
		runs++
		if c.count > 0 && runs >= c.count {
			return nil
		}

		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func startMetricsServer(ctx context.Context, addr string, reg *prometheus.Registry, logger logrus.FieldLogger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		logger.WithField("addr", addr).Info("serving metrics")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("metrics server failed")
		}
	}()
	return server
}

func shutdownMetricsServer(server *http.Server, logger logrus.FieldLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Warn("metrics server shutdown failed")
	}
}

func newWatchCommand(a *app) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompute the sequence periodically, keeping it stable within the day",
		Long: `watch reloads the input files every --watch-interval and prints the
sequence again. The order shown first in a day stays locked until a shortage
earlier than any already shown appears. With --metrics-addr, Prometheus metrics
are served on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := parseToday(cmd)
			if err != nil {
				return err
			}
			command := NewWatchCommand(a.config, a.out(cmd), count)
			command.today = today
			return command.Execute(cmd.Context())
		},
	}
	addSelectionFlags(cmd)
	cmd.Flags().String("today", "", "calendar day to sequence for, YYYY-MM-DD (default: now)")
	cmd.Flags().Duration("watch-interval", 10*time.Minute, "time between recomputations")
	cmd.Flags().String("metrics-addr", "", "address to serve Prometheus metrics on, e.g. :9090")
	cmd.Flags().IntVar(&count, "count", 0, "stop after this many recomputations (0: run until interrupted)")
	return cmd
}
