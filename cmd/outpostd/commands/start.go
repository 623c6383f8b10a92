package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/outpost-go/flightcore/internal/aggregate"
	"github.com/outpost-go/flightcore/internal/aggregate/registry"
	"github.com/outpost-go/flightcore/internal/compress"
	"github.com/outpost-go/flightcore/internal/dataproc"
	"github.com/outpost-go/flightcore/internal/heartbeat"
	"github.com/outpost-go/flightcore/internal/logger"
	"github.com/outpost-go/flightcore/internal/membuf"
	"github.com/outpost-go/flightcore/internal/refqueue"
	"github.com/outpost-go/flightcore/internal/supervisor"
	"github.com/outpost-go/flightcore/internal/swbus"
	"github.com/outpost-go/flightcore/internal/telemetry"
	"github.com/outpost-go/flightcore/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the core: software bus, aggregator registry, and data processor",
	Long: `Start runs the core in the foreground: it builds the buffer pools,
software bus, aggregator registry, and data processor thread from
configuration, then blocks until SIGINT/SIGTERM.

Aggregators are not created here — a parameter source registers one with the
running registry (internal/aggregate/registry) as telemetry parameters come
online; start only brings up the infrastructure they attach to.`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryShutdown, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "outpostd",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	frameSize := int(cfg.Pool.FrameSize.Uint64())
	inputPool := membuf.NewPool(frameSize, cfg.Pool.InputFrames)
	outputPool := membuf.NewPool(frameSize, cfg.Pool.OutputFrames)

	heartbeatTopic := make(chan heartbeat.Heartbeat, 16)

	bus := swbus.NewBus(swbus.Config{
		Admission:         swbus.RangeFilter{Min: cfg.Bus.AdmissionMin, Max: cfg.Bus.AdmissionMax},
		QueueCapacity:     cfg.Bus.QueueCapacity,
		IdleTimeout:       cfg.Bus.IdleTimeout,
		HeartbeatInterval: cfg.Heartbeat.Interval,
		HeartbeatTopic:    heartbeatTopic,
	})

	aggregatorInput := refqueue.NewQueue[*compress.DataBlock](cfg.Processor.OutputCapacity)
	processorOutput := refqueue.NewQueue[*compress.DataBlock](cfg.Processor.OutputCapacity)

	processor := dataproc.NewProcessor(dataproc.Config{
		Input:             aggregatorInput,
		Output:            processorOutput,
		Pool:              outputPool,
		RetryCount:        cfg.Processor.RetryCount,
		RetryDelay:        cfg.Processor.RetryDelay,
		IdleWait:          cfg.Processor.IdleWait,
		HeartbeatInterval: cfg.Heartbeat.Interval,
		HeartbeatTopic:    heartbeatTopic,
	})

	aggregators := registry.New[*aggregate.Aggregator]()
	logger.Info("aggregator registry ready", "registered", aggregators.Len())

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		telemetry.RegisterPoolMetrics(reg, "input", inputPool)
		telemetry.RegisterPoolMetrics(reg, "output", outputPool)
		telemetry.RegisterBusMetrics(reg, "main", bus)
		telemetry.RegisterProcessorMetrics(reg, "main", processor)

		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		metricsServer := &http.Server{Addr: cfg.Metrics.Address, Handler: mux}

		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer shutdownCancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
		logger.Info("metrics server listening", "address", cfg.Metrics.Address, "path", cfg.Metrics.Path)
	}

	go drainHeartbeats(ctx, heartbeatTopic)

	sv := supervisor.New(bus, processor, nil)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	runDone := make(chan error, 1)
	go func() {
		runDone <- sv.Run(ctx)
	}()

	logger.Info("outpostd running", "bus_admission_min", cfg.Bus.AdmissionMin, "bus_admission_max", cfg.Bus.AdmissionMax)

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("shutdown signal received")
		cancel()
		<-runDone
		logger.Info("outpostd stopped")
	case err := <-runDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("supervisor exited with error", "error", err)
			return err
		}
		logger.Info("outpostd stopped")
	}

	return nil
}

// drainHeartbeats logs liveness records until ctx is cancelled. A real
// watchdog would feed these to an RTOS timer; here they are simply observed.
func drainHeartbeats(ctx context.Context, topic <-chan heartbeat.Heartbeat) {
	for {
		select {
		case <-ctx.Done():
			return
		case hb := <-topic:
			logger.Debug("heartbeat", "source", hb.Source, "deadline", hb.Deadline)
		}
	}
}
