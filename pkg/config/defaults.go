package config

import (
	"time"

	"github.com/outpost-go/flightcore/internal/bytesize"
)

// DefaultConfig returns a Config with conservative defaults suitable for a
// single-node development run. Production deployments are expected to
// override pool sizing and bus admission range via file or environment.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
			Output: "stderr",
		},
		Telemetry: TelemetryConfig{
			Enabled:    false,
			SampleRate: 0,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Address: ":9090",
			Path:    "/metrics",
		},
		ShutdownTimeout: 5 * time.Second,
		Pool: PoolConfig{
			FrameSize:    256 * bytesize.B,
			InputFrames:  16,
			OutputFrames: 16,
		},
		Bus: BusConfig{
			AdmissionMin:  0,
			AdmissionMax:  0xFFFFFFFF,
			QueueCapacity: 32,
			IdleTimeout:   100 * time.Millisecond,
		},
		Processor: ProcessorConfig{
			RetryCount:     2,
			RetryDelay:     2 * time.Millisecond,
			IdleWait:       50 * time.Millisecond,
			OutputCapacity: 16,
		},
		Heartbeat: HeartbeatConfig{
			Interval: time.Second,
		},
	}
}
