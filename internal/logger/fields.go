package logger

import (
	"log/slog"
)

// Standard field keys for structured logging.
// These keys are shared across the buffer pool, software bus, aggregator, and
// processor so log aggregation/querying stays consistent across the core.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Buffer Pool (C1)
	// ========================================================================
	KeyFrameIndex  = "frame_index"  // Index of a frame within its pool
	KeyFrameType   = "frame_type"   // 16-bit handle type tag
	KeyPoolFree    = "pool_free"    // Free frame count at time of log
	KeyPoolSize    = "pool_size"    // Total frame count in the pool
	KeyRefcount    = "refcount"     // Handle refcount at time of log

	// ========================================================================
	// Reference Queue / Ring Buffer (C2/C3)
	// ========================================================================
	KeyQueueName  = "queue_name"  // Identifies which queue/ring emitted the log
	KeyQueueDepth = "queue_depth" // Current item count
	KeyQueueCap   = "queue_cap"   // Queue/ring capacity

	// ========================================================================
	// Software Bus (C4)
	// ========================================================================
	KeyMessageID  = "message_id"  // Bus message id
	KeyChannelID  = "channel_id"  // Registered channel identifier
	KeyAdmission  = "admission"   // Admission filter result
	KeyDispatch   = "dispatch"    // Dispatch result for a single channel

	// ========================================================================
	// Aggregator / Processor (C5/C6)
	// ========================================================================
	KeyParameterID  = "parameter_id"  // Telemetry parameter identifier
	KeySamplingRate = "sampling_rate" // Aggregator sampling rate enum value
	KeyBlocksize    = "blocksize"     // DataBlock size enum value
	KeyBlockState   = "block_state"   // DataBlock lifecycle state
	KeySampleCount  = "sample_count"  // Samples currently buffered in a block
	KeyRetryAttempt = "retry_attempt" // Output-frame allocation retry number

	// ========================================================================
	// Heartbeat (C7)
	// ========================================================================
	KeyHBSource   = "heartbeat_source"   // Heartbeat source tag
	KeyHBDeadline = "heartbeat_deadline" // Emitted deadline

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyErrorCode  = "error_code"  // Numeric error code
	KeyOperation  = "operation"   // Sub-operation name for complex operations
)

// ============================================================================
// Field constructors for type safety
// ============================================================================

// TraceID returns a slog.Attr for OpenTelemetry trace ID.
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID.
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// FrameIndex returns a slog.Attr for a pool frame index.
func FrameIndex(i int) slog.Attr {
	return slog.Int(KeyFrameIndex, i)
}

// Refcount returns a slog.Attr for a handle refcount.
func Refcount(n int32) slog.Attr {
	return slog.Int64(KeyRefcount, int64(n))
}

// QueueName returns a slog.Attr identifying a queue/ring by name.
func QueueName(name string) slog.Attr {
	return slog.String(KeyQueueName, name)
}

// ParameterID returns a slog.Attr for a telemetry parameter id.
func ParameterID(id uint16) slog.Attr {
	return slog.Int(KeyParameterID, int(id))
}

// MessageID returns a slog.Attr for a bus message id.
func MessageID(id uint32) slog.Attr {
	return slog.Uint64(KeyMessageID, uint64(id))
}

// ChannelID returns a slog.Attr for a registered channel id.
func ChannelID(id string) slog.Attr {
	return slog.String(KeyChannelID, id)
}

// DurationMs returns a slog.Attr for an operation duration in milliseconds.
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error value, or a no-op attr if err is nil.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
