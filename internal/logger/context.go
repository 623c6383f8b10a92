package logger

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey struct{}

// logContextKey is the key for LogContext in context.Context
var logContextKey = contextKey{}

// LogContext holds operation-scoped logging context carried through the core's
// worker loops (software bus dispatch, data processor iterations).
type LogContext struct {
	TraceID     string    // OpenTelemetry trace ID
	SpanID      string    // OpenTelemetry span ID
	Component   string    // Component tag: "swbus", "aggregator", "processor", "heartbeat"
	ParameterID uint16    // Telemetry parameter id, when applicable
	ChannelID   string    // Bus channel id, when applicable
	StartTime   time.Time // For duration calculation
}

// WithContext returns a new context with the given LogContext
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext from context, or nil if not present
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// NewLogContext creates a new LogContext for the given component.
func NewLogContext(component string) *LogContext {
	return &LogContext{
		Component: component,
		StartTime: time.Now(),
	}
}

// Clone creates a copy of the LogContext
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return nil
	}
	return &LogContext{
		TraceID:     lc.TraceID,
		SpanID:      lc.SpanID,
		Component:   lc.Component,
		ParameterID: lc.ParameterID,
		ChannelID:   lc.ChannelID,
		StartTime:   lc.StartTime,
	}
}

// WithParameterID returns a copy with the parameter id set
func (lc *LogContext) WithParameterID(id uint16) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.ParameterID = id
	}
	return clone
}

// WithChannelID returns a copy with the channel id set
func (lc *LogContext) WithChannelID(id string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.ChannelID = id
	}
	return clone
}

// WithTrace returns a copy with trace info set
func (lc *LogContext) WithTrace(traceID, spanID string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.TraceID = traceID
		clone.SpanID = spanID
	}
	return clone
}

// DurationMs returns the duration since StartTime in milliseconds
func (lc *LogContext) DurationMs() float64 {
	if lc == nil || lc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(lc.StartTime).Microseconds()) / 1000.0
}
