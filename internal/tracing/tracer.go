// Package tracing provides span helpers for the core's worker-driven
// operations (bus send/dispatch, aggregator push, processor block cycle). It
// is kept separate from internal/telemetry so that internal/swbus and
// internal/dataproc — which internal/telemetry already imports for metrics
// registration — can depend on it without an import cycle.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracerName names the tracer obtained from the global provider, which
// telemetry.Init installs when tracing is enabled.
const tracerName = "outpost-core"

// Attribute keys for spans raised by the bus, aggregator, and processor.
const (
	AttrMessageID   = "swbus.message_id"
	AttrChannelID   = "swbus.channel_id"
	AttrParameterID = "aggregate.parameter_id"
	AttrSampleCount = "aggregate.sample_count"
	AttrBlocksize   = "aggregate.blocksize"
	AttrEncodedSize = "dataproc.encoded_size"
	AttrRetry       = "dataproc.retry"
)

// Span names for the core's three worker-driven operations.
const (
	SpanBusSend        = "swbus.send"
	SpanBusDispatch    = "swbus.dispatch"
	SpanAggregatorPush = "aggregate.push"
	SpanProcessorBlock = "dataproc.process_block"
)

// MessageID returns an attribute for a bus message's id.
func MessageID(id uint32) attribute.KeyValue {
	return attribute.Int64(AttrMessageID, int64(id))
}

// ChannelID returns an attribute for a bus channel's generated id.
func ChannelID(id string) attribute.KeyValue {
	return attribute.String(AttrChannelID, id)
}

// ParameterID returns an attribute for an aggregator's parameter id.
func ParameterID(id uint16) attribute.KeyValue {
	return attribute.Int64(AttrParameterID, int64(id))
}

// SampleCount returns an attribute for a block's current sample count.
func SampleCount(n int) attribute.KeyValue {
	return attribute.Int(AttrSampleCount, n)
}

// EncodedSize returns an attribute for an encoded block's byte size.
func EncodedSize(n int) attribute.KeyValue {
	return attribute.Int(AttrEncodedSize, n)
}

// RetryAttempt returns an attribute for which output-allocation retry attempt
// produced a result.
func RetryAttempt(attempt int) attribute.KeyValue {
	return attribute.Int(AttrRetry, attempt)
}

// StartBusSpan starts a span around a bus send or dispatch, tagged with the
// message id.
func StartBusSpan(ctx context.Context, spanName string, messageID uint32, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := append([]attribute.KeyValue{MessageID(messageID)}, attrs...)
	return otel.Tracer(tracerName).Start(ctx,spanName, trace.WithAttributes(allAttrs...))
}

// StartAggregatorSpan starts a span around an aggregator push, tagged with
// the parameter id.
func StartAggregatorSpan(ctx context.Context, parameterID uint16, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := append([]attribute.KeyValue{ParameterID(parameterID)}, attrs...)
	return otel.Tracer(tracerName).Start(ctx,SpanAggregatorPush, trace.WithAttributes(allAttrs...))
}

// StartProcessorSpan starts a span around a single processor block cycle.
func StartProcessorSpan(ctx context.Context, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx,SpanProcessorBlock, trace.WithAttributes(attrs...))
}
