// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys set on run spans.
const (
	AttrWorker   = attribute.Key("tester.worker")
	AttrExitCode = attribute.Key("process.exit.code")
	AttrTimedOut = attribute.Key("tester.timed_out")
)

// StartRunSpan starts the span for one iteration of one worker.
func StartRunSpan(ctx context.Context, tracer trace.Tracer, executable string, worker int) (context.Context, trace.Span) {
	ctx, span := tracer.Start(ctx, "run "+executable,
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	span.SetAttributes(
		attribute.String("process.executable.name", executable),
		AttrWorker.Int(worker),
	)

	return ctx, span
}

// EndRunSpan ends span. A fatal err is recorded as an error; a failed run is
// only marked with an Error status.
func EndRunSpan(span trace.Span, success bool, err error, attrs ...attribute.KeyValue) {
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}

	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case !success:
		span.SetStatus(codes.Error, "run failed")
	default:
		span.SetStatus(codes.Ok, "")
	}

	span.End()
}
