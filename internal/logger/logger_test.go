package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Eduardo-JSF/desafio-03/internal/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestNew_AddsServiceAndTraceID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "LEDGER", slog.LevelInfo)

	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	log.InfoContext(ctx, "transaction applied", "account_number", 1)

	record := decode(t, &buf)
	assert.Equal(t, "LEDGER", record["service"])
	assert.Equal(t, "transaction applied", record["msg"])
	assert.Equal(t, span.SpanContext().TraceID().String(), record["trace_id"])
}

func TestNew_NoSpanNoTraceID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "LEDGER", slog.LevelInfo)

	log.With("component", "grpc").WithGroup("req").InfoContext(context.Background(), "startup", "port", 8080)

	record := decode(t, &buf)
	assert.NotContains(t, record, "trace_id")
	assert.Equal(t, "grpc", record["component"])
	assert.Contains(t, record, "req")
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "LEDGER", slog.LevelWarn)

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.NotZero(t, buf.Len())
}
