package trace_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Eduardo-JSF/desafio-03/internal/trace"
)

func TestNewProvider_Discard(t *testing.T) {
	ctx := context.Background()

	provider, err := trace.NewProvider(ctx, trace.Config{
		Service:        "ledger",
		Env:            "TEST",
		SampleFraction: 1,
	})
	require.NoError(t, err)

	_, span := provider.Tracer("test").Start(ctx, "op")
	assert.True(t, span.SpanContext().IsValid())
	assert.True(t, span.SpanContext().IsSampled())
	span.End()

	assert.NoError(t, provider.ForceFlush(ctx))
	assert.NoError(t, provider.Shutdown(ctx))
}

func TestNewProvider_ZeroFractionDropsSpans(t *testing.T) {
	ctx := context.Background()

	provider, err := trace.NewProvider(ctx, trace.Config{Service: "ledger"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })

	_, span := provider.Tracer("test").Start(ctx, "op")
	defer span.End()

	assert.False(t, span.SpanContext().IsSampled())
}

func TestNewProvider_ResourceLabelsTheService(t *testing.T) {
	ctx := context.Background()

	provider, err := trace.NewProvider(ctx, trace.Config{
		Service:        "ledger",
		Version:        "1.4.2",
		Env:            "STAGING",
		SampleFraction: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })

	_, span := provider.Tracer("test").Start(ctx, "op")
	defer span.End()

	ro, ok := span.(sdktrace.ReadOnlySpan)
	require.True(t, ok)

	attrs := ro.Resource().Attributes()
	assert.Contains(t, attrs, attribute.String("service.name", "ledger"))
	assert.Contains(t, attrs, attribute.String("service.version", "1.4.2"))
	assert.Contains(t, attrs, attribute.String("deployment.environment", "STAGING"))
}

func TestNewProvider_WritesSpansToWriter(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	provider, err := trace.NewProvider(ctx, trace.Config{
		Service:        "ledger",
		Writer:         &buf,
		SampleFraction: 1,
	})
	require.NoError(t, err)

	_, span := provider.Tracer("test").Start(ctx, "teller.DEPOSIT")
	span.End()

	require.NoError(t, provider.Shutdown(ctx))
	assert.Contains(t, buf.String(), "teller.DEPOSIT")
}
