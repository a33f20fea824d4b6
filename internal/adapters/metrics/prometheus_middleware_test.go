package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
)

type pingCommand struct{}

func TestPrometheusMiddleware_RecordsStatusPerRequest(t *testing.T) {
	// Arrange
	collector := NewCommandMetricsCollector()
	mw := PrometheusMiddleware(collector)
	ok := func(ctx context.Context, r mediator.Request) (mediator.Response, error) { return "pong", nil }
	fail := func(ctx context.Context, r mediator.Request) (mediator.Response, error) { return nil, errors.New("boom") }

	// Act
	resp, err := mw(context.Background(), &pingCommand{}, ok)
	require.NoError(t, err)
	_, err = mw(context.Background(), &pingCommand{}, fail)

	// Assert
	assert.Error(t, err)
	assert.Equal(t, "pong", resp)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.commandsTotal.WithLabelValues("pingCommand", "command", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.commandsTotal.WithLabelValues("pingCommand", "command", "error")))
}

func TestPrometheusMiddleware_TracksInFlightRequests(t *testing.T) {
	// Arrange
	collector := NewCommandMetricsCollector()
	mw := PrometheusMiddleware(collector)
	var during float64

	// Act
	_, err := mw(context.Background(), &pingCommand{}, func(ctx context.Context, r mediator.Request) (mediator.Response, error) {
		during = testutil.ToFloat64(collector.inFlight.WithLabelValues("command"))
		return nil, nil
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1.0, during)
	assert.Equal(t, 0.0, testutil.ToFloat64(collector.inFlight.WithLabelValues("command")))
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	mw := PrometheusMiddleware(nil)

	resp, err := mw(context.Background(), &pingCommand{}, func(ctx context.Context, r mediator.Request) (mediator.Response, error) {
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, resp)
}
