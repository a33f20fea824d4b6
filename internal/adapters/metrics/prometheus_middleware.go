package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
)

// PrometheusMiddleware records the duration and status of every command and query.
// Names are the bare request type, e.g. "SolveModelCommand".
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		kind := mediator.KindOf(request)
		done := collector.StartCommand(kind)
		defer done()

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordCommandExecution(mediator.RequestName(request), kind, time.Since(start).Seconds(), err == nil)

		return response, err
	}
}
