package logging

import (
	"context"
	"time"

	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
)

// LoggingMiddleware logs every request at debug level and failures at error level.
// The logger is also placed in the context so handlers can reach it.
func LoggingMiddleware(logger Logger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if logger == nil {
			return next(ctx, request)
		}
		ctx = WithLogger(ctx, logger)

		name := mediator.RequestName(request)
		start := time.Now()
		response, err := next(ctx, request)
		elapsed := time.Since(start)

		if err != nil {
			logger.Log("error", "request failed", map[string]interface{}{
				"request":     name,
				"kind":        string(mediator.KindOf(request)),
				"error":       err.Error(),
				"duration_ms": elapsed.Milliseconds(),
			})
			return response, err
		}

		logger.Log("debug", "request handled", map[string]interface{}{
			"request":     name,
			"kind":        string(mediator.KindOf(request)),
			"duration_ms": elapsed.Milliseconds(),
		})
		return response, nil
	}
}
