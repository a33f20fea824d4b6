package mediator

import (
	"context"
	"reflect"
	"strings"
)

// Request represents a command or query.
// Commands change a project (CreateProjectCommand, SolveModelCommand); queries only read it.
type Request interface{}

// Response represents the result of handling a request
type Response interface{}

// RequestHandler handles a specific request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc is a function that handles a request
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Middleware is a function that wraps handler execution with cross-cutting concerns
// Examples: request logging, Prometheus timing
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

// RequestKind tells commands from queries, by type-name suffix
type RequestKind string

const (
	KindCommand RequestKind = "command"
	KindQuery   RequestKind = "query"
	KindOther   RequestKind = "request"
)

// RequestName returns the bare type name of a request, e.g. "SolveModelCommand"
func RequestName(request Request) string {
	if request == nil {
		return "UnknownRequest"
	}
	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if idx := strings.LastIndex(fullName, "."); idx >= 0 {
		return fullName[idx+1:]
	}
	return fullName
}

// KindOf classifies a request: "...Command" is a command, "...Query" a query
func KindOf(request Request) RequestKind {
	name := RequestName(request)
	switch {
	case strings.HasSuffix(name, "Command"):
		return KindCommand
	case strings.HasSuffix(name, "Query"):
		return KindQuery
	}
	return KindOther
}
