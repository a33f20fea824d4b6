package mediator_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
)

type pingCommand struct{ Value string }

type pingHandler struct{ calls int }

func (h *pingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	h.calls++
	cmd := request.(*pingCommand)
	return "pong:" + cmd.Value, nil
}

func TestMediator_DispatchesToRegisteredHandler(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	handler := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, handler))

	// Act
	resp, err := m.Send(context.Background(), &pingCommand{Value: "a"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong:a", resp)
	assert.Equal(t, 1, handler.calls)
}

func TestMediator_RejectsDuplicateAndUnknown(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, m.Register(reflect.TypeOf(&pingCommand{}), &pingHandler{}))

	err := m.Register(reflect.TypeOf(&pingCommand{}), &pingHandler{})
	assert.Error(t, err)

	_, err = m.Send(context.Background(), &struct{}{})
	assert.Error(t, err)

	_, err = m.Send(context.Background(), nil)
	assert.Error(t, err)
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, &pingHandler{}))

	var order []string
	record := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			order = append(order, name+":before")
			resp, err := next(ctx, request)
			order = append(order, name+":after")
			return resp, err
		}
	}
	m.RegisterMiddleware(record("outer"))
	m.RegisterMiddleware(record("inner"))

	// Act
	_, err := m.Send(context.Background(), &pingCommand{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, order)
}

func TestMediator_MiddlewareCanShortCircuit(t *testing.T) {
	m := mediator.NewMediator()
	handler := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, handler))
	m.RegisterMiddleware(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		return nil, errors.New("denied")
	})

	_, err := m.Send(context.Background(), &pingCommand{})

	assert.EqualError(t, err, "denied")
	assert.Zero(t, handler.calls)
}

func TestRequestName(t *testing.T) {
	assert.Equal(t, "pingCommand", mediator.RequestName(&pingCommand{}))
	assert.Equal(t, "UnknownRequest", mediator.RequestName(nil))
}

type listThingsQuery struct{}

func TestKindOf(t *testing.T) {
	assert.Equal(t, mediator.KindCommand, mediator.KindOf(&pingCommand{}))
	assert.Equal(t, mediator.KindQuery, mediator.KindOf(listThingsQuery{}))
	assert.Equal(t, mediator.KindOther, mediator.KindOf("plain"))
	assert.Equal(t, mediator.KindOther, mediator.KindOf(nil))
}
