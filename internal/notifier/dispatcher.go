package notifier

import (
	"context"
	"fmt"

	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/service/queueservice"
)

type Handler func(ctx context.Context, payload domain.Payload) error

// Dispatcher routes decoded notifications to the handler for their type.
// The handler set is fixed at construction.
type Dispatcher struct {
	handlers map[domain.NotificationType]Handler
}

func NewDispatcher(handlers map[domain.NotificationType]Handler) *Dispatcher {
	d := &Dispatcher{handlers: make(map[domain.NotificationType]Handler, len(handlers))}
	for typ, h := range handlers {
		d.handlers[typ] = h
	}
	return d
}

func (d *Dispatcher) Dispatch(ctx context.Context, n domain.Notification) error {
	h, ok := d.handlers[n.Type]
	if !ok {
		return fmt.Errorf("%w: %s", queueservice.ErrUnknownType, n.Type)
	}

	payload, err := queueservice.Decode(n.Type, n.Data)
	if err != nil {
		return err
	}
	return h(ctx, payload)
}

// typed adapts a handler for one payload type.
func typed[T domain.Payload](fn func(context.Context, T) error) Handler {
	return func(ctx context.Context, payload domain.Payload) error {
		p, ok := payload.(T)
		if !ok {
			return fmt.Errorf("%w: unexpected %T", domain.ErrMalformedPayload, payload)
		}
		return fn(ctx, p)
	}
}
