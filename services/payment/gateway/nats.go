package gateway

import (
	"context"
	"errors"

	"github.com/nats-io/nats.go"

	"github.com/piresc/payrelay/internal/pkg/constants"
	"github.com/piresc/payrelay/internal/pkg/models"
	natspkg "github.com/piresc/payrelay/internal/pkg/nats"
	"github.com/piresc/payrelay/internal/pkg/retry"
	"github.com/piresc/payrelay/services/payment"
)

// EventGW publishes payment events to NATS
type EventGW struct {
	natsClient *natspkg.Client
	retrier    *retry.Retrier
}

// NewEventGW creates a NATS event gateway
func NewEventGW(client *natspkg.Client, retrier *retry.Retrier) payment.EventGW {
	if retrier == nil {
		retrier = retry.NewWithDefaults(nil)
	}
	return &EventGW{
		natsClient: client,
		retrier:    retrier,
	}
}

// PublishPaymentCreated publishes to payment.created
func (g *EventGW) PublishPaymentCreated(ctx context.Context, event models.PaymentEvent) error {
	return g.publish(ctx, constants.SubjectPaymentCreated, event)
}

// PublishStatusChanged publishes to payment.status_changed
func (g *EventGW) PublishStatusChanged(ctx context.Context, event models.PaymentEvent) error {
	return g.publish(ctx, constants.SubjectPaymentStatusChanged, event)
}

// PublishPaymentFinalized publishes to payment.finalized
func (g *EventGW) PublishPaymentFinalized(ctx context.Context, event models.PaymentEvent) error {
	return g.publish(ctx, constants.SubjectPaymentFinalized, event)
}

func (g *EventGW) publish(ctx context.Context, subject string, event models.PaymentEvent) error {
	return g.retrier.Execute(ctx, func(ctx context.Context) error {
		err := g.natsClient.PublishJSON(subject, event)
		if errors.Is(err, nats.ErrConnectionClosed) {
			return retry.Permanent(err)
		}
		return err
	})
}

type nopEventGW struct{}

// NewNopEventGW returns a publisher that drops every event
func NewNopEventGW() payment.EventGW {
	return nopEventGW{}
}

func (nopEventGW) PublishPaymentCreated(context.Context, models.PaymentEvent) error   { return nil }
func (nopEventGW) PublishStatusChanged(context.Context, models.PaymentEvent) error    { return nil }
func (nopEventGW) PublishPaymentFinalized(context.Context, models.PaymentEvent) error { return nil }
