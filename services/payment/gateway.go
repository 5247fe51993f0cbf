package payment

import (
	"context"

	"github.com/piresc/payrelay/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/payrelay/services/payment PaymentGW,EventGW

// PaymentGW talks to the upstream payment API
type PaymentGW interface {
	CreatePayment(ctx context.Context, req *models.UpstreamCreateRequest) (*models.CreatePaymentResult, error)
	FinalizePayment(ctx context.Context, paymentID string) (*models.FinalizeResult, error)
}

// EventGW publishes payment lifecycle events
type EventGW interface {
	PublishPaymentCreated(ctx context.Context, event models.PaymentEvent) error
	PublishStatusChanged(ctx context.Context, event models.PaymentEvent) error
	PublishPaymentFinalized(ctx context.Context, event models.PaymentEvent) error
}
