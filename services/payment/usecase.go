package payment

import (
	"context"

	"github.com/piresc/payrelay/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/payrelay/services/payment PaymentUC

// PaymentUC is the payment lifecycle controller
type PaymentUC interface {
	CreatePayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.CreatePaymentResult, error)
	RecordCreated(ctx context.Context, id string, upstream []byte) (*models.Payment, error)
	ApplyStatusChange(ctx context.Context, id string, status models.PaymentStatus) (models.TransitionOutcome, error)
	FinalizeManually(ctx context.Context, id string) (*models.FinalizeResult, error)
	QueryStatus(ctx context.Context, id string) (*models.Payment, error)
	LockItems(ctx context.Context, req *models.ItemLockRequest) error
	UnlockItems(ctx context.Context, req *models.ItemLockRequest) error
}
