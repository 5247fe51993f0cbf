package payment

import (
	"context"

	"github.com/piresc/payrelay/internal/pkg/models"
)

// MutationFunc edits a payment inside an atomic read-modify-write.
// Returning an error aborts the update and nothing is written.
type MutationFunc func(p *models.Payment) error

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/payrelay/services/payment PaymentRepo

// PaymentRepo is the payment ledger
type PaymentRepo interface {
	Insert(ctx context.Context, p *models.Payment) error
	Get(ctx context.Context, id string) (*models.Payment, error)
	Update(ctx context.Context, id string, mutate MutationFunc) (*models.Payment, error)
}
