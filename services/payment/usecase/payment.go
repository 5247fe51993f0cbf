package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/piresc/payrelay/internal/pkg/logger"
	"github.com/piresc/payrelay/internal/pkg/models"
	nr "github.com/piresc/payrelay/internal/pkg/newrelic"
	"github.com/piresc/payrelay/internal/utils"
	"github.com/piresc/payrelay/services/payment"
)

const (
	defaultPGType       = models.PGTypeCrypto
	defaultCurrencyCode = "KAIROS"
	defaultItemImageURL = "https://placehold.co/150"
	callbackPath        = "/api/payment/callback"
)

var (
	// errTransitionRejected aborts a ledger update whose transition the table forbids
	errTransitionRejected = errors.New("transition rejected")
	// errAwaitingFinalize aborts a ledger update for a CONFIRMED redelivery so finalize can be retried
	errAwaitingFinalize = errors.New("payment awaiting finalize")
)

// Option configures the payment use case
type Option func(*paymentUC)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(uc *paymentUC) {
		uc.now = now
	}
}

type paymentUC struct {
	cfg    *models.Config
	repo   payment.PaymentRepo
	gw     payment.PaymentGW
	events payment.EventGW
	now    func() time.Time
}

// NewPaymentUC creates the payment lifecycle controller
func NewPaymentUC(
	cfg *models.Config,
	repo payment.PaymentRepo,
	gw payment.PaymentGW,
	events payment.EventGW,
	opts ...Option,
) payment.PaymentUC {
	uc := &paymentUC{
		cfg:    cfg,
		repo:   repo,
		gw:     gw,
		events: events,
		now:    models.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// CreatePayment builds the upstream request, creates the payment upstream and records it as PENDING
func (uc *paymentUC) CreatePayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.CreatePaymentResult, error) {
	upstreamReq, err := uc.buildUpstreamRequest(req)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Creating payment",
		logger.String("buyer", upstreamReq.BuyerDappPortalAddress),
		logger.String("pg_type", upstreamReq.PGType),
		logger.String("currency", upstreamReq.CurrencyCode),
		logger.String("price", upstreamReq.Price),
		logger.Int("items", len(upstreamReq.Items)),
		logger.Bool("test_mode", upstreamReq.TestMode))

	result, err := nr.WithSegmentAndReturn(ctx, "PaymentGW/CreatePayment", func() (*models.CreatePaymentResult, error) {
		return uc.gw.CreatePayment(ctx, upstreamReq)
	})
	if err != nil {
		return nil, err
	}

	if _, err := uc.RecordCreated(ctx, result.ID, result.Raw); err != nil {
		return nil, fmt.Errorf("failed to record payment %s: %w", result.ID, err)
	}

	return result, nil
}

func (uc *paymentUC) buildUpstreamRequest(req *models.CreatePaymentRequest) (*models.UpstreamCreateRequest, error) {
	if req.BuyerDappPortalAddress == "" || req.Items == nil || req.Price == "" {
		return nil, fmt.Errorf("%w: missing required fields: buyerDappPortalAddress, items, price", payment.ErrInvalidRequest)
	}
	if v, err := req.Price.Float64(); err == nil && v <= 0 {
		return nil, fmt.Errorf("%w: price must be greater than zero", payment.ErrInvalidRequest)
	}

	pgType := req.PGType
	if pgType == "" {
		pgType = defaultPGType
	}
	currency := req.CurrencyCode
	if currency == "" {
		currency = defaultCurrencyCode
	}
	testMode := true
	if req.TestMode != nil {
		testMode = *req.TestMode
	}

	price, err := utils.FormatPrice(req.Price.String(), currency, pgType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrInvalidRequest, err)
	}

	items := make([]models.PaymentItem, 0, len(req.Items))
	for _, item := range req.Items {
		itemCurrency := item.CurrencyCode
		if itemCurrency == "" {
			itemCurrency = currency
		}
		imageURL := item.ImageURL
		if imageURL == "" {
			imageURL = defaultItemImageURL
		}
		itemPrice, err := utils.FormatPrice(item.Price.String(), itemCurrency, pgType)
		if err != nil {
			return nil, fmt.Errorf("%w: item %q: %v", payment.ErrInvalidRequest, item.ItemIdentifier, err)
		}

		items = append(items, models.PaymentItem{
			ItemIdentifier: item.ItemIdentifier,
			Name:           item.Name,
			ImageURL:       imageURL,
			Price:          itemPrice,
			CurrencyCode:   itemCurrency,
		})
	}

	serverURL := strings.TrimRight(uc.cfg.Callback.ServerURL, "/")
	if serverURL == "" || strings.Contains(serverURL, "localhost") || strings.Contains(serverURL, "127.0.0.1") {
		return nil, payment.ErrCallbackURLNotPublic
	}

	return &models.UpstreamCreateRequest{
		BuyerDappPortalAddress:         req.BuyerDappPortalAddress,
		PGType:                         pgType,
		CurrencyCode:                   currency,
		Price:                          price,
		PaymentStatusChangeCallbackURL: serverURL + callbackPath,
		Items:                          items,
		TestMode:                       testMode,
	}, nil
}

// RecordCreated inserts a new PENDING ledger entry
func (uc *paymentUC) RecordCreated(ctx context.Context, id string, upstream []byte) (*models.Payment, error) {
	now := uc.now()
	p := &models.Payment{
		ID:        id,
		Status:    models.PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if len(upstream) > 0 {
		p.Upstream = append([]byte(nil), upstream...)
	}

	if err := uc.repo.Insert(ctx, p); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Payment recorded", logger.String("payment_id", id))
	uc.publish(ctx, uc.events.PublishPaymentCreated, models.PaymentEvent{
		PaymentID:  id,
		Status:     p.Status,
		OccurredAt: now,
	})

	return p, nil
}

// ApplyStatusChange applies an upstream status notification.
// Unknown ids and forbidden transitions succeed without changing anything.
// A CONFIRMED delivery for a record still CONFIRMED retries the finalize.
func (uc *paymentUC) ApplyStatusChange(ctx context.Context, id string, status models.PaymentStatus) (models.TransitionOutcome, error) {
	var previous models.PaymentStatus
	updated, err := uc.repo.Update(ctx, id, func(p *models.Payment) error {
		previous = p.Status
		if p.Status == models.PaymentStatusConfirmed && status == models.PaymentStatusConfirmed {
			return errAwaitingFinalize
		}
		if !CanTransition(p.Status, status) {
			return errTransitionRejected
		}
		now := uc.now()
		p.Status = status
		p.UpdatedAt = now
		if status == models.PaymentStatusFinalized {
			p.FinalizedAt = &now
		}
		return nil
	})

	switch {
	case errors.Is(err, payment.ErrNotFound):
		logger.WarnCtx(ctx, "Status change for unknown payment discarded",
			logger.String("payment_id", id),
			logger.String("to", string(status)))
		return models.TransitionUnknownPayment, nil
	case errors.Is(err, errTransitionRejected):
		logger.InfoCtx(ctx, "Status change rejected",
			logger.String("payment_id", id),
			logger.String("from", string(previous)),
			logger.String("to", string(status)),
			logger.Bool("terminal", IsTerminal(previous)))
		return models.TransitionRejected, nil
	case errors.Is(err, errAwaitingFinalize):
		logger.InfoCtx(ctx, "CONFIRMED redelivered, retrying finalize", logger.String("payment_id", id))
		return uc.autoFinalize(ctx, id, models.TransitionRejected), nil
	case err != nil:
		return "", fmt.Errorf("failed to apply status change for %s: %w", id, err)
	}

	logger.InfoCtx(ctx, "Payment status changed",
		logger.String("payment_id", id),
		logger.String("from", string(previous)),
		logger.String("to", string(status)))
	uc.publish(ctx, uc.events.PublishStatusChanged, models.PaymentEvent{
		PaymentID:      id,
		Status:         updated.Status,
		PreviousStatus: previous,
		OccurredAt:     updated.UpdatedAt,
	})

	if updated.Status != models.PaymentStatusConfirmed {
		return models.TransitionApplied, nil
	}
	return uc.autoFinalize(ctx, id, models.TransitionApplied), nil
}

// autoFinalize finalizes a CONFIRMED payment and reports notFinalized when it
// stays CONFIRMED or another caller finalized it first
func (uc *paymentUC) autoFinalize(ctx context.Context, id string, notFinalized models.TransitionOutcome) models.TransitionOutcome {
	_, finalizedHere, err := uc.finalize(ctx, id)
	if err != nil {
		logger.ErrorCtx(ctx, "Automatic finalize failed, payment stays CONFIRMED",
			logger.String("payment_id", id),
			logger.Err(err))
		return notFinalized
	}
	if !finalizedHere {
		return notFinalized
	}
	return models.TransitionFinalized
}

// FinalizeManually finalizes a CONFIRMED payment on request
func (uc *paymentUC) FinalizeManually(ctx context.Context, id string) (*models.FinalizeResult, error) {
	current, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != models.PaymentStatusConfirmed {
		logger.InfoCtx(ctx, "Manual finalize refused",
			logger.String("payment_id", id),
			logger.String("status", string(current.Status)))
		return nil, fmt.Errorf("%w: status is %s", payment.ErrInvalidState, current.Status)
	}

	result, _, err := uc.finalize(ctx, id)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// finalize calls the gateway outside the ledger critical section, then commits
// CONFIRMED->FINALIZED. finalizedHere is false when another caller moved the
// record off CONFIRMED while the gateway call was in flight.
func (uc *paymentUC) finalize(ctx context.Context, id string) (*models.FinalizeResult, bool, error) {
	result, err := nr.WithSegmentAndReturn(ctx, "PaymentGW/FinalizePayment", func() (*models.FinalizeResult, error) {
		return uc.gw.FinalizePayment(ctx, id)
	})
	if err != nil {
		return nil, false, err
	}

	var previous models.PaymentStatus
	updated, err := uc.repo.Update(ctx, id, func(p *models.Payment) error {
		previous = p.Status
		if !CanTransition(p.Status, models.PaymentStatusFinalized) {
			return errTransitionRejected
		}
		now := uc.now()
		p.Status = models.PaymentStatusFinalized
		p.UpdatedAt = now
		p.FinalizedAt = &now
		return nil
	})
	if errors.Is(err, errTransitionRejected) {
		logger.WarnCtx(ctx, "Payment left CONFIRMED during finalize",
			logger.String("payment_id", id),
			logger.String("status", string(previous)))
		return result, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to record finalize for %s: %w", id, err)
	}

	logger.InfoCtx(ctx, "Payment finalized", logger.String("payment_id", id))
	uc.publish(ctx, uc.events.PublishPaymentFinalized, models.PaymentEvent{
		PaymentID:      id,
		Status:         updated.Status,
		PreviousStatus: previous,
		OccurredAt:     *updated.FinalizedAt,
	})

	return result, true, nil
}

// QueryStatus returns the current record
func (uc *paymentUC) QueryStatus(ctx context.Context, id string) (*models.Payment, error) {
	return uc.repo.Get(ctx, id)
}

// LockItems acknowledges an item lock request
func (uc *paymentUC) LockItems(ctx context.Context, req *models.ItemLockRequest) error {
	logger.InfoCtx(ctx, "Item lock requested",
		logger.String("payment_id", req.ID),
		logger.Int("items", len(req.Items)))
	return nil
}

// UnlockItems acknowledges an item unlock request
func (uc *paymentUC) UnlockItems(ctx context.Context, req *models.ItemLockRequest) error {
	logger.InfoCtx(ctx, "Item unlock requested",
		logger.String("payment_id", req.ID),
		logger.Int("items", len(req.Items)))
	return nil
}

// publish never fails the lifecycle operation
func (uc *paymentUC) publish(ctx context.Context, fn func(context.Context, models.PaymentEvent) error, event models.PaymentEvent) {
	if err := fn(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish payment event",
			logger.String("payment_id", event.PaymentID),
			logger.String("status", string(event.Status)),
			logger.Err(err))
	}
}
