package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/piresc/payrelay/internal/pkg/circuitbreaker"
	httpclient "github.com/piresc/payrelay/internal/pkg/http"
	"github.com/piresc/payrelay/internal/pkg/logger"
	"github.com/piresc/payrelay/internal/pkg/models"
	"github.com/piresc/payrelay/services/payment"
)

// Upstream credential headers
const (
	HeaderClientID     = "X-Client-Id"
	HeaderClientSecret = "X-Client-Secret"
)

// Upstream operations
const (
	OperationCreate   = "create"
	OperationFinalize = "finalize"
)

// PaymentAPIGW calls the upstream payment API
type PaymentAPIGW struct {
	client *httpclient.Client
}

// NewPaymentAPIGW creates the upstream gateway. breaker may be nil.
func NewPaymentAPIGW(cfg models.PaymentAPIConfig, breaker *circuitbreaker.CircuitBreaker) payment.PaymentGW {
	return &PaymentAPIGW{
		client: httpclient.NewClient(httpclient.Config{
			BaseURL: cfg.BaseURL,
			Timeout: time.Duration(cfg.Timeout) * time.Second,
			Headers: map[string]string{
				HeaderClientID:     cfg.ClientID,
				HeaderClientSecret: cfg.ClientSecret,
			},
			Breaker: breaker,
		}),
	}
}

// CreatePayment posts a new payment to the upstream API
func (g *PaymentAPIGW) CreatePayment(ctx context.Context, req *models.UpstreamCreateRequest) (*models.CreatePaymentResult, error) {
	body, err := g.post(ctx, OperationCreate, "/payment/create", req)
	if err != nil {
		return nil, err
	}

	var result models.CreatePaymentResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode create response: %w", err)
	}
	if result.ID == "" {
		return nil, &models.GatewayError{
			Operation:  OperationCreate,
			StatusCode: http.StatusBadGateway,
			Body:       "upstream response has no payment id",
		}
	}
	result.Raw = json.RawMessage(body)

	return &result, nil
}

// FinalizePayment asks the upstream API to settle a confirmed payment
func (g *PaymentAPIGW) FinalizePayment(ctx context.Context, paymentID string) (*models.FinalizeResult, error) {
	body, err := g.post(ctx, OperationFinalize, "/payment/finalize", map[string]string{"id": paymentID})
	if err != nil {
		return nil, err
	}

	result := models.FinalizeResult{ID: paymentID}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &result); err != nil {
			logger.WarnCtx(ctx, "Finalize response is not JSON",
				logger.String("payment_id", paymentID),
				logger.Err(err))
		}
		result.Raw = json.RawMessage(body)
	}
	if result.ID == "" {
		result.ID = paymentID
	}

	return &result, nil
}

// post maps every failure to *models.GatewayError
func (g *PaymentAPIGW) post(ctx context.Context, operation, endpoint string, payload interface{}) ([]byte, error) {
	resp, err := g.client.PostJSON(ctx, endpoint, payload)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, circuitbreaker.ErrCircuitBreakerOpen) || errors.Is(err, circuitbreaker.ErrTooManyRequests) {
			status = http.StatusServiceUnavailable
		}
		return nil, &models.GatewayError{Operation: operation, StatusCode: status, Body: err.Error()}
	}

	if !resp.IsSuccess() {
		logger.WarnCtx(ctx, "Payment API rejected request",
			logger.String("operation", operation),
			logger.Int("status_code", resp.StatusCode),
			logger.String("body", string(resp.Body)))
		return nil, &models.GatewayError{Operation: operation, StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	return resp.Body, nil
}
