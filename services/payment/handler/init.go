package handler

import (
	"github.com/go-redis/redis/v8"
	"github.com/piresc/payrelay/internal/pkg/models"
	"github.com/piresc/payrelay/services/payment"
	httpHandler "github.com/piresc/payrelay/services/payment/handler/http"
)

// Handler combines all handlers for the payment service
type Handler struct {
	paymentHTTP *httpHandler.PaymentHandler
	cfg         *models.Config
	redisClient *redis.Client
}

// NewHandler creates a new combined handler.
// redisClient may be nil, which disables rate limiting.
func NewHandler(paymentUC payment.PaymentUC, cfg *models.Config, redisClient *redis.Client) *Handler {
	return &Handler{
		paymentHTTP: httpHandler.NewPaymentHandler(paymentUC),
		cfg:         cfg,
		redisClient: redisClient,
	}
}
