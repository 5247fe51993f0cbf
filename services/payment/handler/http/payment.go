package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/payrelay/internal/pkg/logger"
	"github.com/piresc/payrelay/internal/pkg/models"
	nr "github.com/piresc/payrelay/internal/pkg/newrelic"
	"github.com/piresc/payrelay/internal/utils"
	"github.com/piresc/payrelay/services/payment"
)

// PaymentHandler serves the payment relay HTTP API
type PaymentHandler struct {
	paymentUC payment.PaymentUC
}

// NewPaymentHandler creates a new payment HTTP handler
func NewPaymentHandler(paymentUC payment.PaymentUC) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: paymentUC,
	}
}

// CreatePayment creates a payment upstream and records it.
// The upstream response is returned as the body unchanged.
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	nr.SetTransactionName(nr.FromEchoContext(c), "POST /api/payment/create")

	var req models.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request format")
	}

	result, err := h.paymentUC.CreatePayment(c.Request().Context(), &req)
	if err != nil {
		return h.writeCreateError(c, err)
	}

	nr.AddTransactionAttribute(nr.FromEchoContext(c), "payment_id", result.ID)
	return c.JSON(http.StatusOK, upstreamBody(result.Raw, result))
}

func (h *PaymentHandler) writeCreateError(c echo.Context, err error) error {
	var gwErr *models.GatewayError
	switch {
	case errors.Is(err, payment.ErrCallbackURLNotPublic):
		logger.ErrorCtx(c.Request().Context(), "SERVER_URL is not publicly accessible, upstream callbacks would never arrive")
		return utils.MisconfigurationResponse(c,
			"Invalid SERVER_URL: must be publicly accessible",
			"Cannot use localhost for callback URLs. Use ngrok or similar service.",
			"Set SERVER_URL environment variable to a public URL (e.g., ngrok HTTPS URL)")
	case errors.Is(err, payment.ErrInvalidRequest):
		return utils.BadRequestResponse(c, err.Error())
	case errors.As(err, &gwErr):
		logger.ErrorCtx(c.Request().Context(), "Payment creation failed",
			logger.Int("upstream_status", gwErr.StatusCode),
			logger.String("details", gwErr.Body))
		return utils.DetailedErrorResponse(c, gwErr.StatusCode, "Failed to create payment", gwErr.Body)
	default:
		logger.ErrorCtx(c.Request().Context(), "Error creating payment", logger.Err(err))
		nr.NoticeTransactionError(nr.FromEchoContext(c), err)
		return utils.InternalServerErrorResponse(c, "Internal server error")
	}
}

// StatusCallback receives upstream status-change notifications.
// It always answers success so the upstream does not redeliver.
func (h *PaymentHandler) StatusCallback(c echo.Context) error {
	txn := nr.FromEchoContext(c)
	nr.SetTransactionName(txn, "POST /api/payment/callback")
	ctx := c.Request().Context()

	var req models.StatusCallback
	if err := c.Bind(&req); err != nil {
		logger.WarnCtx(ctx, "Malformed payment callback ignored", logger.Err(err))
		return utils.Ack(c)
	}
	if req.PaymentID == "" || req.Status == "" {
		logger.WarnCtx(ctx, "Payment callback without paymentId or status ignored",
			logger.String("payment_id", req.PaymentID),
			logger.String("status", string(req.Status)))
		return utils.Ack(c)
	}

	outcome, err := h.paymentUC.ApplyStatusChange(ctx, req.PaymentID, req.Status)
	if err != nil {
		logger.ErrorCtx(ctx, "Failed to apply payment callback",
			logger.String("payment_id", req.PaymentID),
			logger.String("status", string(req.Status)),
			logger.Err(err))
		nr.NoticeTransactionError(txn, err)
		return utils.Ack(c)
	}

	nr.AddTransactionAttribute(txn, "payment_id", req.PaymentID)
	nr.AddTransactionAttribute(txn, "transition_outcome", string(outcome))
	return utils.Ack(c)
}

// LockItems acknowledges the upstream item lock callback
func (h *PaymentHandler) LockItems(c echo.Context) error {
	nr.SetTransactionName(nr.FromEchoContext(c), "POST /api/payment/lock")

	var req models.ItemLockRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request format")
	}
	if err := h.paymentUC.LockItems(c.Request().Context(), &req); err != nil {
		return utils.InternalServerErrorResponse(c, err.Error())
	}
	return utils.Ack(c)
}

// UnlockItems acknowledges the upstream item unlock callback
func (h *PaymentHandler) UnlockItems(c echo.Context) error {
	nr.SetTransactionName(nr.FromEchoContext(c), "POST /api/payment/unlock")

	var req models.ItemLockRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request format")
	}
	if err := h.paymentUC.UnlockItems(c.Request().Context(), &req); err != nil {
		return utils.InternalServerErrorResponse(c, err.Error())
	}
	return utils.Ack(c)
}

// FinalizePayment finalizes a CONFIRMED payment on request
func (h *PaymentHandler) FinalizePayment(c echo.Context) error {
	txn := nr.FromEchoContext(c)
	nr.SetTransactionName(txn, "POST /api/payment/finalize")

	var req models.FinalizeRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request format")
	}
	if req.PaymentID == "" {
		return utils.BadRequestResponse(c, "paymentId is required")
	}
	nr.AddTransactionAttribute(txn, "payment_id", req.PaymentID)

	ctx := c.Request().Context()
	result, err := h.paymentUC.FinalizeManually(ctx, req.PaymentID)
	if err == nil {
		return c.JSON(http.StatusOK, upstreamBody(result.Raw, result))
	}

	var gwErr *models.GatewayError
	switch {
	case errors.Is(err, payment.ErrNotFound):
		return utils.NotFoundResponse(c, "Payment not found")
	case errors.Is(err, payment.ErrInvalidState):
		return utils.ConflictResponse(c, err.Error())
	case errors.As(err, &gwErr) && gwErr.IsInvalidStatus():
		return utils.DetailedErrorResponse(c, http.StatusConflict, "Failed to finalize payment", gwErr.Body)
	case errors.As(err, &gwErr):
		logger.ErrorCtx(ctx, "Payment finalization failed",
			logger.String("payment_id", req.PaymentID),
			logger.Int("upstream_status", gwErr.StatusCode),
			logger.String("details", gwErr.Body))
		return utils.DetailedErrorResponse(c, gwErr.StatusCode, "Failed to finalize payment", gwErr.Body)
	default:
		logger.ErrorCtx(ctx, "Error finalizing payment",
			logger.String("payment_id", req.PaymentID),
			logger.Err(err))
		nr.NoticeTransactionError(txn, err)
		return utils.InternalServerErrorResponse(c, "Internal server error")
	}
}

// GetPayment returns the ledger record for an id
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	nr.SetTransactionName(nr.FromEchoContext(c), "GET /api/payment/:id")

	id := c.Param("id")
	if id == "" {
		return utils.BadRequestResponse(c, "Payment ID is required")
	}

	p, err := h.paymentUC.QueryStatus(c.Request().Context(), id)
	if errors.Is(err, payment.ErrNotFound) {
		return utils.NotFoundResponse(c, "Payment not found")
	}
	if err != nil {
		logger.ErrorCtx(c.Request().Context(), "Failed to query payment",
			logger.String("payment_id", id),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to query payment")
	}

	return c.JSON(http.StatusOK, p)
}

// upstreamBody prefers the verbatim upstream JSON over the decoded struct
func upstreamBody(raw json.RawMessage, fallback interface{}) interface{} {
	if len(raw) > 0 && json.Valid(raw) {
		return raw
	}
	return fallback
}
