package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/payrelay/internal/pkg/middleware"
)

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/payment")

	createLimiter := middleware.IPRateLimiter(h.cfg.RateLimit.CreatePerMinute, time.Minute, h.redisClient)
	api.POST("/create", h.paymentHTTP.CreatePayment, createLimiter)

	// Upstream callbacks
	api.POST("/callback", h.paymentHTTP.StatusCallback, middleware.VerifySignature(h.cfg.Callback.Secret))
	api.POST("/lock", h.paymentHTTP.LockItems)
	api.POST("/unlock", h.paymentHTTP.UnlockItems)

	api.POST("/finalize", h.paymentHTTP.FinalizePayment, middleware.ValidateAPIKey(h.cfg.APIKey.PaymentService))
	api.GET("/:id", h.paymentHTTP.GetPayment)
}
