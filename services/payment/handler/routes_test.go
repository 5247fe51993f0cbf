package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/piresc/payrelay/internal/pkg/middleware"
	"github.com/piresc/payrelay/internal/pkg/models"
	"github.com/piresc/payrelay/services/payment/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, cfg *models.Config, redisClient *redis.Client) (*echo.Echo, *mocks.MockPaymentUC) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockUC := mocks.NewMockPaymentUC(ctrl)
	e := echo.New()
	NewHandler(mockUC, cfg, redisClient).RegisterRoutes(e)
	return e, mockUC
}

func post(e *echo.Echo, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_CallbackSignature(t *testing.T) {
	cfg := &models.Config{Callback: models.CallbackConfig{Secret: "webhook-secret"}}
	e, mockUC := newServer(t, cfg, nil)
	body := `{"paymentId":"pay-1","status":"STARTED"}`

	rec := post(e, "/api/payment/callback", body, map[string]string{middleware.SignatureHeader: "deadbeef"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	mockUC.EXPECT().ApplyStatusChange(gomock.Any(), "pay-1", models.PaymentStatusStarted).Return(models.TransitionApplied, nil)

	rec = post(e, "/api/payment/callback", body, map[string]string{
		middleware.SignatureHeader: middleware.Sign("webhook-secret", []byte(body)),
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestRoutes_CallbackOpenWithoutSecret(t *testing.T) {
	e, mockUC := newServer(t, &models.Config{}, nil)
	mockUC.EXPECT().ApplyStatusChange(gomock.Any(), "pay-1", models.PaymentStatusCanceled).Return(models.TransitionApplied, nil)

	rec := post(e, "/api/payment/callback", `{"paymentId":"pay-1","status":"CANCELED"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_FinalizeRequiresAPIKey(t *testing.T) {
	cfg := &models.Config{APIKey: models.APIKeyConfig{PaymentService: "operator-key"}}
	e, mockUC := newServer(t, cfg, nil)

	rec := post(e, "/api/payment/finalize", `{"paymentId":"pay-1"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	mockUC.EXPECT().FinalizeManually(gomock.Any(), "pay-1").Return(&models.FinalizeResult{ID: "pay-1"}, nil)

	rec = post(e, "/api/payment/finalize", `{"paymentId":"pay-1"}`, map[string]string{middleware.APIKeyHeader: "operator-key"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_GetPayment(t *testing.T) {
	e, mockUC := newServer(t, &models.Config{}, nil)
	mockUC.EXPECT().QueryStatus(gomock.Any(), "pay-9").Return(&models.Payment{ID: "pay-9", Status: models.PaymentStatusPending}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/payment/pay-9", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"PENDING"`)
}

func TestRoutes_CreateRateLimited(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cfg := &models.Config{RateLimit: models.RateLimitConfig{CreatePerMinute: 1}}
	e, mockUC := newServer(t, cfg, client)
	mockUC.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(&models.CreatePaymentResult{ID: "pay-1"}, nil).Times(1)

	body := `{"buyerDappPortalAddress":"0xbuyer","price":"1","items":[]}`
	assert.Equal(t, http.StatusOK, post(e, "/api/payment/create", body, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, post(e, "/api/payment/create", body, nil).Code)
}
