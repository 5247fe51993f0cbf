package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySignature(t *testing.T) {
	const secret = "callback-secret"
	const body = `{"paymentId":"P1","status":"CONFIRMED"}`

	tests := []struct {
		name           string
		secret         string
		signature      string
		expectedStatus int
	}{
		{name: "open without secret", secret: "", signature: "", expectedStatus: http.StatusOK},
		{name: "valid signature", secret: secret, signature: Sign(secret, []byte(body)), expectedStatus: http.StatusOK},
		{name: "valid prefixed signature", secret: secret, signature: "sha256=" + Sign(secret, []byte(body)), expectedStatus: http.StatusOK},
		{name: "missing signature", secret: secret, signature: "", expectedStatus: http.StatusUnauthorized},
		{name: "wrong signature", secret: secret, signature: Sign("other", []byte(body)), expectedStatus: http.StatusUnauthorized},
		{name: "non hex signature", secret: secret, signature: "zz", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/payment/callback", strings.NewReader(body))
			if tt.signature != "" {
				req.Header.Set(SignatureHeader, tt.signature)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var handlerBody string
			err := VerifySignature(tt.secret)(func(c echo.Context) error {
				b, _ := io.ReadAll(c.Request().Body)
				handlerBody = string(b)
				return c.NoContent(http.StatusOK)
			})(c)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, body, handlerBody)
			}
		})
	}
}
