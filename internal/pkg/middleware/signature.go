package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/piresc/payrelay/internal/pkg/logger"
	"github.com/piresc/payrelay/internal/utils"
)

// SignatureHeader carries the hex HMAC-SHA256 of the request body
const SignatureHeader = "X-Signature"

// Sign returns the hex HMAC-SHA256 of body under secret
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks X-Signature against the raw body.
// An empty secret leaves the route open. The body is restored for the handler.
func VerifySignature(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if secret == "" {
			return next
		}
		return func(c echo.Context) error {
			req := c.Request()
			body, err := io.ReadAll(req.Body)
			if err != nil {
				return utils.BadRequestResponse(c, "Failed to read request body")
			}
			req.Body = io.NopCloser(bytes.NewReader(body))

			got, err := hex.DecodeString(strings.TrimPrefix(req.Header.Get(SignatureHeader), "sha256="))
			want, _ := hex.DecodeString(Sign(secret, body))
			if err != nil || !hmac.Equal(got, want) {
				logger.WarnCtx(req.Context(), "Rejected callback with invalid signature",
					logger.String("path", req.URL.Path),
					logger.String("client_ip", c.RealIP()))
				return utils.UnauthorizedResponse(c, "Invalid signature")
			}

			return next(c)
		}
	}
}
