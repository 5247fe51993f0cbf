package logger

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := zap.New(core)
	return &ZapLogger{Logger: l}, logs
}

func TestNewZapLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "payment.log")

	zl, err := NewZapLogger(ZapConfig{Level: "debug", ServiceName: "payment-service", FilePath: path}, nil)
	require.NoError(t, err)

	zl.Info("hello", String("payment_id", "P1"))
	require.NoError(t, zl.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"payment_id":"P1"`)
	assert.Contains(t, string(data), `"service":"payment-service"`)
}

func TestNewZapLogger_InvalidLevelDefaultsToInfo(t *testing.T) {
	zl, err := NewZapLogger(ZapConfig{Level: "loud"}, nil)
	require.NoError(t, err)

	assert.False(t, zl.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, zl.Core().Enabled(zapcore.InfoLevel))
}

func TestGlobalLogger(t *testing.T) {
	zl, logs := newObservedLogger()
	SetGlobalLogger(zl)
	defer SetGlobalLogger(nil)

	Warn("rejected transition", String("from", "FINALIZED"), String("to", "CONFIRMED"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "FINALIZED", entry.ContextMap()["from"])
}

func TestGetGlobalLogger_FallbackWhenUnset(t *testing.T) {
	SetGlobalLogger(nil)
	assert.NotNil(t, GetGlobalLogger())
}

func TestZapEchoMiddleware(t *testing.T) {
	zl, logs := newObservedLogger()
	e := echo.New()

	tests := []struct {
		name      string
		handler   echo.HandlerFunc
		wantLevel zapcore.Level
		wantCode  int
	}{
		{
			name:      "success",
			handler:   func(c echo.Context) error { return c.NoContent(http.StatusOK) },
			wantLevel: zapcore.InfoLevel,
			wantCode:  http.StatusOK,
		},
		{
			name:      "client error",
			handler:   func(c echo.Context) error { return c.NoContent(http.StatusNotFound) },
			wantLevel: zapcore.WarnLevel,
			wantCode:  http.StatusNotFound,
		},
		{
			name:      "handler error",
			handler:   func(c echo.Context) error { return errors.New("boom") },
			wantLevel: zapcore.ErrorLevel,
			wantCode:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs.TakeAll()
			req := httptest.NewRequest(http.MethodGet, "/api/payment/P1?x=1", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := ZapEchoMiddleware(zl)(tt.handler)(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantCode, rec.Code)
			entries := logs.TakeAll()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0].Level)
			assert.Equal(t, "/api/payment/P1?x=1", entries[0].ContextMap()["path"])
		})
	}
}
