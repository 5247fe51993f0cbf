package newrelic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_NilAppPassesThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := Middleware(nil)(func(c echo.Context) error {
		called = true
		assert.Nil(t, FromEchoContext(c))
		return c.NoContent(http.StatusNoContent)
	})(c)

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHelpers_NilTransactionAreNoOps(t *testing.T) {
	assert.NotPanics(t, func() {
		SetTransactionName(nil, "Payment.Create")
		AddTransactionAttribute(nil, "payment.id", "P1")
		NoticeTransactionError(nil, errors.New("boom"))
	})
}

func TestWithSegmentAndReturn_NoTransaction(t *testing.T) {
	got, err := WithSegmentAndReturn(context.Background(), "segment", func() (string, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestInstrumentHTTPRequest_NoTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := InstrumentHTTPRequest(context.Background(), req, func() (*http.Response, error) {
		return http.DefaultClient.Do(req)
	})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
}
