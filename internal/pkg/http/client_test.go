package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/piresc/payrelay/internal/pkg/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name            string
		config          Config
		expectedBaseURL string
		expectedTimeout time.Duration
	}{
		{
			name:            "Valid configuration",
			config:          Config{BaseURL: "https://api.example.com", Timeout: 10 * time.Second},
			expectedBaseURL: "https://api.example.com",
			expectedTimeout: 10 * time.Second,
		},
		{
			name:            "Trailing slash is trimmed",
			config:          Config{BaseURL: "https://api.example.com/"},
			expectedBaseURL: "https://api.example.com",
			expectedTimeout: DefaultTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.config)

			assert.Equal(t, tt.expectedBaseURL, client.baseURL)
			assert.Equal(t, tt.expectedTimeout, client.httpClient.Timeout)
		})
	}
}

func TestClient_PostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payment/create", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "client-id", r.Header.Get("X-Client-Id"))

		body, _ := io.ReadAll(r.Body)
		var payload map[string]string
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "bar", payload["foo"])

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"P1"}`))
	}))
	defer server.Close()

	client := NewClient(Config{
		BaseURL: server.URL,
		Headers: map[string]string{"X-Client-Id": "client-id"},
	})

	resp, err := client.PostJSON(context.Background(), "/payment/create", map[string]string{"foo": "bar"})

	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
	assert.JSONEq(t, `{"id":"P1"}`, string(resp.Body))
}

func TestClient_NonSuccessStatusIsNotAnError(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "client error", status: http.StatusBadRequest},
		{name: "server error", status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"message":"nope"}`))
			}))
			defer server.Close()

			resp, err := NewClient(Config{BaseURL: server.URL}).PostJSON(context.Background(), "/x", nil)

			require.NoError(t, err)
			assert.False(t, resp.IsSuccess())
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, string(resp.Body), "nope")
		})
	}
}

func TestClient_BreakerOpensOnServerErrors(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := circuitbreaker.DefaultConfig("payment-api")
	cfg.FailureThreshold = 2
	breaker := circuitbreaker.New(cfg, nil)
	client := NewClient(Config{BaseURL: server.URL, Breaker: breaker})

	for i := 0; i < 2; i++ {
		resp, err := client.PostJSON(context.Background(), "/api/payments", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	}

	_, err := client.PostJSON(context.Background(), "/api/payments", nil)
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitBreakerOpen)
	assert.Equal(t, 2, calls)
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(Config{BaseURL: url, Timeout: time.Second}).PostJSON(context.Background(), "/x", struct{}{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}
