package config

import (
	"testing"

	"github.com/piresc/payrelay/internal/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	configs := loadConfigFromEnv()

	assert.Equal(t, "payment-service", configs.App.Name)
	assert.Equal(t, 3001, configs.Server.Port)
	assert.Equal(t, []string{"*"}, configs.Server.AllowedOrigins)
	assert.Equal(t, "https://payment.dappportal.io/api/payment-v1", configs.PaymentAPI.BaseURL)
	assert.Equal(t, 30, configs.PaymentAPI.Timeout)
	assert.Equal(t, models.LedgerBackendMemory, configs.Ledger.Backend)
	assert.Empty(t, configs.NATS.URL)
	assert.Empty(t, configs.Callback.Secret)
	assert.Zero(t, configs.RateLimit.CreatePerMinute)
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("CLIENT_ID", "client-id")
	t.Setenv("CLIENT_SECRET", "client-secret")
	t.Setenv("SERVER_URL", "https://relay.example.com")
	t.Setenv("CALLBACK_SECRET", "shh")
	t.Setenv("LEDGER_BACKEND", "Redis")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("RATE_LIMIT_CREATE_PER_MINUTE", "20")

	configs := loadConfigFromEnv()

	assert.Equal(t, 8080, configs.Server.Port)
	assert.Equal(t, "client-id", configs.PaymentAPI.ClientID)
	assert.Equal(t, "client-secret", configs.PaymentAPI.ClientSecret)
	assert.Equal(t, "https://relay.example.com", configs.Callback.ServerURL)
	assert.Equal(t, "shh", configs.Callback.Secret)
	assert.Equal(t, models.LedgerBackendRedis, configs.Ledger.Backend)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, configs.Server.AllowedOrigins)
	assert.Equal(t, 20, configs.RateLimit.CreatePerMinute)
}

func TestGetEnvAsInt_InvalidFallsBackToDefault(t *testing.T) {
	t.Setenv("TEST_INT", "not-a-number")
	assert.Equal(t, 42, GetEnvAsInt("TEST_INT", 42))
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "false")
	assert.False(t, GetEnvAsBool("TEST_BOOL", true))

	t.Setenv("TEST_BOOL", "maybe")
	assert.True(t, GetEnvAsBool("TEST_BOOL", true))
}

func TestGetEnvAsInt64(t *testing.T) {
	t.Setenv("TEST_INT64", "9000000000")
	assert.Equal(t, int64(9000000000), GetEnvAsInt64("TEST_INT64", 1))
}
