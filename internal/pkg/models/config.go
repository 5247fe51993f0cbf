package models

// Config represents application configuration
type Config struct {
	App        AppConfig
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	NATS       NATSConfig
	NewRelic   NewRelicConfig
	Logger     LoggerConfig
	APIKey     APIKeyConfig
	PaymentAPI PaymentAPIConfig
	Callback   CallbackConfig
	Ledger     LedgerConfig
	RateLimit  RateLimitConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
	AllowedOrigins  []string
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration.
// An empty URL disables event publishing.
type NATSConfig struct {
	URL string
}

// NewRelicConfig contains New Relic agent configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	LogsEnabled bool
	ForwardLogs bool
}

// LoggerConfig contains Zap logger configuration
type LoggerConfig struct {
	Level      string
	FilePath   string
	MaxSize    int64
	MaxAge     int
	MaxBackups int
	Compress   bool
	Type       string
}

// APIKeyConfig holds the key required on operator-only routes.
// Empty means the routes are open.
type APIKeyConfig struct {
	PaymentService string
}

// PaymentAPIConfig contains the upstream payment API credentials
type PaymentAPIConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      int // in seconds
}

// CallbackConfig contains settings for the status-change callback
type CallbackConfig struct {
	// ServerURL is the public base URL the upstream API calls back on.
	ServerURL string
	// Secret enables HMAC verification of callback bodies when set.
	Secret string
}

// LedgerConfig selects the payment ledger backend
type LedgerConfig struct {
	Backend string // memory, redis or postgres
}

// Ledger backends
const (
	LedgerBackendMemory   = "memory"
	LedgerBackendRedis    = "redis"
	LedgerBackendPostgres = "postgres"
)

// RateLimitConfig holds per-IP request limits. Zero disables a limit.
type RateLimitConfig struct {
	CreatePerMinute int
}
