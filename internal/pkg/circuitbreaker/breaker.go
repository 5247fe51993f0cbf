package circuitbreaker

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/piresc/payrelay/internal/pkg/logger"
)

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

var (
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
	ErrTooManyRequests    = errors.New("too many requests in half-open state")
)

// Config holds circuit breaker configuration
type Config struct {
	Name string
	// FailureThreshold consecutive failures open the breaker
	FailureThreshold uint32
	// Timeout is how long the breaker stays open before letting probes through
	Timeout time.Duration
	// HalfOpenProbes is the number of concurrent calls allowed while half-open
	HalfOpenProbes uint32
	// IsFailure decides whether an error counts against the upstream
	IsFailure func(err error) bool
}

// DefaultConfig returns the configuration used for the upstream payment API
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		FailureThreshold: 5,
		Timeout:          60 * time.Second,
		HalfOpenProbes:   1,
		IsFailure:        upstreamFailure,
	}
}

// upstreamFailure ignores errors caused by the caller giving up
func upstreamFailure(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}

// CircuitBreaker stops calling an upstream after repeated failures
type CircuitBreaker struct {
	config Config
	logger *logger.ZapLogger
	now    func() time.Time

	mu                  sync.Mutex
	state               State
	openedAt            time.Time
	inFlightProbes      uint32
	consecutiveFailures uint32
}

// New creates a closed circuit breaker
func New(config Config, l *logger.ZapLogger) *CircuitBreaker {
	if config.IsFailure == nil {
		config.IsFailure = upstreamFailure
	}
	if config.HalfOpenProbes == 0 {
		config.HalfOpenProbes = 1
	}
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &CircuitBreaker{
		config: config,
		logger: l,
		now:    time.Now,
	}
}

// Execute runs fn unless the breaker is open
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	probe, err := cb.admit()
	if err != nil {
		return err
	}

	err = fn(ctx)
	cb.record(probe, cb.config.IsFailure(err))
	return err
}

func (cb *CircuitBreaker) admit() (bool, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if cb.now().Sub(cb.openedAt) < cb.config.Timeout {
			return false, ErrCircuitBreakerOpen
		}
		cb.transition(StateHalfOpen)
	}

	if cb.state == StateHalfOpen {
		if cb.inFlightProbes >= cb.config.HalfOpenProbes {
			return false, ErrTooManyRequests
		}
		cb.inFlightProbes++
		return true, nil
	}

	return false, nil
}

func (cb *CircuitBreaker) record(probe, failed bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if probe && cb.inFlightProbes > 0 {
		cb.inFlightProbes--
	}

	if !failed {
		cb.consecutiveFailures = 0
		if cb.state == StateHalfOpen {
			cb.transition(StateClosed)
		}
		return
	}

	cb.consecutiveFailures++
	if cb.state == StateHalfOpen || cb.consecutiveFailures >= cb.config.FailureThreshold {
		cb.transition(StateOpen)
	}
}

// transition must be called with mu held
func (cb *CircuitBreaker) transition(to State) {
	if cb.state == to {
		return
	}
	from := cb.state
	cb.state = to
	switch to {
	case StateOpen:
		cb.openedAt = cb.now()
	case StateHalfOpen:
		cb.inFlightProbes = 0
	}

	cb.logger.Info("Circuit breaker state changed",
		logger.String("name", cb.config.Name),
		logger.String("from", from.String()),
		logger.String("to", to.String()),
		logger.Uint32("consecutive_failures", cb.consecutiveFailures))
}

// State returns the current state
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Manager keeps the named circuit breakers of the process
type Manager struct {
	mu       sync.RWMutex
	breakers map[string]*CircuitBreaker
	logger   *logger.ZapLogger
}

// NewManager creates an empty manager
func NewManager(l *logger.ZapLogger) *Manager {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Manager{
		breakers: make(map[string]*CircuitBreaker),
		logger:   l,
	}
}

// GetOrCreate returns the breaker registered under config.Name, creating it on first use
func (m *Manager) GetOrCreate(config Config) *CircuitBreaker {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cb, ok := m.breakers[config.Name]; ok {
		return cb
	}
	cb := New(config, m.logger)
	m.breakers[config.Name] = cb

	m.logger.Info("Circuit breaker registered",
		logger.String("name", config.Name),
		logger.Uint32("failure_threshold", config.FailureThreshold),
		logger.Duration("timeout", config.Timeout))
	return cb
}

// Open returns the sorted names of breakers that are currently open
func (m *Manager) Open() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var open []string
	for name, cb := range m.breakers {
		if cb.State() == StateOpen {
			open = append(open, name)
		}
	}
	sort.Strings(open)
	return open
}
