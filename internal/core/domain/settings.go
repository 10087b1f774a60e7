package domain

import "time"

// PrefsBackend selects where the theme preference is persisted.
type PrefsBackend string

// Available preference backends.
const (
	// PrefsBackendFile stores preferences in config.toml.
	PrefsBackendFile PrefsBackend = "file"

	// PrefsBackendSQLite stores preferences in a SQLite database.
	PrefsBackendSQLite PrefsBackend = "sqlite"

	// PrefsBackendMemory keeps preferences for the session only.
	PrefsBackendMemory PrefsBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b PrefsBackend) IsValid() bool {
	switch b {
	case PrefsBackendFile, PrefsBackendSQLite, PrefsBackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b PrefsBackend) String() string {
	return string(b)
}

// Default client configuration values.
const (
	DefaultAPIURL        = "http://localhost:8000/triage"
	DefaultTimeout       = 30 * time.Second
	DefaultRatePerSecond = 5.0
	DefaultRateBurst     = 5

	// DefaultBreakerFailures is the number of consecutive failures that
	// open the circuit.
	DefaultBreakerFailures = 5

	// DefaultBreakerCooldown is how long an open circuit rejects requests.
	DefaultBreakerCooldown = 30 * time.Second

	// DefaultProcessor cleans extracted text before it is sent.
	DefaultProcessor = "cleanup"
)

// ClientSettings holds the configuration of the triage client.
type ClientSettings struct {
	// APIURL is the triage endpoint.
	APIURL string

	// Timeout bounds a single request, including time spent rate limited.
	Timeout time.Duration

	// RatePerSecond is the sustained outbound request rate.
	RatePerSecond float64

	// RateBurst is the maximum outbound burst.
	RateBurst int

	// Breaker enables the circuit breaker in front of the service.
	Breaker bool

	// BreakerFailures is the number of consecutive failures that open the circuit.
	BreakerFailures int

	// BreakerCooldown is how long the circuit stays open.
	BreakerCooldown time.Duration

	// Processors names the clean-up stages run on extracted text, in order.
	// An empty list sends the text as extracted.
	Processors []string

	// ReducedMotion disables the TUI entrance animation.
	ReducedMotion bool

	// PrefsBackend selects the preference store.
	PrefsBackend PrefsBackend
}

// DefaultClientSettings returns sensible defaults.
func DefaultClientSettings() ClientSettings {
	return ClientSettings{
		APIURL:          DefaultAPIURL,
		Timeout:         DefaultTimeout,
		RatePerSecond:   DefaultRatePerSecond,
		RateBurst:       DefaultRateBurst,
		BreakerFailures: DefaultBreakerFailures,
		BreakerCooldown: DefaultBreakerCooldown,
		Processors:      []string{DefaultProcessor},
		PrefsBackend:    PrefsBackendFile,
	}
}
