package httpclient

import (
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/custodia-labs/minairva-cli/internal/core/domain"
	"github.com/custodia-labs/minairva-cli/internal/logger"
)

// newBreaker creates a circuit breaker that opens after consecutive
// transport or server failures. Client errors and malformed bodies do not
// count: the service is reachable and answering.
func newBreaker(failures uint32, cooldown time.Duration) *gobreaker.CircuitBreaker[domain.RawResult] {
	return gobreaker.NewCircuitBreaker[domain.RawResult](gobreaker.Settings{
		Name:        "triage",
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return !countsAsFailure(err)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("triage: circuit %s changed from %s to %s", name, from, to)
		},
	})
}

func countsAsFailure(err error) bool {
	if err == nil {
		return false
	}
	te, ok := domain.AsTriageError(err)
	if !ok {
		return true
	}
	switch te.Kind {
	case domain.KindNetwork, domain.KindNetworkTimeout:
		return true
	case domain.KindService:
		return te.StatusCode >= 500
	default:
		return false
	}
}
