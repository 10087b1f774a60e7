package driven

import (
	"context"

	"github.com/custodia-labs/minairva-cli/internal/core/domain"
)

// TriageClient sends a document to the external triage service.
type TriageClient interface {
	// Triage posts the request and returns the decoded "result" object.
	// Failures should be *domain.TriageError values; anything else is
	// treated as a network error by the caller.
	Triage(ctx context.Context, req domain.TriageRequest) (domain.RawResult, error)
}
