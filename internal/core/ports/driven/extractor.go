package driven

import (
	"context"

	"github.com/custodia-labs/minairva-cli/internal/core/domain"
)

// TextExtractor reads the textual payload of an uploaded file.
type TextExtractor interface {
	// Extract returns the document text.
	Extract(ctx context.Context, upload domain.Upload) (string, error)
}

// Normaliser turns the raw bytes of one file format into plain text.
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise extracts the text of a raw document.
	Normalise(ctx context.Context, raw *domain.RawDocument) (string, error)
}

// TextProcessor cleans extracted text before it is submitted.
type TextProcessor interface {
	// Name returns the processor identifier.
	Name() string

	// Process returns the transformed text.
	Process(ctx context.Context, text string) (string, error)
}
