package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/minairva-cli/internal/core/domain"
	"github.com/custodia-labs/minairva-cli/internal/core/ports/driven"
	"github.com/custodia-labs/minairva-cli/internal/logger"
)

// UploadChannel reads one file and submits it to the triage service.
// It holds no shared state; the orchestrator applies whatever it returns.
type UploadChannel struct {
	extractor driven.TextExtractor
	client    driven.TriageClient
	timeout   time.Duration
	newID     func() string
}

// NewUploadChannel creates an upload channel.
// A zero timeout falls back to domain.DefaultTimeout.
func NewUploadChannel(
	extractor driven.TextExtractor,
	client driven.TriageClient,
	timeout time.Duration,
) *UploadChannel {
	if timeout <= 0 {
		timeout = domain.DefaultTimeout
	}
	return &UploadChannel{
		extractor: extractor,
		client:    client,
		timeout:   timeout,
		newID:     func() string { return uuid.New().String() },
	}
}

// Timeout returns the per-request timeout.
func (c *UploadChannel) Timeout() time.Duration {
	return c.timeout
}

// Submit triages one upload. The returned error is always a *domain.TriageError.
func (c *UploadChannel) Submit(ctx context.Context, upload domain.Upload, seq uint64) (*domain.TriageResult, error) {
	if c.extractor == nil || c.client == nil {
		return nil, domain.NewTriageError(domain.KindNetwork, "triage client not configured", nil)
	}

	content, err := c.extractor.Extract(ctx, upload)
	if err != nil {
		return nil, domain.NewTriageError(domain.KindFileRead,
			fmt.Sprintf("reading %s", upload.DisplayName()), err)
	}

	req := domain.TriageRequest{
		RequestID:       c.newID(),
		Seq:             seq,
		DocumentContent: content,
	}
	if err := req.Validate(); err != nil {
		return nil, domain.NewTriageError(domain.KindFileRead,
			fmt.Sprintf("reading %s", upload.DisplayName()), err)
	}

	logger.Debug("upload: submitting %s (seq=%d, request=%s, %d bytes)",
		upload.DisplayName(), seq, req.RequestID, len(req.DocumentContent))

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.client.Triage(reqCtx, req)
	if err != nil {
		return nil, classify(reqCtx, err)
	}

	result := Normalise(raw)
	return &result, nil
}

// classify turns any client failure into a TriageError.
func classify(ctx context.Context, err error) *domain.TriageError {
	if te, ok := domain.AsTriageError(err); ok {
		return te
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.NewTriageError(domain.KindNetworkTimeout, "", err)
	}
	return domain.NewTriageError(domain.KindNetwork, "", err)
}
