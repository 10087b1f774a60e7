package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/minairva-cli/internal/core/domain"
)

// MockTextExtractor implements driven.TextExtractor for testing.
type MockTextExtractor struct {
	ExtractFunc func(ctx context.Context, upload domain.Upload) (string, error)
}

func (m *MockTextExtractor) Extract(ctx context.Context, upload domain.Upload) (string, error) {
	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, upload)
	}
	return "This Agreement terminates...", nil
}

// MockTriageClient implements driven.TriageClient for testing.
type MockTriageClient struct {
	mu       sync.Mutex
	requests []domain.TriageRequest

	TriageFunc func(ctx context.Context, req domain.TriageRequest) (domain.RawResult, error)
}

func (m *MockTriageClient) Triage(ctx context.Context, req domain.TriageRequest) (domain.RawResult, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.TriageFunc != nil {
		return m.TriageFunc(ctx, req)
	}
	return domain.RawResult{"type": "General Contract"}, nil
}

func (m *MockTriageClient) Requests() []domain.TriageRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.TriageRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// MockPreferenceStore implements driven.PreferenceStore for testing.
type MockPreferenceStore struct {
	GetPreferenceFunc func(key string) (string, bool, error)
	SetPreferenceFunc func(key, value string) error
	SetCalls          int
}

func (m *MockPreferenceStore) GetPreference(key string) (string, bool, error) {
	if m.GetPreferenceFunc != nil {
		return m.GetPreferenceFunc(key)
	}
	return "", false, nil
}

func (m *MockPreferenceStore) SetPreference(key, value string) error {
	m.SetCalls++
	if m.SetPreferenceFunc != nil {
		return m.SetPreferenceFunc(key, value)
	}
	return nil
}

// MockSubmitter implements Submitter for testing.
type MockSubmitter struct {
	SubmitFunc func(ctx context.Context, upload domain.Upload, seq uint64) (*domain.TriageResult, error)
}

func (m *MockSubmitter) Submit(ctx context.Context, upload domain.Upload, seq uint64) (*domain.TriageResult, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, upload, seq)
	}
	return &domain.TriageResult{Clauses: []domain.Clause{}, Risks: []domain.Risk{}}, nil
}

func strPtr(s string) *string {
	return &s
}
