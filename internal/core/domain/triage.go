package domain

import (
	"path/filepath"
	"strings"
)

// Upload is one user-provided file awaiting triage.
type Upload struct {
	// Path is the local file path.
	Path string

	// Name is the display name. Defaults to the base of Path.
	Name string
}

// NewUpload creates an upload for the file at path.
func NewUpload(path string) Upload {
	return Upload{Path: path, Name: filepath.Base(path)}
}

// DisplayName returns the name to show for the upload.
func (u Upload) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Path == "" {
		return ""
	}
	return filepath.Base(u.Path)
}

// TriageRequest is the payload sent to the triage service for one submission.
type TriageRequest struct {
	// RequestID correlates the request in service logs.
	RequestID string

	// Seq is the orchestrator sequence number of the submission.
	Seq uint64

	// DocumentContent is the extracted text of the uploaded file.
	DocumentContent string
}

// Validate checks the request invariants.
func (r TriageRequest) Validate() error {
	if strings.TrimSpace(r.DocumentContent) == "" {
		return ErrEmptyDocument
	}
	return nil
}

// Clause is one extracted contract clause.
type Clause struct {
	Title string `json:"title"`
	Body  string `json:"text"`
}

// RiskLevel is the severity tag attached to a flagged risk.
type RiskLevel string

// Known risk levels.
const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskUnknown RiskLevel = "unknown"
)

// ParseRiskLevel maps a service tag onto a RiskLevel, case-insensitively.
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(strings.ToLower(strings.TrimSpace(s))) {
	case RiskLow:
		return RiskLow
	case RiskMedium:
		return RiskMedium
	case RiskHigh:
		return RiskHigh
	default:
		return RiskUnknown
	}
}

// String returns the string representation.
func (l RiskLevel) String() string {
	return string(l)
}

// Risk is one flagged risk with its rationale.
type Risk struct {
	Level       RiskLevel `json:"level"`
	RawLevel    string    `json:"raw_level,omitempty"`
	Description string    `json:"description"`
	Explanation string    `json:"explanation"`
}

// TriageResult is the normalised outcome of one successful submission.
type TriageResult struct {
	// DocumentType is nil when the service returned no classification.
	// A non-nil pointer to "" is a legitimate empty classification.
	DocumentType *string `json:"type"`

	// Clauses preserves the service order.
	Clauses []Clause `json:"clauses"`

	// Risks preserves the service order.
	Risks []Risk `json:"risks"`
}

// HasClassification reports whether the service returned a document type.
func (r *TriageResult) HasClassification() bool {
	return r != nil && r.DocumentType != nil
}

// Classification returns the document type, or "" when absent.
func (r *TriageResult) Classification() string {
	if !r.HasClassification() {
		return ""
	}
	return *r.DocumentType
}

// HasRisks reports whether any risks were flagged.
func (r *TriageResult) HasRisks() bool {
	return r != nil && len(r.Risks) > 0
}

// Clone returns a deep copy so readers never share slices with the owner.
func (r *TriageResult) Clone() *TriageResult {
	if r == nil {
		return nil
	}
	out := &TriageResult{
		Clauses: make([]Clause, len(r.Clauses)),
		Risks:   make([]Risk, len(r.Risks)),
	}
	if r.DocumentType != nil {
		docType := *r.DocumentType
		out.DocumentType = &docType
	}
	copy(out.Clauses, r.Clauses)
	copy(out.Risks, r.Risks)
	return out
}
