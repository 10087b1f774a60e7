package services

import (
	"strings"

	"github.com/custodia-labs/minairva-cli/internal/core/domain"
)

// Wire field names of the triage service result object.
const (
	fieldType        = "type"
	fieldClauses     = "clauses"
	fieldRisks       = "risks"
	fieldTitle       = "title"
	fieldText        = "text"
	fieldBody        = "body"
	fieldLevel       = "level"
	fieldDescription = "description"
	fieldExplanation = "explanation"
)

// Normalise shapes a raw service result into a TriageResult.
//
// Missing or mistyped clauses and risks become empty sequences. Entries are
// kept in service order; entries that are not objects stay as zero values so
// positions line up with what the service sent. The function is pure.
func Normalise(raw domain.RawResult) domain.TriageResult {
	result := domain.TriageResult{
		Clauses: []domain.Clause{},
		Risks:   []domain.Risk{},
	}

	if docType, ok := raw[fieldType].(string); ok {
		result.DocumentType = &docType
	}

	for _, item := range asSlice(raw[fieldClauses]) {
		obj := asObject(item)
		body, ok := obj[fieldText].(string)
		if !ok {
			body = asString(obj[fieldBody])
		}
		result.Clauses = append(result.Clauses, domain.Clause{
			Title: asString(obj[fieldTitle]),
			Body:  body,
		})
	}

	for _, item := range asSlice(raw[fieldRisks]) {
		obj := asObject(item)
		rawLevel := asString(obj[fieldLevel])
		result.Risks = append(result.Risks, domain.Risk{
			Level:       domain.ParseRiskLevel(rawLevel),
			RawLevel:    strings.TrimSpace(rawLevel),
			Description: asString(obj[fieldDescription]),
			Explanation: asString(obj[fieldExplanation]),
		})
	}

	return result
}

func asSlice(v any) []any {
	s, ok := v.([]any)
	if !ok {
		return nil
	}
	return s
}

func asObject(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case domain.RawResult:
		return m
	default:
		return nil
	}
}

func asString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
