package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/minairva-cli/internal/core/domain"
)

// TriageInput is the input schema for the triage_document tool.
type TriageInput struct {
	Path string `json:"path" jsonschema:"absolute path of the document to triage"`
}

// TriageOutput is the output schema for the triage_document tool.
type TriageOutput struct {
	Document string          `json:"document"`
	Type     *string         `json:"type"`
	Clauses  []domain.Clause `json:"clauses"`
	Risks    []domain.Risk   `json:"risks"`
}

// StateInput is the input schema for the triage_state tool.
type StateInput struct{}

// StateOutput is the output schema for the triage_state tool.
type StateOutput struct {
	Phase     string        `json:"phase"`
	ActiveTab string        `json:"active_tab"`
	InFlight  int           `json:"in_flight"`
	Error     string        `json:"error,omitempty"`
	Result    *TriageOutput `json:"result,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "triage_document",
		Description: "Classify a legal document, extract its clauses and flag risks",
	}, s.handleTriage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "triage_state",
		Description: "Report the current triage phase, active tab and installed result",
	}, s.handleState)
}

// handleTriage handles the triage_document tool invocation.
func (s *Server) handleTriage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TriageInput,
) (*mcp.CallToolResult, TriageOutput, error) {
	path := strings.TrimSpace(input.Path)
	if path == "" {
		return nil, TriageOutput{}, ErrMissingPath
	}

	upload := domain.NewUpload(path)
	snap, err := s.ports.Triage.Submit(ctx, upload)
	if err != nil {
		// The SDK reports handler errors to the client as a tool error result.
		return nil, TriageOutput{}, err
	}

	return nil, toOutput(upload.DisplayName(), snap.Result), nil
}

// handleState handles the triage_state tool invocation.
func (s *Server) handleState(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ StateInput,
) (*mcp.CallToolResult, StateOutput, error) {
	snap := s.ports.Triage.Snapshot()

	out := StateOutput{
		Phase:     snap.Phase.String(),
		ActiveTab: snap.View.ActiveTab.String(),
		InFlight:  snap.InFlight,
	}
	if snap.LastError != nil {
		out.Error = snap.LastError.UserMessage()
	}
	if snap.HasResult() {
		result := toOutput("", snap.Result)
		out.Result = &result
	}

	return nil, out, nil
}

// toOutput converts a result into the tool schema.
// Slices are never nil so the structured content always holds arrays.
func toOutput(name string, result *domain.TriageResult) TriageOutput {
	out := TriageOutput{
		Document: name,
		Clauses:  []domain.Clause{},
		Risks:    []domain.Risk{},
	}
	if result == nil {
		return out
	}
	if result.HasClassification() {
		docType := result.Classification()
		out.Type = &docType
	}
	out.Clauses = append(out.Clauses, result.Clauses...)
	out.Risks = append(out.Risks, result.Risks...)
	return out
}
