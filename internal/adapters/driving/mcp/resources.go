package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/minairva-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for minairva resources.
	uriScheme = "minairva://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the installed result.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "result",
		Name:        "result",
		Description: "The most recently installed triage result",
		MIMEType:    "application/json",
	}, s.handleResultResource)

	// Template for one result tab.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "result/{tab}",
		Name:        "result-tab",
		Description: "One panel of the installed result: classification, clauses or risks",
		MIMEType:    "application/json",
	}, s.handleTabResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "theme",
		Name:        "theme",
		Description: "The active light/dark presentation mode",
		MIMEType:    "text/plain",
	}, s.handleThemeResource)
}

// handleResultResource returns the installed result.
func (s *Server) handleResultResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	snap := s.ports.Triage.Snapshot()
	if !snap.HasResult() {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return jsonResource(req.Params.URI, toOutput("", snap.Result))
}

// handleTabResource returns a single tab of the installed result.
func (s *Server) handleTabResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract tab from URI: minairva://result/{tab}
	tab, ok := extractTab(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	snap := s.ports.Triage.Snapshot()
	if !snap.HasResult() {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	out := toOutput("", snap.Result)
	switch tab {
	case domain.TabClauses:
		return jsonResource(req.Params.URI, out.Clauses)
	case domain.TabRisks:
		return jsonResource(req.Params.URI, out.Risks)
	default:
		return jsonResource(req.Params.URI, map[string]*string{"type": out.Type})
	}
}

// handleThemeResource returns the active theme mode.
func (s *Server) handleThemeResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	mode := domain.DefaultThemeMode
	if s.ports.Theme != nil {
		mode = s.ports.Theme.Get()
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     mode.String(),
		}},
	}, nil
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractTab extracts the tab from a URI like minairva://result/{tab}.
func extractTab(uri string) (domain.Tab, bool) {
	const prefix = uriScheme + "result/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	name := strings.ToLower(strings.TrimPrefix(uri, prefix))
	for _, tab := range domain.Tabs() {
		if strings.ToLower(tab.String()) == name {
			return tab, true
		}
	}
	return 0, false
}
