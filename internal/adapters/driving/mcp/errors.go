// Package mcp provides an MCP (Model Context Protocol) server adapter for minairva.
// It lets AI assistants submit a local document for triage and read the result.
package mcp

import "errors"

// ErrMissingTriageService is returned when the triage orchestrator is not provided.
var ErrMissingTriageService = errors.New("mcp: triage orchestrator is required")

// ErrMissingPath is returned when the triage tool is called without a file path.
var ErrMissingPath = errors.New("mcp: path is required")
