// Package domain defines the core business entities for minairva.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ThemeMode: The persisted light/dark preference
//   - Upload: One user-selected file awaiting triage
//   - TriageRequest: The wire payload for a single submission
//   - TriageResult: The normalised classification, clauses and risks
//   - ViewState: Active result tab and presence of a result
//   - Snapshot: An immutable view of the orchestrator state
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
