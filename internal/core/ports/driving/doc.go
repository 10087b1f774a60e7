// Package driving defines the interfaces that adapters call INTO the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The TUI, CLI, watch folder and MCP server depend on these interfaces
// and never on concrete services.
package driving
