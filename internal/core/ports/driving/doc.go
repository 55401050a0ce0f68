// Package driving holds the ports the front ends call: the CLI commands,
// the MCP server and the TUI all reach the corpus and settings through
// these interfaces only.
//
// internal/core/services implements them.
package driving
