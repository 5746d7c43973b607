// Package driving defines the primary (driving) ports of the hexagon:
// the operations external actors (CLI, HTTP API, MCP) invoke on the core.
package driving
