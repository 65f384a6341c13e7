// Package server holds the MCP server runtime: the shared server context
// (manager, instrumentation, shutdown lifecycle), the dedicated Prometheus
// metrics server and the health check endpoints.
package server
