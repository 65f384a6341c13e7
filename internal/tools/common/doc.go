// Package common holds helpers shared by the MCP tool packages, most
// notably the instrumented handler wrappers that record tool invocation and
// Google API operation metrics.
package common
