// Package sheets_tools registers the Google Sheets MCP tools. The upload
// tool writes to spreadsheets, so it is only registered when the server is
// not read-only.
package sheets_tools
