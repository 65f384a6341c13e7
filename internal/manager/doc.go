// Package manager is the facade tying Drive and Sheets together: one
// credential resolution, one bound folder, and the high-level operations
// (folder listing, share links, dataset uploads with embedded images) that
// the CLI and the MCP tools expose.
package manager
