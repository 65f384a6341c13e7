// Package drive_tools registers the Google Drive MCP tools: folder listing,
// subfolder listing and public share link resolution.
package drive_tools
