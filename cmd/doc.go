// Package cmd implements the command-line interface for sheetfeed.
//
// This package provides the following commands:
//   - list: List the files (or subfolders) in the configured Drive folder
//   - link: Print the public share link for a Drive file
//   - upload: Upload a CSV dataset into a spreadsheet with embedded images
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
package cmd
