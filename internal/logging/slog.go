package logging

import (
	"log/slog"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation   = "operation"
	KeyService     = "service"
	KeyStatus      = "status"
	KeyError       = "error"
	KeyTool        = "tool"
	KeyFolder      = "folder"
	KeySpreadsheet = "spreadsheet"
	KeySheet       = "sheet"
	KeyFile        = "file"
	KeyCount       = "count"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithService returns a logger with the service attribute set.
func WithService(logger *slog.Logger, service string) *slog.Logger {
	return logger.With(slog.String(KeyService, service))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Service returns a slog attribute for the service name.
func Service(svc string) slog.Attr {
	return slog.String(KeyService, svc)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Tool returns a slog attribute for an MCP tool name.
func Tool(tool string) slog.Attr {
	return slog.String(KeyTool, tool)
}

// Folder returns a slog attribute for a Drive folder id.
func Folder(id string) slog.Attr {
	return slog.String(KeyFolder, id)
}

// Spreadsheet returns a slog attribute for a spreadsheet id.
func Spreadsheet(id string) slog.Attr {
	return slog.String(KeySpreadsheet, id)
}

// Sheet returns a slog attribute for a sheet (tab) name.
func Sheet(name string) slog.Attr {
	return slog.String(KeySheet, name)
}

// File returns a slog attribute for a Drive file name.
func File(name string) slog.Attr {
	return slog.String(KeyFile, name)
}

// Count returns a slog attribute for a row or file count.
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from
// output. This allows safely passing Err(maybeNilErr) without adding empty
// attributes.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}
