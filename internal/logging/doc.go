// Package logging provides structured logging helpers built on log/slog.
//
// It defines the attribute keys used across sheetfeed (operation, service,
// folder, spreadsheet, ...) and small constructors so call sites stay
// consistent without repeating string literals.
package logging
