// Package sheets provides a thin client for the Google Sheets API.
//
// It covers tab lookup and creation, table writes at a fixed origin, single
// cell updates (used for =IMAGE formulas) and column appends. Authentication
// is supplied by the caller as client options.
package sheets
