// Package faults defines the error taxonomy shared by the Drive and Sheets
// clients: CredentialsError for credential resolution failures, RemoteError
// for rejected Google API calls, and NotFoundError for name-lookup misses.
//
// There is no local recovery anywhere in sheetfeed; every failure is wrapped
// into one of these types and surfaced to the caller immediately.
package faults
