// Package creds resolves Google service account credentials from one of
// three sources: a dotenv file, a credentials file, or an environment
// variable holding the literal JSON document.
//
// Resolution happens once, at client construction. The resolved document is
// held for the lifetime of the client and never mutated or written back.
package creds
