package faults

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// CredentialsError indicates that service account credentials could not be
// resolved or parsed from the configured source.
type CredentialsError struct {
	Source string // description of the credential source that failed
	Err    error
}

func (e *CredentialsError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("credentials: %s", e.Source)
	}
	return fmt.Sprintf("credentials: %s: %v", e.Source, e.Err)
}

func (e *CredentialsError) Unwrap() error {
	return e.Err
}

// RemoteError wraps a rejected Google API call. It carries the service name
// ("drive" or "sheets"), the operation that failed and, when the underlying
// cause is a googleapi.Error, the HTTP status code.
type RemoteError struct {
	Service    string
	Op         string
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s failed with status %d: %v", e.Service, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s failed: %v", e.Service, e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// NotFoundError indicates that a name lookup matched nothing: a file name in
// a Drive folder, or a sheet title in a spreadsheet.
type NotFoundError struct {
	Name     string
	FolderID string
}

func (e *NotFoundError) Error() string {
	if e.FolderID == "" {
		return fmt.Sprintf("%q not found", e.Name)
	}
	return fmt.Sprintf("no file named %q found in folder %s", e.Name, e.FolderID)
}

// Remote wraps err as a RemoteError for the given service and operation,
// extracting the HTTP status code when err is a googleapi.Error.
func Remote(service, op string, err error) *RemoteError {
	re := &RemoteError{
		Service: service,
		Op:      op,
		Err:     err,
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		re.StatusCode = gerr.Code
	}

	return re
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsCredentials reports whether err is (or wraps) a CredentialsError.
func IsCredentials(err error) bool {
	var ce *CredentialsError
	return errors.As(err, &ce)
}

// AsRemote returns the RemoteError wrapped by err, or nil.
func AsRemote(err error) *RemoteError {
	var re *RemoteError
	if errors.As(err, &re) {
		return re
	}
	return nil
}
