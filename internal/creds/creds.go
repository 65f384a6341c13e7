package creds

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tberndt/sheetfeed/internal/faults"
)

// DefaultEnvVar is the environment variable consulted when no explicit
// credential source is configured.
const DefaultEnvVar = "GOOGLE_SERVICE_ACCOUNT"

// Credentials holds a resolved service account document. The raw JSON is
// handed to the Google auth libraries unchanged; the parsed fields are kept
// for logging and validation only.
type Credentials struct {
	// JSON is the raw service account document.
	JSON []byte

	// Email is the service account's client_email.
	Email string

	// ProjectID is the GCP project the account belongs to.
	ProjectID string
}

// Source yields a service account JSON document. Exactly one variant is used
// per construction: FromEnvFile, FromFile or FromEnvVar.
type Source interface {
	// Resolve loads and validates the credential document. It fails with a
	// *faults.CredentialsError when the source yields nothing or the JSON is
	// not a service account document.
	Resolve() (*Credentials, error)

	// Describe names the source for error messages and logs.
	Describe() string
}

type envFileSource struct {
	path   string
	envVar string
}

type fileSource struct {
	path string
}

type envVarSource struct {
	name string
}

// FromEnvFile loads the dotenv file at path into the process environment and
// then reads the credential JSON from envVar. An empty envVar falls back to
// DefaultEnvVar.
func FromEnvFile(path, envVar string) Source {
	if envVar == "" {
		envVar = DefaultEnvVar
	}
	return &envFileSource{path: path, envVar: envVar}
}

// FromFile reads the credential JSON directly from the file at path.
func FromFile(path string) Source {
	return &fileSource{path: path}
}

// FromEnvVar reads the credential JSON from the named environment variable.
// An empty name falls back to DefaultEnvVar.
func FromEnvVar(name string) Source {
	if name == "" {
		name = DefaultEnvVar
	}
	return &envVarSource{name: name}
}

func (s *envFileSource) Describe() string {
	return fmt.Sprintf("env file %s (variable %s)", s.path, s.envVar)
}

func (s *envFileSource) Resolve() (*Credentials, error) {
	if err := godotenv.Load(s.path); err != nil {
		return nil, &faults.CredentialsError{Source: s.Describe(), Err: err}
	}

	doc := os.Getenv(s.envVar)
	if doc == "" {
		return nil, &faults.CredentialsError{
			Source: s.Describe(),
			Err:    fmt.Errorf("%s is not set after loading %s", s.envVar, s.path),
		}
	}

	return parse([]byte(doc), s.Describe())
}

func (s *fileSource) Describe() string {
	return fmt.Sprintf("file %s", s.path)
}

func (s *fileSource) Resolve() (*Credentials, error) {
	doc, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &faults.CredentialsError{Source: s.Describe(), Err: err}
	}

	return parse(doc, s.Describe())
}

func (s *envVarSource) Describe() string {
	return fmt.Sprintf("environment variable %s", s.name)
}

func (s *envVarSource) Resolve() (*Credentials, error) {
	doc := os.Getenv(s.name)
	if doc == "" {
		return nil, &faults.CredentialsError{
			Source: s.Describe(),
			Err:    fmt.Errorf("%s is not set", s.name),
		}
	}

	return parse([]byte(doc), s.Describe())
}

// serviceAccountKey mirrors the fields of a service account document that
// sheetfeed validates locally. The auth library checks the rest.
type serviceAccountKey struct {
	Type        string `json:"type"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	ProjectID   string `json:"project_id"`
}

func parse(doc []byte, source string) (*Credentials, error) {
	var key serviceAccountKey
	if err := json.Unmarshal(doc, &key); err != nil {
		return nil, &faults.CredentialsError{Source: source, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	if key.Type != "service_account" {
		return nil, &faults.CredentialsError{
			Source: source,
			Err:    fmt.Errorf("expected a service_account document, got type %q", key.Type),
		}
	}
	if key.ClientEmail == "" || key.PrivateKey == "" {
		return nil, &faults.CredentialsError{
			Source: source,
			Err:    fmt.Errorf("document is missing client_email or private_key"),
		}
	}

	return &Credentials{
		JSON:      doc,
		Email:     key.ClientEmail,
		ProjectID: key.ProjectID,
	}, nil
}
