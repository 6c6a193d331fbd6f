package wsauth

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoSecrets is the cause of a ConfigError when the client-secret file is absent.
var ErrNoSecrets = errors.New("client secrets file not found")

// UsageError is returned when a required command-line argument is missing.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return "usage: " + e.Usage
}

// ConfigError means a required input file is absent or unusable.
// It is never retried.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Path)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// AuthFlowError wraps any failure of the interactive authorization:
// listener problems, a denied consent, a state mismatch, or a failed code exchange.
type AuthFlowError struct {
	Err error
}

func (e *AuthFlowError) Error() string {
	return "authorization failed: " + e.Err.Error()
}

func (e *AuthFlowError) Unwrap() error { return e.Err }
