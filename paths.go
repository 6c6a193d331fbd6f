package wsauth

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Paths locates the files setup reads and writes,
// relative to a project root.
type Paths struct {
	Root string
}

// SecretsFile is the OAuth client-secret file downloaded from the Google Cloud console.
func (p Paths) SecretsFile() string {
	return filepath.Join(p.Root, "mcp-servers", "google-workspace", "gcp-oauth.keys.json")
}

// CredentialsDir is where the agent looks for per-identity credential records.
func (p Paths) CredentialsDir() string {
	return filepath.Join(p.Root, "data", "sessions", "main", ".claude", "google-workspace-credentials")
}

// CredentialsFile is the record for identity.
// The identity is not validated; it is conventionally an email address.
func (p Paths) CredentialsFile(identity string) string {
	return filepath.Join(p.CredentialsDir(), identity+".json")
}

// CheckSecrets reports a *ConfigError if the client-secret file does not exist.
func (p Paths) CheckSecrets() error {
	filename := p.SecretsFile()
	_, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return &ConfigError{Path: filename, Err: ErrNoSecrets}
	}
	if err != nil {
		return &ConfigError{Path: filename, Err: err}
	}
	return nil
}

// RootFromExecutable returns the parent of the directory holding the running binary.
// The setup binary is conventionally installed one level below the project root
// (e.g. <root>/scripts or <root>/bin).
func RootFromExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "locating executable")
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}
