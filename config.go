package wsauth

import (
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// LoadConfig reads a client-secret file in the standard Google format
// (an "installed" or "web" object)
// and returns an oauth2 config requesting the given scopes.
// Any failure is a *ConfigError naming filename.
func LoadConfig(filename string, scope ...string) (*oauth2.Config, error) {
	creds, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return nil, &ConfigError{Path: filename, Err: ErrNoSecrets}
	}
	if err != nil {
		return nil, &ConfigError{Path: filename, Err: err}
	}
	conf, err := google.ConfigFromJSON(creds, scope...)
	if err != nil {
		return nil, &ConfigError{Path: filename, Err: err}
	}
	return conf, nil
}
