package wsauth

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// Setup performs the one-time authorization for an identity
// and writes its credential record.
type Setup struct {
	Paths Paths

	// Scopes to request. If nil, the package-level Scopes are used.
	Scopes []string

	// Port is the loopback callback port, used by the default authorizer
	// and in the port-forwarding hint. Zero means DefaultPort.
	Port int

	// Out receives operator-facing messages. If nil, os.Stdout is used.
	Out io.Writer

	// NewAuthorizer builds the Authorizer for a loaded client config.
	// If nil, a Loopback on Port that prints the URL to Out is used.
	NewAuthorizer func(*oauth2.Config) Authorizer
}

// Run authorizes identity and writes the resulting record,
// returning the path of the file written.
//
// A missing client-secret file yields a *ConfigError
// before any network activity and without writing anything.
// Failures of the authorization itself yield an *AuthFlowError.
// Nothing is retried.
func (s Setup) Run(ctx context.Context, identity string) (string, error) {
	if identity == "" {
		return "", &UsageError{Usage: "identity required"}
	}

	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	port := s.Port
	if port == 0 {
		port = DefaultPort
	}
	scopes := s.Scopes
	if scopes == nil {
		scopes = Scopes
	}

	var (
		secretsFile = s.Paths.SecretsFile()
		credsFile   = s.Paths.CredentialsFile(identity)
	)

	if err := s.Paths.CheckSecrets(); err != nil {
		return "", err
	}

	fmt.Fprintln(out, "=== Google Workspace OAuth Setup ===")
	fmt.Fprintf(out, "Email:        %s\n", identity)
	fmt.Fprintf(out, "Secrets file: %s\n", secretsFile)
	fmt.Fprintf(out, "Creds file:   %s\n", credsFile)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "An authorization URL will be printed below.")
	fmt.Fprintln(out, "If on a remote host, make sure you have SSH port forwarding:")
	fmt.Fprintf(out, "  ssh -L %d:localhost:%d <host>\n", port, port)
	fmt.Fprintln(out)

	conf, err := LoadConfig(secretsFile, scopes...)
	if err != nil {
		return "", err
	}

	newAuthorizer := s.NewAuthorizer
	if newAuthorizer == nil {
		newAuthorizer = func(conf *oauth2.Config) Authorizer {
			return Loopback{
				Conf:                  conf,
				Port:                  port,
				AllowInsecureRedirect: true,
				Visit:                 PrintURL(out),
			}
		}
	}

	tok, err := newAuthorizer(conf).Token(ctx)
	if err != nil {
		var cerr *ConfigError
		if errors.As(err, &cerr) {
			return "", err
		}
		return "", &AuthFlowError{Err: err}
	}

	rec := NewRecord(conf, tok, scopes)
	if err = rec.Write(credsFile); err != nil {
		return "", err
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "SUCCESS! Credentials saved to: %s\n", credsFile)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "The agent should now be able to use Google Workspace tools.")
	fmt.Fprintln(out, "Restart the agent container or send a new message to test.")

	return credsFile, nil
}
