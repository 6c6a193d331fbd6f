// Command wsauth-setup performs the one-time Google Workspace OAuth setup for an identity.
//
// Usage:
//
//	wsauth-setup [--root DIR] [--port N] [--open] <your-email@gmail.com>
//
// It prints an authorization URL and waits for the browser to be redirected
// to a listener on localhost:8000.
// When running on a remote host, forward that port first:
//
//	ssh -L 8000:localhost:8000 <host>
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/nanoclaw/wsauth"
)

const (
	program = "wsauth-setup"
	usage   = "Usage: " + program + " <your-email@gmail.com>"
)

type args struct {
	Identity string `arg:"positional,required" placeholder:"EMAIL" help:"identity to authorize, conventionally an email address"`
	Root     string `arg:"--root,env:WSAUTH_ROOT" help:"project root [default: parent of the binary's directory]"`
	Port     int    `arg:"--port,env:WSAUTH_PORT" default:"8000" help:"loopback callback port"`
	Open     bool   `arg:"--open" help:"also try to open the authorization URL in a browser"`
}

func (args) Description() string {
	return "One-time OAuth setup for Google Workspace. Writes <root>/data/sessions/main/.claude/google-workspace-credentials/<EMAIL>.json."
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, nil)
	stop()
	os.Exit(code)
}

// run returns the process exit status.
// A nil newAuthorizer means a Loopback configured from the command line.
func run(ctx context.Context, argv []string, stdout io.Writer, newAuthorizer func(*oauth2.Config) wsauth.Authorizer) int {
	var a args

	p, err := arg.NewParser(arg.Config{Program: program}, &a)
	if err != nil {
		fmt.Fprintf(stdout, "ERROR: %s\n", err)
		return 1
	}
	err = p.Parse(argv)
	switch {
	case err == arg.ErrHelp:
		p.WriteHelp(stdout)
		return 0
	case err != nil:
		fmt.Fprintln(stdout, usage)
		return 1
	}

	root := a.Root
	if root == "" {
		root, err = wsauth.RootFromExecutable()
		if err != nil {
			fmt.Fprintf(stdout, "ERROR: %s\n", err)
			return 1
		}
	}

	if newAuthorizer == nil {
		newAuthorizer = func(conf *oauth2.Config) wsauth.Authorizer {
			visit := wsauth.PrintURL(stdout)
			if a.Open {
				visit = wsauth.OpenBrowser(stdout)
			}
			return wsauth.Loopback{
				Conf:                  conf,
				Port:                  a.Port,
				AllowInsecureRedirect: true,
				Visit:                 visit,
			}
		}
	}

	s := wsauth.Setup{
		Paths:         wsauth.Paths{Root: root},
		Port:          a.Port,
		Out:           stdout,
		NewAuthorizer: newAuthorizer,
	}
	_, err = s.Run(ctx, a.Identity)
	return report(stdout, err)
}

func report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	var (
		uerr *wsauth.UsageError
		cerr *wsauth.ConfigError
		aerr *wsauth.AuthFlowError
	)
	switch {
	case errors.As(err, &uerr):
		fmt.Fprintln(w, usage)
		return 1
	case errors.As(err, &cerr) && errors.Is(cerr, wsauth.ErrNoSecrets):
		fmt.Fprintf(w, "ERROR: Client secrets file not found: %s\n", cerr.Path)
		return 1
	case errors.As(err, &aerr):
		fmt.Fprintf(w, "ERROR: %s\n", aerr)
		return 2
	default:
		fmt.Fprintf(w, "ERROR: %s\n", err)
		return 1
	}
}
