package wsauth

import (
	"bytes"
	"context"
	"crypto/rand"
	_ "embed"
	"encoding/base64"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/bobg/mid"
	"github.com/pkg/browser"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

//go:embed done.html
var doneHTML []byte

// DefaultPort is the loopback port registered for the callback.
// It is fixed so that it can be SSH-forwarded from a workstation:
//
//	ssh -L 8000:localhost:8000 <host>
const DefaultPort = 8000

// Authorizer obtains an OAuth token, typically by interacting with a user.
type Authorizer interface {
	Token(context.Context) (*oauth2.Token, error)
}

// Loopback is an Authorizer that does loopback authorization.
// The user visits a specially constructed URL,
// and an HTTP server listens on Host:Port.
// If the user grants access,
// the browser is redirected to that server with an authorization code,
// which is exchanged for an OAuth token.
//
// The authorization URL asks for offline access and forces the consent screen,
// so the provider issues a refresh token even to users who consented before.
type Loopback struct {
	Conf *oauth2.Config

	// Host defaults to "localhost".
	Host string

	// Port is the callback port. Zero picks a free port.
	Port int

	// AllowInsecureRedirect must be set to accept a plain-HTTP redirect URI.
	// It applies only to the loopback callback;
	// the code exchange uses Conf.Endpoint as given.
	AllowInsecureRedirect bool

	// Visit presents the authorization URL to the user.
	// If nil, PrintURL(os.Stdout) is used.
	Visit func(authURL string) error
}

type flowResult struct {
	tok *oauth2.Token
	err error
}

// Token implements Authorizer.Token.
// It blocks until the callback arrives or ctx is canceled.
// The listener is closed before Token returns.
func (a Loopback) Token(ctx context.Context) (*oauth2.Token, error) {
	if !a.AllowInsecureRedirect {
		return nil, &ConfigError{Err: errors.New("loopback redirect requires plain HTTP, which is not allowed")}
	}

	host := a.Host
	if host == "" {
		host = "localhost"
	}

	listener, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(a.Port)))
	if err != nil {
		return nil, errors.Wrap(err, "creating listener")
	}

	port := listener.Addr().(*net.TCPAddr).Port

	conf := *a.Conf
	conf.RedirectURL = fmt.Sprintf("http://%s/", net.JoinHostPort(host, strconv.Itoa(port)))

	state, err := randomState()
	if err != nil {
		listener.Close()
		return nil, errors.Wrap(err, "generating state")
	}
	verifier := oauth2.GenerateVerifier()

	var (
		results = make(chan flowResult, 1)
		once    sync.Once
	)
	finish := func(r flowResult) {
		once.Do(func() { results <- r })
	}

	srv := &http.Server{
		Handler: mid.Err(func(w http.ResponseWriter, req *http.Request) error {
			switch req.URL.Path {
			case "", "/":
				// do nothing
			default:
				// e.g. /favicon.ico
				return mid.CodeErr{C: http.StatusNotFound}
			}

			if errorstr := req.FormValue("error"); errorstr != "" {
				err := errors.Errorf("authorization denied: %s", errorstr)
				finish(flowResult{err: err})
				return mid.CodeErr{C: http.StatusUnauthorized, Err: err}
			}

			if req.FormValue("state") != state {
				err := errors.New("state mismatch")
				finish(flowResult{err: err})
				return mid.CodeErr{C: http.StatusUnauthorized, Err: err}
			}

			code := req.FormValue("code")
			if code == "" {
				err := errors.New("no value for code (or error)")
				finish(flowResult{err: err})
				return mid.CodeErr{C: http.StatusBadRequest, Err: err}
			}

			tok, err := conf.Exchange(ctx, code, oauth2.VerifierOption(verifier))
			if err != nil {
				err = errors.Wrap(err, "exchanging authorization code")
				finish(flowResult{err: err})
				return mid.CodeErr{C: http.StatusUnauthorized, Err: err}
			}

			finish(flowResult{tok: tok})

			http.ServeContent(w, req, "done.html", time.Time{}, bytes.NewReader(doneHTML))

			return nil
		}),
	}

	go srv.Serve(listener)
	defer srv.Shutdown(context.Background())

	authURL := conf.AuthCodeURL(
		state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.S256ChallengeOption(verifier),
	)

	visit := a.Visit
	if visit == nil {
		visit = PrintURL(os.Stdout)
	}
	if err = visit(authURL); err != nil {
		return nil, errors.Wrap(err, "presenting authorization URL")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-results:
		if r.err != nil {
			return nil, r.err
		}
		if r.tok == nil {
			return nil, fmt.Errorf("no token")
		}
		return r.tok, nil
	}
}

// PrintURL produces a Loopback.Visit function that writes the URL to w
// for the user to open out of band.
func PrintURL(w io.Writer) func(string) error {
	return func(authURL string) error {
		_, err := fmt.Fprintf(w, "Please visit this URL to authorize this application: %s\n", authURL)
		return err
	}
}

// OpenBrowser produces a Loopback.Visit function that prints the URL to w
// and then tries to open it in the user's browser.
// Failing to launch a browser is not an error, since the URL has been printed.
func OpenBrowser(w io.Writer) func(string) error {
	printURL := PrintURL(w)
	return func(authURL string) error {
		if err := printURL(authURL); err != nil {
			return err
		}
		if err := browser.OpenURL(authURL); err != nil {
			fmt.Fprintf(w, "Could not open a browser (%s); open the URL above manually.\n", err)
		}
		return nil
	}
}

func randomState() (string, error) {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf[:]), nil
}
