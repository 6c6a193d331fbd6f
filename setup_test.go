package wsauth

import (
	"context"
	"encoding/json"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

type fakeAuthorizer struct {
	tok    *oauth2.Token
	err    error
	called *bool
}

func (f fakeAuthorizer) Token(context.Context) (*oauth2.Token, error) {
	if f.called != nil {
		*f.called = true
	}
	return f.tok, f.err
}

func TestSetupScenario(t *testing.T) {
	p := Paths{Root: t.TempDir()}
	writeSecrets(t, p)

	var (
		out     strings.Builder
		gotConf *oauth2.Config
	)
	s := Setup{
		Paths: p,
		Out:   &out,
		NewAuthorizer: func(conf *oauth2.Config) Authorizer {
			gotConf = conf
			return fakeAuthorizer{tok: &oauth2.Token{AccessToken: "T1", RefreshToken: "R1"}}
		},
	}

	filename, err := s.Run(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if want := p.CredentialsFile("alice@example.com"); filename != want {
		t.Errorf("got filename %s, want %s", filename, want)
	}
	if !reflect.DeepEqual(gotConf.Scopes, Scopes) {
		t.Errorf("requested scopes %v", gotConf.Scopes)
	}

	raw, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]interface{}
	if err = json.Unmarshal(raw, &got); err != nil {
		t.Fatal(err)
	}

	wantScopes := make([]interface{}, len(Scopes))
	for i, s := range Scopes {
		wantScopes[i] = s
	}
	want := map[string]interface{}{
		"token":         "T1",
		"refresh_token": "R1",
		"token_uri":     "https://oauth2.googleapis.com/token",
		"client_id":     "cid.apps.googleusercontent.com",
		"client_secret": "csecret",
		"scopes":        wantScopes,
		"expiry":        nil,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if !strings.Contains(out.String(), "SUCCESS! Credentials saved to: "+filename) {
		t.Errorf("no confirmation in output:\n%s", out.String())
	}
}

func TestSetupMissingSecrets(t *testing.T) {
	p := Paths{Root: t.TempDir()}

	var called bool
	s := Setup{
		Paths: p,
		Out:   new(strings.Builder),
		NewAuthorizer: func(*oauth2.Config) Authorizer {
			return fakeAuthorizer{tok: &oauth2.Token{AccessToken: "T1"}, called: &called}
		},
	}

	_, err := s.Run(context.Background(), "alice@example.com")
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("got %v, want *ConfigError", err)
	}
	if cerr.Path != p.SecretsFile() {
		t.Errorf("got path %s, want %s", cerr.Path, p.SecretsFile())
	}
	if called {
		t.Error("authorizer called without secrets")
	}
	if _, err := os.Stat(p.CredentialsFile("alice@example.com")); !os.IsNotExist(err) {
		t.Errorf("credentials file exists (err %v)", err)
	}
}

func TestSetupAuthFlowError(t *testing.T) {
	p := Paths{Root: t.TempDir()}
	writeSecrets(t, p)

	cause := errors.New("timed out waiting for callback")
	s := Setup{
		Paths: p,
		Out:   new(strings.Builder),
		NewAuthorizer: func(*oauth2.Config) Authorizer {
			return fakeAuthorizer{err: cause}
		},
	}

	_, err := s.Run(context.Background(), "alice@example.com")
	var aerr *AuthFlowError
	if !errors.As(err, &aerr) {
		t.Fatalf("got %v, want *AuthFlowError", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("got %v, want it to wrap %v", err, cause)
	}
	if _, err := os.Stat(p.CredentialsFile("alice@example.com")); !os.IsNotExist(err) {
		t.Errorf("credentials file exists (err %v)", err)
	}
}

func TestSetupEmptyIdentity(t *testing.T) {
	s := Setup{Paths: Paths{Root: t.TempDir()}, Out: new(strings.Builder)}

	_, err := s.Run(context.Background(), "")
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Errorf("got %v, want *UsageError", err)
	}
}

func TestSetupGrantedScopes(t *testing.T) {
	p := Paths{Root: t.TempDir()}
	writeSecrets(t, p)

	tok := (&oauth2.Token{AccessToken: "T1"}).WithExtra(map[string]interface{}{
		"scope": "https://www.googleapis.com/auth/drive openid",
	})
	s := Setup{
		Paths: p,
		Out:   new(strings.Builder),
		NewAuthorizer: func(*oauth2.Config) Authorizer {
			return fakeAuthorizer{tok: tok}
		},
	}

	filename, err := s.Run(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatal(err)
	}
	rec, err := ReadRecord(filename)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"https://www.googleapis.com/auth/drive", "openid"}
	if !reflect.DeepEqual(rec.Scopes, want) {
		t.Errorf("got scopes %v, want %v", rec.Scopes, want)
	}
	if rec.RefreshToken != nil {
		t.Errorf("got refresh token %q, want nil", *rec.RefreshToken)
	}
}
