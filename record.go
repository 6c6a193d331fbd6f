package wsauth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// Record is the credential file consumed by the agent.
// Field order here is the key order on disk.
//
// The identity the record belongs to is not stored in it;
// it is the file's base name (see Paths.CredentialsFile).
type Record struct {
	Token        string   `json:"token"`
	RefreshToken *string  `json:"refresh_token"`
	TokenURI     string   `json:"token_uri"`
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	Scopes       []string `json:"scopes"`
	Expiry       *string  `json:"expiry"`
}

// Naive UTC, as written by Python's datetime.isoformat,
// which is what the agent's credential loader parses.
const (
	expiryLayout      = "2006-01-02T15:04:05"
	expiryLayoutMicro = "2006-01-02T15:04:05.000000"
)

// NewRecord maps a token obtained with conf into a Record.
// If the provider did not report the scopes it granted,
// the record carries fallback instead, so Scopes is never empty
// as long as fallback isn't.
func NewRecord(conf *oauth2.Config, tok *oauth2.Token, fallback []string) Record {
	rec := Record{
		Token:        tok.AccessToken,
		TokenURI:     conf.Endpoint.TokenURL,
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,
		Scopes:       GrantedScopes(tok),
		Expiry:       FormatExpiry(tok.Expiry),
	}
	if tok.RefreshToken != "" {
		refresh := tok.RefreshToken
		rec.RefreshToken = &refresh
	}
	if len(rec.Scopes) == 0 {
		rec.Scopes = append([]string(nil), fallback...)
	}
	return rec
}

// GrantedScopes returns the scopes echoed back in the token response, in order.
// The result is empty if the response had none.
func GrantedScopes(tok *oauth2.Token) []string {
	s, _ := tok.Extra("scope").(string)
	return strings.Fields(s)
}

// FormatExpiry renders t as a naive UTC ISO-8601 timestamp,
// with microseconds only when they are non-zero.
// The zero time means "no expiry" and yields nil.
func FormatExpiry(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	t = t.UTC().Truncate(time.Microsecond)
	layout := expiryLayout
	if t.Nanosecond() != 0 {
		layout = expiryLayoutMicro
	}
	s := t.Format(layout)
	return &s
}

// ParseExpiry is the inverse of FormatExpiry.
// It also accepts RFC 3339 timestamps with a zone offset.
func ParseExpiry(s string) (time.Time, error) {
	// Fractional seconds are accepted even though the layout omits them.
	t, err := time.ParseInLocation(expiryLayout, s, time.UTC)
	if err == nil {
		return t, nil
	}
	if t, err2 := time.Parse(time.RFC3339Nano, s); err2 == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errors.Wrapf(err, "parsing expiry %q", s)
}

// Write stores the record in filename as indented JSON,
// creating the parent directory if needed.
// An existing file is truncated and overwritten.
// The write is not atomic: a crash midway can leave a partial file.
func (r Record) Write(filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return errors.Wrapf(err, "creating directory for %s", filename)
	}

	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrapf(err, "opening %s for writing", filename)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err = enc.Encode(r); err != nil {
		return errors.Wrapf(err, "writing %s", filename)
	}
	return errors.Wrapf(f.Close(), "closing %s", filename)
}

// ReadRecord loads a record written by Write.
func ReadRecord(filename string) (Record, error) {
	var rec Record

	f, err := os.Open(filename)
	if err != nil {
		return rec, err
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(&rec)
	return rec, errors.Wrapf(err, "decoding record in %s", filename)
}

// OAuth2Token converts the record back into a token,
// for Go programs that reuse the credential file.
func (r Record) OAuth2Token() (*oauth2.Token, error) {
	tok := &oauth2.Token{
		AccessToken: r.Token,
		TokenType:   "Bearer",
	}
	if r.RefreshToken != nil {
		tok.RefreshToken = *r.RefreshToken
	}
	if r.Expiry != nil {
		expiry, err := ParseExpiry(*r.Expiry)
		if err != nil {
			return nil, err
		}
		tok.Expiry = expiry
	}
	return tok.WithExtra(map[string]interface{}{"scope": strings.Join(r.Scopes, " ")}), nil
}
