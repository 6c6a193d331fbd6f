// Package wsauth performs the one-time OAuth setup that lets an agent use Google Workspace APIs on a user's behalf.
//
// The caller typically has a client-secret file from the Google Cloud console
// and wants a credential record on disk for the agent to pick up.
// Usage in that case is:
//
//	s := wsauth.Setup{Paths: wsauth.Paths{Root: projectDir}}
//	filename, err := s.Run(ctx, "alice@example.com")
//	if err != nil { ... }
//
// Setup reads the client secrets from Paths.SecretsFile,
// runs a Loopback authorization (printing a URL for the user to visit
// and waiting for the redirect on localhost:8000),
// and writes a Record to Paths.CredentialsFile.
//
// The pieces can also be used separately:
// LoadConfig, Loopback.Token, NewRecord, and Record.Write.
package wsauth
