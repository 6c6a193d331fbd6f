package wsauth_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/nanoclaw/wsauth"
)

func Example() {
	projectDir, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	s := wsauth.Setup{Paths: wsauth.Paths{Root: projectDir}}

	filename, err := s.Run(context.Background(), "alice@example.com")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(filename)
}

func ExamplePaths_CredentialsFile() {
	p := wsauth.Paths{Root: "/srv/agent"}
	fmt.Println(p.CredentialsFile("alice@example.com"))
	// Output: /srv/agent/data/sessions/main/.claude/google-workspace-credentials/alice@example.com.json
}
