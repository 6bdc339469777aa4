// Command issue_token signs a bearer token for local testing of the API.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/config"
	httptransport "github.com/niuTTu2/decoration-sharing-api/internal/transport/http"
)

func main() {
	username := flag.String("user", "demo", "Username to put in the token subject")
	role := flag.String("role", string(domain.RoleUser), "Role claim (USER or ADMIN)")
	ttl := flag.Duration("ttl", 24*time.Hour, "Token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	token, err := httptransport.NewIdentityResolver(cfg.Auth.JWTSecret, nil).Issue(*username, domain.Role(*role), *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
