// Command tokengen issues service tokens for callers of /process-ticket.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Night40050/support-copilot/internal/auth"
	"github.com/Night40050/support-copilot/internal/config"
)

func main() {
	var (
		service = flag.String("service", "", "Name of the calling service (required)")
		ttl     = flag.Int("ttl", 0, "Token lifetime in minutes (defaults to AUTH_ACCESS_TOKEN_TTL_MINUTES)")
		scopes  = flag.String("scopes", auth.ScopeProcessTickets, "Comma separated scopes")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET must be set to issue tokens")
	}
	if *service == "" {
		flag.Usage()
		os.Exit(2)
	}

	minutes := cfg.Auth.AccessTokenTTLMinutes
	if *ttl > 0 {
		minutes = *ttl
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, minutes)
	token, expiresAt, err := tokens.GenerateToken(*service, splitScopes(*scopes)...)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}

	fmt.Fprintf(os.Stderr, "expires %s\n", expiresAt.UTC().Format(time.RFC3339))
	fmt.Println(token)
}

func splitScopes(raw string) []string {
	var scopes []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}
