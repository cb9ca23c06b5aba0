package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/humanbelnik/planpoker/core/internal/config"
	service_auth "github.com/humanbelnik/planpoker/core/internal/service/auth"
)

var (
	accountFlag = flag.String("account", "", "account id to put in the subject")
	adminOfFlag = flag.String("admin-of", "", "comma separated group ids the account administers")
	ttlFlag     = flag.Duration("ttl", 24*time.Hour, "token lifetime")
)

// Prints a signed account token for local use with the client.
func main() {
	cfg := config.Load()
	if *accountFlag == "" {
		log.Fatal("-account is required")
	}

	var adminOf []string
	for _, g := range strings.Split(*adminOfFlag, ",") {
		if g = strings.TrimSpace(g); g != "" {
			adminOf = append(adminOf, g)
		}
	}

	authService := service_auth.New(cfg.Auth.JWTSecret, nil, cfg.Auth.AnonymousSessionTTL)
	token, err := authService.IssueAccount(*accountFlag, adminOf, *ttlFlag)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}
	fmt.Println(token)
}
