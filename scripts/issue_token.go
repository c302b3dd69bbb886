//go:build ignore

// This script issues a signed user token for local testing.
// Run with: go run scripts/issue_token.go -user 42 -email me@example.com
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/guttosm/pizza-cart/internal/service"
)

func main() {
	_ = godotenv.Load()

	userID := flag.String("user", "", "user id placed in the sub claim")
	email := flag.String("email", "", "optional email claim")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	secret := flag.String("secret", os.Getenv("JWT_SECRET_KEY"), "HMAC secret (defaults to JWT_SECRET_KEY)")
	flag.Parse()

	if *userID == "" || *secret == "" {
		flag.Usage()
		os.Exit(2)
	}

	token, err := service.NewTokenValidator(*secret).Issue(*userID, *email, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error issuing token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
