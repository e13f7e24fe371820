package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"fastcountdown/internal/middleware"
)

// confirmtoken prints a bearer token for the payment collaborator that calls
// POST /v1/donations/confirmed.
func main() {
	var (
		secretFlag  string
		subjectFlag string
		ttlFlag     time.Duration
	)
	flag.StringVar(&secretFlag, "secret", "", "signing secret (fallbacks to CONFIRM_SECRET)")
	flag.StringVar(&subjectFlag, "sub", "payment-bridge", "service name recorded with each confirmation")
	flag.DurationVar(&ttlFlag, "ttl", 30*24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()

	secret := strings.TrimSpace(secretFlag)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("CONFIRM_SECRET"))
	}
	if secret == "" {
		fmt.Fprintln(os.Stderr, "CONFIRM_SECRET is required via -secret or environment")
		os.Exit(1)
	}

	subject := strings.TrimSpace(subjectFlag)
	if subject == "" {
		fmt.Fprintln(os.Stderr, "-sub must not be empty")
		os.Exit(1)
	}

	if ttlFlag <= 0 {
		fmt.Fprintln(os.Stderr, "-ttl must be positive")
		os.Exit(1)
	}

	claims := middleware.NewServiceClaims(subject, "fastcountdown", time.Now().Add(ttlFlag))

	token, err := middleware.SignServiceToken(secret, claims)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
