// Package main provides a CLI tool for generating operator tokens for the
// aegis API. These tokens use the dev signing key by default and will NOT
// work against a production deployment.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"aegis/internal/opstoken"
)

const (
	// Dev signing key, matches config.go when AEGIS_JWT_SIGNING_KEY is not set.
	devSigningKey = "dev-secret-key-change-in-production"

	defaultIssuer   = "aegis"
	defaultTokenTTL = 15 * time.Minute
)

type tokenOutput struct {
	Token     string            `json:"token"`
	Operator  string            `json:"operator"`
	ExpiresIn string            `json:"expires_in"`
	Usage     map[string]string `json:"usage"`
}

func main() {
	operator := flag.String("operator", "", "Operator identity to embed in the token (required)")
	key := flag.String("key", devSigningKey, "HMAC signing key")
	ttl := flag.Duration("ttl", defaultTokenTTL, "Token time-to-live")
	asJSON := flag.Bool("json", false, "Output as JSON")
	flag.Parse()

	if *operator == "" {
		fmt.Fprintln(os.Stderr, "error: -operator is required")
		flag.Usage()
		os.Exit(2)
	}

	svc := opstoken.NewService(*key, defaultIssuer, *ttl)
	token, err := svc.Generate(*operator, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to generate token: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		out := tokenOutput{
			Token:     token,
			Operator:  *operator,
			ExpiresIn: ttl.String(),
			Usage: map[string]string{
				"header": "Authorization: Bearer " + token,
			},
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
		return
	}

	fmt.Println(token)
}
