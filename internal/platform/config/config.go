package config

import (
	"os"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr           string
	ConsentTTL     time.Duration
	JWTSigningKey  string
	TokenTTL       time.Duration
	ExportKeyHash  string
	AuditBufferLen int
}

// ConsentTTL is the fixed consent expiration policy: consents must be renewed
// at least annually.
var ConsentTTL = 365 * 24 * time.Hour

// TokenTTL bounds how long an operator token stays valid.
var TokenTTL = 15 * time.Minute

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("AEGIS_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	consentTTL := ConsentTTL
	if s := os.Getenv("AEGIS_CONSENT_TTL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			consentTTL = d
		}
	}

	tokenTTL := TokenTTL
	if s := os.Getenv("AEGIS_TOKEN_TTL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			tokenTTL = d
		}
	}

	jwtSigningKey := os.Getenv("AEGIS_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default - must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:          addr,
		ConsentTTL:    consentTTL,
		JWTSigningKey: jwtSigningKey,
		TokenTTL:      tokenTTL,
		// Bcrypt hash of the key that unlocks full safety report exports.
		// Empty disables the export endpoint.
		ExportKeyHash:  os.Getenv("AEGIS_EXPORT_KEY_HASH"),
		AuditBufferLen: 256,
	}
}
