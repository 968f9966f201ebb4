// Package device derives a stable, non-identifying fingerprint of the client
// that granted a consent. The fingerprint ties a grant to a browsing context
// for dispute handling without storing the raw user agent.
package device

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mssola/useragent"
)

type Service struct {
	enabled bool
}

func NewService(enabled bool) *Service {
	return &Service{enabled: enabled}
}

// ComputeFingerprint hashes a coarse summary of the granting client.
// Note: does NOT include IP address (too volatile, and consent records are
// long-lived by design).
func (s *Service) ComputeFingerprint(userAgentString string) string {
	if !s.enabled || userAgentString == "" {
		return ""
	}

	ua := useragent.New(userAgentString)
	browser, version := ua.Browser()

	majorVersion := "unknown"
	if version != "" {
		parts := strings.Split(version, ".")
		if len(parts) > 0 && parts[0] != "" {
			majorVersion = parts[0]
		}
	}

	os := strings.ToLower(strings.TrimSpace(ua.OS()))
	if os == "" {
		os = "unknown"
	}
	browser = strings.ToLower(strings.TrimSpace(browser))
	if browser == "" {
		browser = "unknown"
	}
	platform := "desktop"
	if ua.Mobile() {
		platform = "mobile"
	}

	data := fmt.Sprintf("%s|%s|%s|%s", browser, majorVersion, os, platform)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
