package utils

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strings"
)

func EnvOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

// GenerateSecureToken returns a hex token of the given byte length,
// used as an opaque session token for staff logins.
func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
