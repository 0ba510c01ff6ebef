// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
)

// ValidateAdminKey checks the provided admin key against the configured one.
// Both sides are hashed first so the comparison does not leak key length.
func ValidateAdminKey(provided, configured string) error {
	if provided == "" || configured == "" {
		return ErrInvalidAdminKey
	}

	got := sha256.Sum256([]byte(provided))
	want := sha256.Sum256([]byte(configured))
	if !hmac.Equal(got[:], want[:]) {
		return ErrInvalidAdminKey
	}
	return nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
