package auth

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"hash"
)

// Algorithm selects the keyed-hash digest used for signing.
type Algorithm string

const (
	HmacSHA1   Algorithm = "hmac-sha1"
	HmacSHA256 Algorithm = "hmac-sha256"
)

func hasherFor(algorithm Algorithm) (func() hash.Hash, error) {
	switch algorithm {
	case HmacSHA1:
		return sha1.New, nil
	case HmacSHA256:
		return sha256.New, nil
	default:
		return nil, fmt.Errorf("unsupported signing algorithm: %s", algorithm)
	}
}

// Sign computes the keyed hash of the canonical string and returns the
// base64 encoding of the raw digest. The canonical string is entirely the
// caller's responsibility; Sign adds no delimiters or normalization.
func Sign(secret, canonical string, algorithm Algorithm) (string, error) {
	newHash, err := hasherFor(algorithm)
	if err != nil {
		return "", err
	}
	mac := hmac.New(newHash, []byte(secret))
	mac.Write([]byte(canonical))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// Verify recomputes the signature for the canonical string and compares it
// against the candidate in constant time. An unsupported algorithm or a
// candidate of any shape verifies false, never panics.
func Verify(secret, canonical, candidate string, algorithm Algorithm) bool {
	expected, err := Sign(secret, canonical, algorithm)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(candidate))
}
