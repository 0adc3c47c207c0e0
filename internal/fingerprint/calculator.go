package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
)

// EncodedLength is the length of a fingerprint string: a SHA-256 digest in
// lowercase hex.
const EncodedLength = sha256.Size * 2

// Calculator is an interface for computing document fingerprints.
// This abstraction allows the orchestrator to be tested with scripted
// fingerprints.
type Calculator interface {
	// Calculate computes the fingerprint of the exact text passed in.
	// It is pure: no dependency on filesystem state, time, or locale.
	Calculate(text string) string
}

// SHA256 implements fingerprint calculation using SHA-256 over the raw
// character content, hex-encoded.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple
// goroutines. Using value semantics (pass by value) eliminates heap
// allocations.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
// Returns by value to avoid heap allocation (SHA256 is a zero-size type).
func New() SHA256 {
	return SHA256{}
}

// Calculate computes the hex-encoded SHA-256 of the exact text.
func (c SHA256) Calculate(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}
