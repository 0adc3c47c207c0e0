// Package fingerprint computes the content fingerprint used as the staleness
// oracle for generated artifacts.
//
// The fingerprint is a SHA-256 digest of the exact character sequence of the
// serialized composite document, hex-encoded for safe embedding as a single
// text line. Two fingerprints are equal iff the source text was
// byte-identical at the time of computation.
//
// Deliberately no normalization is applied: two structurally-equivalent but
// textually-different documents (whitespace, attribute order) fingerprint
// differently and trigger regeneration. False negatives of this kind are
// safe; a false "up to date" is impossible by construction since comparison
// is on raw text.
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package fingerprint
