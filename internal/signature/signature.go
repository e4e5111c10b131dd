// Package signature validates the authenticity of inbound webhook requests.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Result is the outcome of verifying a webhook signature
type Result int

const (
	// Valid means the signature matched the configured secret
	Valid Result = iota
	// MissingSecretSkipped means no secret is configured and verification
	// was skipped. Callers must treat this as a security-degraded mode and
	// log it at warn level.
	MissingSecretSkipped
	// MissingHeader means a secret is configured but the request carried no
	// signature header. Callers must reject with an authentication error.
	MissingHeader
	// Invalid means the supplied signature did not match
	Invalid
)

// String returns a human-readable name for the result
func (r Result) String() string {
	switch r {
	case Valid:
		return "valid"
	case MissingSecretSkipped:
		return "missing_secret_skipped"
	case MissingHeader:
		return "missing_header"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Verify checks the HMAC-SHA256 signature of a webhook body against the
// configured shared secret. The body must be the exact raw bytes received;
// re-serialized JSON is not guaranteed to reproduce the byte stream the
// signature was computed over.
func Verify(body []byte, secret, header string) Result {
	if secret == "" {
		return MissingSecretSkipped
	}
	if header == "" {
		return MissingHeader
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	// Constant-time comparison to prevent timing attacks
	if hmac.Equal([]byte(expected), []byte(header)) {
		return Valid
	}
	return Invalid
}
