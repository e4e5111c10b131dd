package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyValidSignature(t *testing.T) {
	body := []byte(`{"action":"opened","number":42}`)
	secret := "my-webhook-secret"

	result := Verify(body, secret, sign(secret, body))

	assert.Equal(t, Valid, result)
}

func TestVerifyInvalidSignature(t *testing.T) {
	body := []byte(`{"action":"opened"}`)
	secret := "my-webhook-secret"

	tests := []struct {
		name   string
		header string
	}{
		{"wrong secret", sign("other-secret", body)},
		{"tampered body", sign(secret, []byte(`{"action":"closed"}`))},
		{"garbage header", "sha256=deadbeef"},
		{"missing prefix", hex.EncodeToString([]byte("nonsense"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Invalid, Verify(body, secret, tt.header))
		})
	}
}

func TestVerifyMissingHeader(t *testing.T) {
	result := Verify([]byte("payload"), "secret", "")

	assert.Equal(t, MissingHeader, result)
}

func TestVerifyMissingSecretSkipsVerification(t *testing.T) {
	// No secret configured: verification is skipped regardless of header
	assert.Equal(t, MissingSecretSkipped, Verify([]byte("payload"), "", ""))
	assert.Equal(t, MissingSecretSkipped, Verify([]byte("payload"), "", "sha256=anything"))
}

func TestVerifyUsesRawBytes(t *testing.T) {
	// Semantically equal JSON with different byte layout must not verify
	body := []byte(`{"a": 1}`)
	reserialized := []byte(`{"a":1}`)
	secret := "secret"

	assert.Equal(t, Valid, Verify(body, secret, sign(secret, body)))
	assert.Equal(t, Invalid, Verify(reserialized, secret, sign(secret, body)))
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "valid", Valid.String())
	assert.Equal(t, "missing_secret_skipped", MissingSecretSkipped.String())
	assert.Equal(t, "missing_header", MissingHeader.String())
	assert.Equal(t, "invalid", Invalid.String())
}
