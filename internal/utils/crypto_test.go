// internal/utils/crypto_test.go
package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSignAndVerify(t *testing.T) {
	secret := "test-hook-secret"
	message := DecisionMessage("req-123", "approve", time.Now().Add(time.Hour).Unix())

	signature := SignMessage(secret, message)
	assert.NotEmpty(t, signature)
	assert.True(t, VerifySignature(secret, message, signature))
}

func TestVerifyRejectsTampering(t *testing.T) {
	secret := "test-hook-secret"
	expires := time.Now().Add(time.Hour).Unix()
	signature := SignMessage(secret, DecisionMessage("req-123", "approve", expires))

	// Swapping any signed component invalidates the signature.
	assert.False(t, VerifySignature(secret, DecisionMessage("req-999", "approve", expires), signature))
	assert.False(t, VerifySignature(secret, DecisionMessage("req-123", "reject", expires), signature))
	assert.False(t, VerifySignature(secret, DecisionMessage("req-123", "approve", expires+1), signature))
	assert.False(t, VerifySignature("other-secret", DecisionMessage("req-123", "approve", expires), signature))
}

func TestMaskIP(t *testing.T) {
	assert.Equal(t, "203.0.113.0", MaskIP("203.0.113.42"))
	assert.Equal(t, "2001:db8::0", MaskIP("2001:db8::1"))
	assert.Equal(t, "", MaskIP(""))
	assert.Equal(t, "not-an-ip", MaskIP("not-an-ip"))
}

func TestSanitizeDeviceInfo(t *testing.T) {
	assert.Equal(t, "Firefox on Linux", SanitizeDeviceInfo("  Firefox on Linux "))
	assert.Equal(t, "scriptalert(1)/script", SanitizeDeviceInfo("<script>alert(1)</script>"))

	long := strings.Repeat("x", 1000)
	assert.Len(t, SanitizeDeviceInfo(long), 256)
}

func TestGenerateRandomString(t *testing.T) {
	a, err := GenerateRandomString(24)
	assert.NoError(t, err)
	assert.Len(t, a, 24)

	b, err := GenerateRandomString(24)
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}
