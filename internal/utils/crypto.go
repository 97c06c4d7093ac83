// internal/utils/crypto.go
package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

func GenerateRandomString(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	return string(b), nil
}

// SignMessage computes a hex HMAC-SHA256 over message with the given
// secret. Used for the time-limited approve/reject links.
func SignMessage(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifySignature(secret, message, signature string) bool {
	expected := SignMessage(secret, message)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// MaskIP zeroes the last octet of an IPv4 address (or the last group of
// an IPv6 address) so the stored value cannot identify a single host.
func MaskIP(ip string) string {
	if ip == "" {
		return ""
	}
	if strings.Contains(ip, ".") {
		parts := strings.Split(ip, ".")
		if len(parts) == 4 {
			parts[3] = "0"
			return strings.Join(parts, ".")
		}
	}
	if strings.Contains(ip, ":") {
		parts := strings.Split(ip, ":")
		parts[len(parts)-1] = "0"
		return strings.Join(parts, ":")
	}
	return ip
}

const maxDeviceInfoLength = 256

// SanitizeDeviceInfo caps and strips client-supplied device strings
// before they are persisted.
func SanitizeDeviceInfo(info string) string {
	info = strings.ReplaceAll(info, "<", "")
	info = strings.ReplaceAll(info, ">", "")
	info = strings.TrimSpace(info)
	if len(info) > maxDeviceInfoLength {
		info = info[:maxDeviceInfoLength]
	}
	return info
}

// DecisionMessage is the canonical signed payload binding a request id,
// an action and an absolute expiry to one link.
func DecisionMessage(requestID, action string, expiresUnix int64) string {
	return fmt.Sprintf("%s:%s:%d", requestID, action, expiresUnix)
}
