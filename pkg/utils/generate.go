package utils

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== QR CODE ====================

const qrCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateQRCode creates the per-user check-in code.
// Format: POOL-XXXXXXXX (uppercase, no ambiguous characters)
func GenerateQRCode() string {
	// 32-character charset divides 256 evenly, so mapping bytes onto it
	// keeps the distribution uniform
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("read random bytes: %v", err))
	}
	for i, b := range buf {
		buf[i] = qrCodeCharset[int(b)%len(qrCodeCharset)]
	}

	return fmt.Sprintf("POOL-%s", string(buf))
}

// NormalizeQRCode uppercases and trims scanned payloads before lookup
func NormalizeQRCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ==================== HELPERS ====================

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}
