package utils

import (
	"crypto/rand"
	"fmt"

	"github.com/mr-tron/base58"
)

// GenerateDrawCode creates a short base58 reference code for a winner record.
// The code is what the player sees on the result card and quotes when asking
// about their payout, so it must be unguessable.
func GenerateDrawCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate draw code: %w", err)
	}

	return base58.Encode(buf), nil
}
