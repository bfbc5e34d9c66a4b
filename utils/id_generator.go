package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Identifiers must be identical on every endorsing peer, so they are derived
// from the transaction ID rather than a clock or random source.

// ComplaintID creates a citizen-facing complaint identifier from the
// submitting transaction ID, e.g. "GRV-4F2A91C3".
func ComplaintID(prefix, txID string) string {
	hash := sha256.Sum256([]byte(txID))
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(hex.EncodeToString(hash[:4])))
}

// DerivedID creates a unique identifier scoped to a transaction. Additional
// parts keep IDs distinct when one transaction generates several.
func DerivedID(prefix, txID string, parts ...string) string {
	hash := sha256.Sum256([]byte(txID + "|" + strings.Join(parts, "|")))
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(hash[:6]))
}

// ValidateID checks if an ID has the expected format
func ValidateID(id, expectedPrefix string) error {
	if len(id) < len(expectedPrefix)+1 {
		return fmt.Errorf("ID too short: %s", id)
	}

	if id[:len(expectedPrefix)] != expectedPrefix {
		return fmt.Errorf("ID does not have expected prefix %s: %s", expectedPrefix, id)
	}

	return nil
}
