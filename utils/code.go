package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewReferenceCode builds a short human-readable reference like BKG-7F3A21
// from a fresh UUID. Codes are for humans; uniqueness is still anchored on
// the entity's UUID primary id.
func NewReferenceCode(prefix string) string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return prefix + "-" + raw[:6]
}
