package internal

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewID builds an entity identifier like "user_3f9c1a2b4d5e": a short prefix
// naming the entity kind plus the first 12 hex chars of a v4 UUID.
func NewID(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s_%s", prefix, hex[:12])
}
