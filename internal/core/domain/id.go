package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID generates a unique identifier with an optional type prefix, e.g.
// "meeting_20251107143005_1a2b3c4d". The timestamp keeps identifiers
// roughly sortable by creation time; the uuid fragment keeps them unique.
func NewID(prefix string) string {
	unique := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	stamp := time.Now().Format("20060102150405")
	if prefix == "" {
		return fmt.Sprintf("%s_%s", stamp, unique)
	}
	return fmt.Sprintf("%s_%s_%s", prefix, stamp, unique)
}
