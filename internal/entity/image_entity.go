package entity

import (
	"strings"
	"time"
)

// ImageHandle is a lazily resolvable reference to a stored photo.
// When Placeholder is set there is nothing to fetch and the client shows its placeholder image.
type ImageHandle struct {
	Ref         string
	URL         string
	Placeholder bool
	ExpiresAt   time.Time
}

// SanitizeImageID keeps only digits and dots, in their original order.
func SanitizeImageID(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
