package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// NumberRetries bounds how often create paths regenerate a reference after
// a unique-index conflict.
const NumberRetries = 3

// GenerateNumber builds a human-readable reference like CNT202501042:
// prefix + year + month + a 3-digit random suffix. Uniqueness is enforced by
// the database constraint; the create paths regenerate on conflict.
func GenerateNumber(prefix string, now time.Time) string {
	return fmt.Sprintf("%s%04d%02d%03d", prefix, now.Year(), int(now.Month()), rand.Intn(1000))
}
