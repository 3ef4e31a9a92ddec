package shared

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// MaxNumberAttempts bounds how often callers regenerate a document number
// after a unique-constraint conflict.
const MaxNumberAttempts = 3

// NewDocumentNo builds a document number candidate: prefix, timestamp down
// to the second, four random digits. Uniqueness is not guaranteed here; the
// candidate is inserted under a unique constraint and regenerated on
// conflict.
func NewDocumentNo(prefix string, now time.Time) string {
	return fmt.Sprintf("%s%s%04d", prefix, now.Format("20060102150405"), rand.IntN(10000))
}
