package shared

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// NewOrderNo builds a human-readable order number: prefix, local timestamp
// to the second and six random digits, e.g. SO20240601120000123456.
func NewOrderNo(prefix string, now time.Time) string {
	return fmt.Sprintf("%s%s%06d", prefix, now.Format("20060102150405"), rand.IntN(1000000))
}
