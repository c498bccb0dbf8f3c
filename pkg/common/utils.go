package common

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// GenerateTxnNumber builds a human-readable transaction number from the
// current unix-millisecond timestamp and a 3-digit random suffix, e.g.
// TXN-1735689600123-042. Uniqueness is best effort: two calls in the same
// millisecond collide with probability 1/1000, so persistence pairs this
// with a unique constraint and a bounded retry.
func GenerateTxnNumber() string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return fmt.Sprintf("TXN-%d-%03d", time.Now().UnixMilli(), r.Intn(1000))
}

// MaskCardNumber keeps the BIN (first 6) and last 4 digits of a PAN and
// blanks the middle. Short or malformed input is masked entirely.
func MaskCardNumber(pan string) string {
	if len(pan) < 13 {
		return strings.Repeat("*", len(pan))
	}
	return pan[:6] + strings.Repeat("*", len(pan)-10) + pan[len(pan)-4:]
}
