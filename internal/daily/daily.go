// internal/daily/daily.go
//
// Daily target selection.
// Every server with the same salt and word pool picks the same target for a
// UTC calendar day: index = HMAC-SHA256(salt, "YYYY-MM-DD") mod len(pool).
// Nothing is stored; the word is recomputed on each request.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// Word picks the day's target from pool. ok is false for an empty pool.
func Word(date time.Time, salt string, pool []string) (word string, ok bool) {
	if len(pool) == 0 {
		return "", false
	}
	return pool[WordIndex(date, salt, len(pool))], true
}
