package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// shortHashLen is enough for log correlation without being reversible
// by table lookup in practice.
const shortHashLen = 12

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// ShortHash produces a short, irreversible hash prefix of the input,
// used to correlate client IPs in logs without storing raw PII.
func ShortHash(input string) string {
	return SHA256Hex(input)[:shortHashLen]
}
