package edit

import "crypto/rand"

const (
	uidAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	uidLength   = 8
	// largest multiple of len(uidAlphabet) that fits in a byte
	uidLimit = 252
)

// NewUniqueID returns a random 8-character ID over A-Z0-9, the format
// schematic editors use for UNIQUEID.
func NewUniqueID() string {
	out := make([]byte, 0, uidLength)
	var b [16]byte
	for len(out) < uidLength {
		// crypto/rand.Read does not fail
		_, _ = rand.Read(b[:])
		for _, c := range b {
			if c >= uidLimit {
				continue
			}
			out = append(out, uidAlphabet[int(c)%len(uidAlphabet)])
			if len(out) == uidLength {
				break
			}
		}
	}
	return string(out)
}
