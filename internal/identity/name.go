// Package identity derives cosmetic display names from opaque user ids.
package identity

import (
	"fmt"
	"unicode/utf16"
)

const buckets = 10000

// DeriveName maps an opaque user identifier to "Anonymous User #DDDD".
// The hash is a 32-bit rolling hash over UTF-16 code units; it is stable
// but not collision resistant and must not be used for access decisions.
func DeriveName(uid string) string {
	var h int32
	for _, c := range utf16.Encode([]rune(uid)) {
		h = h*31 + int32(c)
	}
	n := int64(h)
	if n < 0 {
		n = -n
	}
	return fmt.Sprintf("Anonymous User #%04d", n%buckets)
}
