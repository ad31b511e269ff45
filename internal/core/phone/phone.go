// Package phone canonicalizes voter phone numbers for duplicate detection.
//
// Only decimal digits survive, so "+243 97 000 0001" and "243970000001"
// compare equal. Numbers that differ only in formatting are one voter;
// numbers whose digits differ are never linked, even when they belong to
// the same person.
package phone

import "strings"

func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
