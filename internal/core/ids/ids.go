// Package ids generates ballot receipt codes.
package ids

import "github.com/google/uuid"

// New returns a random version-4 UUID in the 8-4-4-4-12 hex layout.
// uuid.New draws from crypto/rand, which gives 122 random bits per id.
func New() string {
	return uuid.NewString()
}
