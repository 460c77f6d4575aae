package crypto

import "github.com/google/uuid"

// NewAuthKey returns a fresh opaque authkey.
// Keys are unique per process and time; they are not meant to be secret-grade random.
func NewAuthKey() string {
	return uuid.NewString()
}
