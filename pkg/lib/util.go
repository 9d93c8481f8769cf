package lib

import (
	"github.com/google/uuid"
)

// NewRunID generates a UUID version 4 string (RFC 4122) tagging the log
// lines of a single spawn.
func NewRunID() string {
	return uuid.NewString()
}
