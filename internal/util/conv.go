package util

import (
	"strconv"
)

// MustParseUint parses a decimal id, returning 0 when the string is not a valid id.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}
