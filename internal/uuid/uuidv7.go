// Package uuid generates the time-ordered identifiers attached to requests
// and published events.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a UUIDv7 string. IDs generated later sort after earlier ones,
// so log lines and events can be ordered by ID alone.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Entropy failure; a random v4 still keeps IDs unique.
		return googleuuid.New().String()
	}
	return id.String()
}

// IsValid reports whether s parses as a UUID of any version.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
