package uid

import "github.com/google/uuid"

// New returns a fresh identifier for pantry items, scan logs and request
// tracing. UUIDv4 under the hood; callers treat it as an opaque string.
func New() string {
	return uuid.New().String()
}

// IsValid reports whether id is a well-formed identifier produced by New.
// Used to reject malformed item IDs at the route boundary before they
// reach a repository lookup.
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
