// Package id generates record identifiers.
package id

import "github.com/google/uuid"

// UUIDv7 issues time ordered UUIDs so inserts stay index friendly.
type UUIDv7 struct{}

func (UUIDv7) NewID() string {
	u, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return u.String()
}
