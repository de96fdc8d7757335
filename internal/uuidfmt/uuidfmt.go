// Package uuidfmt formats the raw 16-byte UUID fields VMFS stores
// on-disk as the canonical hyphenated string form, using
// github.com/google/uuid rather than hand-rolled hex formatting.
package uuidfmt

import "github.com/google/uuid"

// Format renders a raw on-disk UUID as its canonical string form.
func Format(raw [16]byte) string {
	return uuid.UUID(raw).String()
}
