package id

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// NanoID produces URL-safe 21 character identifiers.
type NanoID struct{}

func (NanoID) New() string {
	value, err := gonanoid.New()
	if err != nil {
		// only fails when crypto/rand does.
		panic(err)
	}
	return value
}

// UUIDv7 produces time-ordered identifiers for append-only rows.
type UUIDv7 struct{}

func (UUIDv7) New() string {
	return uuid.Must(uuid.NewV7()).String()
}
