// Package idgen provides usecase.IDGenerator implementations.
package idgen

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/iho/finledger/internal/usecase"
)

// Supported ID formats.
const (
	FormatULID = "ulid"
	FormatUUID = "uuid"
)

// ULIDGenerator generates ULID-based IDs.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}

// UUIDGenerator generates random (version 4) UUIDs.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUIDGenerator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate generates a new UUIDv4.
func (g *UUIDGenerator) Generate() string {
	return uuid.NewString()
}

// New returns the generator for format.
func New(format string) (usecase.IDGenerator, error) {
	switch format {
	case "", FormatULID:
		return NewULIDGenerator(), nil
	case FormatUUID:
		return NewUUIDGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown id format %q", format)
	}
}
