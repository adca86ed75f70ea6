package utils

import "github.com/google/uuid"

// UUIDGenerator produces credential identifiers. Version 7 UUIDs are used so
// ids sort roughly by creation time; on the rare generation failure it falls
// back to a random v4.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
