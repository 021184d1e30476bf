package id

import (
	"strings"

	"github.com/google/uuid"
)

// Generator derives ids for events built from other events.
type Generator interface {
	FromParts(parts ...string) string
}

// UUIDGenerator returns name based (SHA-1) UUIDs, so the same parts always
// yield the same id across runs.
type UUIDGenerator struct {
	namespace uuid.UUID
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{namespace: uuid.NameSpaceURL}
}

func (g *UUIDGenerator) FromParts(parts ...string) string {
	return uuid.NewSHA1(g.namespace, []byte(strings.Join(parts, ""))).String()
}

// Random returns a fresh random UUID.
func Random() string {
	return uuid.NewString()
}
