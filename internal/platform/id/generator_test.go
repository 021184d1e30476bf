package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_FromPartsIsStable(t *testing.T) {
	t.Parallel()

	g := NewUUIDGenerator()
	a := g.FromParts("md1", "md2")
	b := g.FromParts("md1", "md2")
	if a != b {
		t.Fatalf("expected stable id, got %s and %s", a, b)
	}
	if a == g.FromParts("md2", "md1") {
		t.Fatalf("expected part order to matter")
	}
	parsed, err := uuid.Parse(a)
	if err != nil {
		t.Fatalf("parse id: %v", err)
	}
	if parsed.Version() != 5 {
		t.Fatalf("expected a version 5 uuid, got %d", parsed.Version())
	}
}

func TestRandom(t *testing.T) {
	t.Parallel()

	if Random() == Random() {
		t.Fatalf("expected distinct random ids")
	}
}
