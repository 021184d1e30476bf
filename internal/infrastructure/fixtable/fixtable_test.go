package fixtable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/event-agenda/internal/domain/category"
)

const sample = `
events:
  "abc":
    price: 0
    category: THEATER
    name: La casa de Bernarda Alba
    place:
      name: Teatro Español
      address: Calle del Príncipe, 25
  "film":
    director: [Agnès Varda]
    year: 1962
sessions:
  "abc_2025-03-01 20:00": https://www.teatroespanol.es/bernarda
`

func TestParse(t *testing.T) {
	t.Parallel()

	got, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", got.Len())
	}

	ov, ok := got.Event("abc")
	if !ok {
		t.Fatalf("expected override for abc")
	}
	if ov.Price == nil || *ov.Price != 0 {
		t.Fatalf("expected zero price override, got %v", ov.Price)
	}
	if ov.Category == nil || *ov.Category != category.Theater {
		t.Fatalf("expected THEATER, got %v", ov.Category)
	}
	if ov.Place == nil || ov.Place.Name != "Teatro Español" {
		t.Fatalf("unexpected place: %+v", ov.Place)
	}
	if ov.URL != nil {
		t.Fatalf("expected url not overridden")
	}

	film, _ := got.Event("film")
	if film.Year == nil || *film.Year != 1962 || len(film.Director) != 1 {
		t.Fatalf("unexpected film override: %+v", film)
	}

	u, ok := got.SessionURL("abc", "2025-03-01 20:00")
	if !ok || u != "https://www.teatroespanol.es/bernarda" {
		t.Fatalf("unexpected session url: %q", u)
	}
}

func TestParse_RejectsUnknownCategory(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte("events:\n  x:\n    category: OPERETTA\n")); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestParse_RejectsBadSessionKey(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte("sessions:\n  nodate: https://a.es\n")); err == nil {
		t.Fatalf("expected error for session key without date")
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	empty, err := Load("")
	if err != nil || empty.Len() != 0 {
		t.Fatalf("expected empty table, got %d entries err=%v", empty.Len(), err)
	}

	path := filepath.Join(t.TempDir(), "fix.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", got.Len())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
