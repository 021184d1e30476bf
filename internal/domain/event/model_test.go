package event

import (
	"testing"
	"time"

	"github.com/riskibarqy/event-agenda/internal/domain/session"
)

func TestEvent_CloneIsDeep(t *testing.T) {
	t.Parallel()

	e := Event{
		AlsoIn:   []string{"https://a.es"},
		Sessions: []session.Session{{Date: "2025-01-01 20:00"}},
		Cinema:   &CinemaDetails{Director: []string{"x"}},
	}
	c := e.Clone()
	c.AlsoIn[0] = "changed"
	c.Sessions[0].URL = "changed"
	c.Cinema.Director[0] = "changed"
	if e.AlsoIn[0] != "https://a.es" || e.Sessions[0].URL != "" || e.Cinema.Director[0] != "x" {
		t.Fatalf("clone shares memory with the original")
	}
	if !e.Equal(e.Clone()) || e.Key() != e.Clone().Key() {
		t.Fatalf("expected clone to be equal")
	}
	if e.Equal(c) || e.Key() == c.Key() {
		t.Fatalf("expected changed clone to differ")
	}
}

func TestEvent_URLs(t *testing.T) {
	t.Parallel()

	e := Event{
		URL:      "https://a.es",
		More:     "https://b.es",
		AlsoIn:   []string{"https://c.es", "https://a.es"},
		Sessions: []session.Session{{URL: "https://d.es"}, {URL: "https://c.es"}, {}},
	}
	want := []string{"https://a.es", "https://b.es", "https://c.es", "https://d.es"}
	got := e.URLs()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestEvent_Title(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"«La Celestina»":      "La Celestina",
		"EL PADRINO":          "El Padrino",
		"'Rayuela', de Julio": "'Rayuela', de Julio",
		"Normal":              "Normal",
	}
	for in, want := range tests {
		if got := (Event{Name: in}).Title(); got != want {
			t.Fatalf("Title(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestEvent_SessionFilters(t *testing.T) {
	t.Parallel()

	e := Event{Sessions: []session.Session{
		{Date: "2025-03-03 10:00"},
		{Date: "2025-03-03 19:00"},
		{Date: "2025-03-08 11:00"},
	}}
	now := time.Date(2025, 3, 3, 12, 0, 0, 0, session.Location())

	upcoming := e.RemoveOldSessions(now)
	if len(upcoming.Sessions) != 2 || len(e.Sessions) != 3 {
		t.Fatalf("unexpected sessions after removing old ones: %+v", upcoming.Sessions)
	}
	leisure := e.RemoveWorkingSessions()
	if len(leisure.Sessions) != 2 || leisure.Sessions[0].Date != "2025-03-03 19:00" {
		t.Fatalf("unexpected sessions after removing working hours: %+v", leisure.Sessions)
	}
	if e.Start() != "2025-03-03 10:00" || e.End() != "2025-03-08 11:00" {
		t.Fatalf("unexpected start/end: %s %s", e.Start(), e.End())
	}
}
