package session

import (
	"testing"
	"time"
)

func TestIsWorkingHours(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		date string
		want bool
	}{
		{name: "monday morning", date: "2025-03-03 10:00", want: true},
		{name: "friday at eight", date: "2025-03-07 08:00", want: true},
		{name: "friday at three", date: "2025-03-07 15:00", want: false},
		{name: "tuesday evening", date: "2025-03-04 19:30", want: false},
		{name: "saturday morning", date: "2025-03-08 11:00", want: false},
		{name: "unparseable", date: "soon", want: false},
	}
	for _, tc := range tests {
		if got := (Session{Date: tc.date}).IsWorkingHours(); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestTimeUsesMadridZone(t *testing.T) {
	t.Parallel()

	got, err := Session{Date: "2025-07-01 21:00"}.Time()
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	want := time.Date(2025, 7, 1, 19, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got.UTC())
	}
	if h := (Session{Date: "2025-07-01 21:00"}).Hour(); h != "21:00" {
		t.Fatalf("unexpected hour %q", h)
	}
}

func TestIDDependsOnDateDigitsAndURL(t *testing.T) {
	t.Parallel()

	a := Session{Date: "2025-07-01 21:00", URL: "https://a.es/1"}
	b := Session{Date: "2025-07-01 21:00", URL: "https://a.es/1", Title: "other", Full: true}
	c := Session{Date: "2025-07-01 21:00", URL: "https://a.es/2"}
	if a.ID() != b.ID() {
		t.Fatalf("expected title and full flag not to change the id")
	}
	if a.ID() == c.ID() {
		t.Fatalf("expected different urls to produce different ids")
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	got := Normalize([]Session{
		{Date: "2025-07-02 20:00", URL: " https://a.es "},
		{Date: "2025-07-01 20:00"},
		{Date: "2025-07-02 20:00", URL: "https://a.es"},
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 sessions, got %d: %+v", len(got), got)
	}
	if got[0].Date != "2025-07-01 20:00" || got[1].URL != "https://a.es" {
		t.Fatalf("unexpected normalized sessions: %+v", got)
	}
	if Normalize(nil) != nil {
		t.Fatalf("expected nil for empty input")
	}
}
