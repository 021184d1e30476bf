package jsonfeed

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/event-agenda/internal/domain/category"
	"github.com/riskibarqy/event-agenda/internal/domain/event"
	"github.com/riskibarqy/event-agenda/internal/domain/place"
	"github.com/riskibarqy/event-agenda/internal/domain/session"
	"github.com/riskibarqy/event-agenda/internal/platform/logging"
	"github.com/riskibarqy/event-agenda/internal/usecase"
)

const rawPool = `[
  {
    "id": "dore-1",
    "url": "https://www.cultura.gob.es/dore/1",
    "name": "Vértigo (1958) de Alfred Hitchcock",
    "price": 3,
    "category": "CINEMA",
    "place": {"name": "Cine Doré", "address": "Calle de Santa Isabel, 3", "latlon": "40.411950,-3.699056"},
    "sessions": [{"date": "2025-03-01 19:30"}],
    "scraper": "dore"
  },
  {
    "id": "ce-2",
    "name": "Concierto",
    "price": 0,
    "category": "music",
    "also_in": ["https://lacasaencendida.es/c/2", ""],
    "sessions": [{"date": "2025-03-02 20:00", "url": "https://lacasaencendida.es/c/2"}]
  }
]`

func TestCodec_DecodeEvents(t *testing.T) {
	t.Parallel()

	got, err := newTestCodec(t).DecodeEvents(context.Background(), strings.NewReader(rawPool))
	if err != nil {
		t.Fatalf("decode events: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Category != category.Cinema || got[0].Cinema == nil {
		t.Fatalf("expected cinema event, got %+v", got[0])
	}
	if got[0].Place.Name != "Cine Doré" || len(got[0].Sessions) != 1 {
		t.Fatalf("unexpected first event: %+v", got[0])
	}
	if got[1].Category != category.Music || got[1].Cinema != nil {
		t.Fatalf("unexpected second event: %+v", got[1])
	}
}

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(logging.NewNop())
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	return c
}

func TestCodec_DecodeEvents_MalformedPayload(t *testing.T) {
	t.Parallel()

	for _, payload := range []string{`[{"id": "x",`, `{"id": "x"}`} {
		_, err := newTestCodec(t).DecodeEvents(context.Background(), strings.NewReader(payload))
		if !errors.Is(err, usecase.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", payload, err)
		}
	}
}

func TestCodec_DecodeEvents_SkipsInvalidRecords(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"missing id":       `{"name": "x", "sessions": []}`,
		"bad session date": `{"id": "x", "sessions": [{"date": "01/03/2025 19:30"}]}`,
		"unknown category": `{"id": "x", "category": "OPERETTA", "sessions": []}`,
		"bad latlon":       `{"id": "x", "place": {"name": "a", "latlon": "north"}, "sessions": []}`,
		"bad url":          `{"id": "x", "url": "not a url", "sessions": []}`,
	}
	valid := `{"id": "ok", "name": "Concierto", "sessions": [{"date": "2025-03-02 20:00"}]}`
	for name, record := range cases {
		payload := "[" + record + "," + valid + "]"
		got, err := newTestCodec(t).DecodeEvents(context.Background(), strings.NewReader(payload))
		if err != nil {
			t.Fatalf("%s: decode events: %v", name, err)
		}
		if len(got) != 1 || got[0].ID != "ok" {
			t.Fatalf("%s: expected only the valid event, got %+v", name, got)
		}
	}
}

func TestCodec_EncodeEvents(t *testing.T) {
	t.Parallel()

	events := []event.Event{{
		ID:       "x",
		URL:      "https://a.es/?a=1&b=2",
		Name:     "EL PADRINO",
		Category: category.Cinema,
		Place:    place.Place{Name: "Cine Doré", LatLon: "40.411950,-3.699056"},
		Sessions: []session.Session{{Date: "2025-03-01 19:30"}},
		Cinema:   &event.CinemaDetails{Year: 1972, IMDB: "tt0068646"},
	}}

	var buf bytes.Buffer
	if err := newTestCodec(t).EncodeEvents(&buf, events); err != nil {
		t.Fatalf("encode events: %v", err)
	}

	var decoded []map[string]any
	if err := sonic.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 item, got %d", len(decoded))
	}
	item := decoded[0]
	if item["category"] != "CINEMA" || item["imdb"] != "tt0068646" || item["title"] != "El Padrino" {
		t.Fatalf("unexpected item: %+v", item)
	}
	if !strings.Contains(buf.String(), "a=1&b=2") {
		t.Fatalf("expected unescaped url, got %s", buf.String())
	}

	back, err := newTestCodec(t).DecodeEvents(context.Background(), &buf)
	if err != nil {
		t.Fatalf("decode encoded events: %v", err)
	}
	if back[0].Cinema == nil || back[0].Cinema.Year != 1972 {
		t.Fatalf("expected cinema details to survive, got %+v", back[0])
	}
}
