package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/riskibarqy/event-agenda/internal/config"
	"github.com/riskibarqy/event-agenda/internal/platform/logging"
)

const rawPool = `[
  {
    "id": "a",
    "url": "https://www.lacasaencendida.es/conciertos/a",
    "name": "Concierto de primavera",
    "price": 0,
    "category": "MUSIC",
    "place": {"name": "La Casa Encendida", "address": "Ronda de Valencia, 2"},
    "sessions": [{"date": "2099-06-06 19:30"}]
  },
  {
    "id": "b",
    "url": "https://www.lacasaencendida.es/conciertos/b",
    "name": "Concierto caro",
    "price": 80,
    "category": "MUSIC",
    "place": {"name": "La Casa Encendida"},
    "sessions": [{"date": "2099-06-07 19:30"}]
  }
]`

func testConfig() config.Config {
	return config.Config{
		ServiceName:     "event-agenda",
		PublishStore:    config.PublishStoreMemory,
		DefaultMaxPrice: 10,
		FixWorkers:      2,
		FixMaxPasses:    50,
	}
}

func TestCollector_Run(t *testing.T) {
	collector, err := NewCollector(context.Background(), testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new collector: %v", err)
	}
	defer func() { _ = collector.Close() }()

	var out bytes.Buffer
	n, err := collector.Run(context.Background(), strings.NewReader(rawPool), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected the expensive event to be filtered, got %d events: %s", n, out.String())
	}
	if !strings.Contains(out.String(), "Concierto de primavera") || strings.Contains(out.String(), "Concierto caro") {
		t.Fatalf("unexpected output: %s", out.String())
	}
}

func TestCollector_RunRejectsInvalidInput(t *testing.T) {
	collector, err := NewCollector(context.Background(), testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new collector: %v", err)
	}
	defer func() { _ = collector.Close() }()

	if _, err := collector.Run(context.Background(), strings.NewReader(`{"id":"x"}`), &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for a non array input")
	}
}

func TestNewCollector_MissingFixTable(t *testing.T) {
	cfg := testConfig()
	cfg.FixEventPath = t.TempDir() + "/missing.yaml"
	if _, err := NewCollector(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for a missing fix table")
	}
}

func TestPolicyFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.OwnDomain = "example.org"
	cfg.TrustedMoreDomains = []string{"venue.example.org"}

	policy := policyFromConfig(cfg)
	if policy.OwnDomain != "example.org" || len(policy.TrustedMoreDomains) != 1 {
		t.Fatalf("unexpected policy: own=%q trusted=%v", policy.OwnDomain, policy.TrustedMoreDomains)
	}
	if len(policyFromConfig(testConfig()).TrustedMoreDomains) == 0 {
		t.Fatalf("expected default trusted domains")
	}
}
