package event

import (
	"context"
	"math"
	"time"

	"github.com/riskibarqy/event-agenda/internal/domain/book"
	"github.com/riskibarqy/event-agenda/internal/domain/movie"
	"github.com/riskibarqy/event-agenda/internal/domain/place"
	"github.com/riskibarqy/event-agenda/internal/domain/session"
	"github.com/riskibarqy/event-agenda/internal/platform/logging"
)

const defaultMaxPasses = 50

// Config holds the collaborators of an Engine. Every field is optional.
type Config struct {
	Gazetteer *place.Gazetteer
	Overrides Overrides
	Policy    Policy
	Movies    movie.Repository
	Books     book.Lookup
	Logger    *logging.Logger
	MaxPasses int
	Now       func() time.Time
}

// Engine fixes and fuses events. It holds no mutable state and is safe for
// concurrent use as long as its collaborators are.
type Engine struct {
	gazetteer *place.Gazetteer
	overrides Overrides
	policy    Policy
	movies    movie.Repository
	books     book.Lookup
	logger    *logging.Logger
	maxPasses int
	now       func() time.Time
	rules     []fieldRule
}

func NewEngine(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	maxPasses := cfg.MaxPasses
	if maxPasses < 1 {
		maxPasses = defaultMaxPasses
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	en := &Engine{
		gazetteer: cfg.Gazetteer,
		overrides: cfg.Overrides,
		policy:    cfg.Policy,
		movies:    cfg.Movies,
		books:     cfg.Books,
		logger:    logger,
		maxPasses: maxPasses,
		now:       now,
	}
	en.rules = en.fieldRules()
	return en
}

func (en *Engine) Policy() Policy {
	return en.policy
}

func (en *Engine) today() string {
	return en.now().In(session.Location()).Format("2006-01-02")
}

// Prepare applies the construction-time normalization: place, name, price
// to cents, the cinema split of names like "Title (1999) de Director" and the
// overrides. It performs no lookups.
func (en *Engine) Prepare(e Event) Event {
	out := e.Clone()
	out.Price = math.Round(out.Price*100) / 100
	if en.gazetteer != nil {
		out.Place = en.gazetteer.Normalize(out.Place)
	}
	out.Name = en.policy.cleanName(out.Name)
	en.shapeVariant(&out)
	if out.Cinema != nil {
		splitCinemaName(&out)
	}
	if ov, ok := en.overrides.Event(out.ID); ok {
		for _, r := range en.rules {
			ov.apply(r.field, &out)
		}
	}
	return out
}

// Build prepares a raw event and fixes it.
func (en *Engine) Build(ctx context.Context, e Event, patches ...Patch) (Event, error) {
	return en.Fix(ctx, en.Prepare(e), patches...)
}
