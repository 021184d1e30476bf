package usecase

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"regexp"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/event-agenda/internal/domain/category"
	"github.com/riskibarqy/event-agenda/internal/domain/event"
	"github.com/riskibarqy/event-agenda/internal/domain/movie"
	"github.com/riskibarqy/event-agenda/internal/platform/id"
	"github.com/riskibarqy/event-agenda/internal/platform/logging"
	"github.com/riskibarqy/event-agenda/internal/platform/textutil"
)

// FilmLookup finds the FilmAffinity id of a film released in year under any
// of titles.
type FilmLookup interface {
	Search(ctx context.Context, year int, titles ...string) (int, bool, error)
}

type CollectorConfig struct {
	// MaxPrice caps the price per category. Categories missing from the map
	// use DefaultMaxPrice, or the highest cap in the map when that is zero.
	MaxPrice        map[category.Category]float64
	DefaultMaxPrice float64
	MaxSessions     int
	// AvoidWorkingSessions drops sessions starting Mon-Fri 08:00-15:00.
	AvoidWorkingSessions bool
	// Categories is the allow-list. Empty allows every category.
	Categories []category.Category
	KOPlaces   []string
	Workers    int
	// TicketingURLPatterns identify the same event across sources by a
	// shared ticketing page.
	TicketingURLPatterns []*regexp.Regexp
	// SessionDomains lists ticketing domains that, when they are the only
	// session source besides the own domain, make other session urls stale.
	SessionDomains []string
	Now            func() time.Time
}

// DefaultTicketingURLPatterns are the ticketing pages shared by several
// sources of the Madrid agenda.
func DefaultTicketingURLPatterns() []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(`^https://www\.condeduquemadrid\.es/actividades/\S+$`),
		regexp.MustCompile(`^https://www\.teatroespanol\.es/\S+$`),
		regexp.MustCompile(`^https://21distritos\.es/evento/\S+$`),
		regexp.MustCompile(`^https://tienda\.madrid-destino\.com/es/\S+$`),
		regexp.MustCompile(`^https://www\.teatrocircoprice\.es/programacion/\S+$`),
		regexp.MustCompile(`^https://www\.centrocentro\.org/\S+$`),
	}
}

// CollectorService turns the raw pool scraped from every source into the
// published agenda: fix, filter, deduplicate across sources and keep track of
// when each event was first published.
type CollectorService struct {
	engine  *event.Engine
	publish event.PublishRepository
	films   FilmLookup
	movies  movie.Repository
	ids     id.Generator
	cfg     CollectorConfig
	logger  *logging.Logger

	koPlaces   map[string]struct{}
	categories map[category.Category]struct{}
}

func NewCollectorService(
	engine *event.Engine,
	publish event.PublishRepository,
	films FilmLookup,
	movies movie.Repository,
	ids id.Generator,
	cfg CollectorConfig,
	logger *logging.Logger,
) *CollectorService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.TicketingURLPatterns == nil {
		cfg.TicketingURLPatterns = DefaultTicketingURLPatterns()
	}

	s := &CollectorService{
		engine:     engine,
		publish:    publish,
		films:      films,
		movies:     movies,
		ids:        ids,
		cfg:        cfg,
		logger:     logger,
		koPlaces:   make(map[string]struct{}, len(cfg.KOPlaces)),
		categories: make(map[category.Category]struct{}, len(cfg.Categories)),
	}
	for _, p := range cfg.KOPlaces {
		s.koPlaces[p] = struct{}{}
	}
	for _, c := range cfg.Categories {
		s.categories[c] = struct{}{}
	}
	return s
}

// Collect runs the whole pipeline over raw and returns the agenda sorted by
// first session, name and url.
func (s *CollectorService) Collect(ctx context.Context, raw []event.Event) ([]event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CollectorService.Collect", attribute.Int("events.raw", len(raw)))
	out, err := s.collect(ctx, raw)
	if err == nil {
		span.SetAttributes(attribute.Int("events.collected", len(out)))
	}
	endUsecaseSpan(span, err)
	return out, err
}

func (s *CollectorService) collect(ctx context.Context, raw []event.Event) ([]event.Event, error) {
	if s.engine == nil {
		return nil, fmt.Errorf("%w: collector has no engine", ErrInvalidInput)
	}

	publish := map[string]string{}
	if s.publish != nil {
		loaded, err := s.publish.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load publish dates: %w", err)
		}
		for k, v := range loaded {
			publish[k] = v
		}
	}
	s.logger.InfoContext(ctx, "collect events", "raw", len(raw))

	first := make([]event.Event, 0, len(raw))
	for _, e := range raw {
		if kept, ok := s.filter(ctx, e); ok {
			first = append(first, kept)
		}
	}
	s.logger.InfoContext(ctx, "events pass first filter", "count", len(first))

	built, err := s.buildAll(ctx, first, publish)
	if err != nil {
		return nil, err
	}

	pool := make([]event.Event, 0, len(built))
	for _, e := range uniqueByKey(built) {
		kept, ok := s.filter(ctx, e)
		if !ok {
			continue
		}
		publish[kept.ID] = kept.Publish
		pool = append(pool, kept)
	}
	s.logger.InfoContext(ctx, "events pass second filter", "count", len(pool))

	pool, err = s.dedup(ctx, pool)
	if err != nil {
		return nil, err
	}
	pool = s.checkSessions(ctx, pool)
	pool = s.completeFilmAffinity(ctx, pool)
	pool = completeURL(pool)

	out := make([]event.Event, 0, len(pool))
	for _, e := range pool {
		kept, ok := s.filter(ctx, e)
		if !ok {
			continue
		}
		if p, seen := publish[kept.ID]; seen && p != "" {
			kept.Publish = p
		} else if kept.Publish != "" {
			publish[kept.ID] = kept.Publish
		}
		out = append(out, kept)
	}

	if s.publish != nil {
		if err := s.publish.Save(ctx, publish); err != nil {
			return nil, fmt.Errorf("save publish dates: %w", err)
		}
	}

	slices.SortStableFunc(out, func(a, b event.Event) int {
		return cmp.Or(
			cmp.Compare(a.Start(), b.Start()),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.URL, b.URL),
		)
	})
	s.logger.InfoContext(ctx, "events collected", "count", len(out))
	return out, nil
}

// buildAll fixes every event on a bounded worker pool. Events that fail to
// fix are logged and left out; the order of raw is kept.
func (s *CollectorService) buildAll(ctx context.Context, raw []event.Event, publish map[string]string) ([]event.Event, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	workerCount := s.cfg.Workers
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	workerCount = min(workerCount, len(raw))

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	slots := make([]event.Event, len(raw))
	ok := make([]bool, len(raw))

	var workers sync.WaitGroup
	for i, e := range raw {
		var patches []event.Patch
		if p, seen := publish[e.ID]; seen && p != "" {
			patches = append(patches, event.WithPublish(p))
		}
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			fixed, err := s.engine.Build(ctx, e, patches...)
			if err != nil {
				s.logger.ErrorContext(ctx, "discard event: fix failed", "event_id", e.ID, "url", e.URL, "error", err)
				return
			}
			slots[i] = fixed
			ok[i] = true
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]event.Event, 0, len(raw))
	for i := range slots {
		if ok[i] {
			out = append(out, slots[i])
		}
	}
	return out, nil
}

func (s *CollectorService) maxPrice(c category.Category) float64 {
	if v, ok := s.cfg.MaxPrice[c]; ok {
		return v
	}
	if s.cfg.DefaultMaxPrice > 0 {
		return s.cfg.DefaultMaxPrice
	}
	if len(s.cfg.MaxPrice) == 0 {
		return math.Inf(1)
	}
	best := math.Inf(-1)
	for _, v := range s.cfg.MaxPrice {
		best = max(best, v)
	}
	return best
}

// filter applies the publication rules and returns e without past sessions
// (and without working-hours sessions when configured).
func (s *CollectorService) filter(ctx context.Context, e event.Event) (event.Event, bool) {
	ref := cmp.Or(e.URL, e.ID)
	if _, ko := s.koPlaces[e.Place.Name]; ko {
		s.logger.DebugContext(ctx, "discard event by place", "place", e.Place.Name, "event", ref)
		return event.Event{}, false
	}
	if e.Price > s.maxPrice(e.Category) {
		s.logger.DebugContext(ctx, "discard event by price", "price", e.Price, "event", ref)
		return event.Event{}, false
	}
	if len(s.categories) > 0 {
		if _, allowed := s.categories[e.Category]; !allowed {
			s.logger.DebugContext(ctx, "discard event by category", "category", e.Category.Name(), "event", ref)
			return event.Event{}, false
		}
	}

	e = e.RemoveOldSessions(s.cfg.Now())
	if s.cfg.AvoidWorkingSessions {
		e = e.RemoveWorkingSessions()
	}

	switch n := len(e.Sessions); {
	case n == 0:
		s.logger.DebugContext(ctx, "discard event without sessions", "event", ref)
		return event.Event{}, false
	case s.cfg.MaxSessions > 0 && n > s.cfg.MaxSessions:
		s.logger.WarnContext(ctx, "discard event with too many sessions", "sessions", n, "event", ref)
		return event.Event{}, false
	}
	return e, true
}

// checkSessions drops sold out sessions and, when a ticketing domain is the
// only session source besides the own domain, sessions pointing elsewhere.
func (s *CollectorService) checkSessions(ctx context.Context, events []event.Event) []event.Event {
	own := s.engine.Policy().OwnDomain
	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		var doms []string
		for _, ss := range e.Sessions {
			d := textutil.Domain(ss.URL)
			if d != "" && d != own && !slices.Contains(doms, d) {
				doms = append(doms, d)
			}
		}
		onlyTicketing := len(doms) == 1 && slices.Contains(s.cfg.SessionDomains, doms[0])

		next := e.Clone()
		next.Sessions = next.Sessions[:0]
		for _, ss := range e.Sessions {
			if ss.Full {
				continue
			}
			if onlyTicketing && textutil.Domain(ss.URL) != doms[0] {
				continue
			}
			next.Sessions = append(next.Sessions, ss)
		}
		if kept, ok := s.filter(ctx, next); ok {
			out = append(out, kept)
		}
	}
	return out
}

// completeFilmAffinity looks up the FilmAffinity id of cinema events that do
// not have one yet. Events that belong to a cycle are left as they are.
func (s *CollectorService) completeFilmAffinity(ctx context.Context, events []event.Event) []event.Event {
	if s.films == nil {
		return events
	}
	out := make([]event.Event, len(events))
	for i, e := range events {
		out[i] = e
		if e.Cinema == nil || e.Cinema.FilmAffinity != 0 || e.Cycle != "" {
			continue
		}
		fa, found := s.findFilmAffinity(ctx, e)
		if !found {
			continue
		}
		s.logger.DebugContext(ctx, "found filmaffinity id", "event_id", e.ID, "filmaffinity", fa)
		fixed, err := s.engine.Fix(ctx, e, event.WithFilmAffinity(fa))
		if err != nil {
			s.logger.ErrorContext(ctx, "keep event without filmaffinity", "event_id", e.ID, "error", err)
			continue
		}
		out[i] = fixed
	}
	return out
}

func (s *CollectorService) findFilmAffinity(ctx context.Context, e event.Event) (int, bool) {
	search := func(year int, titles []string) (int, bool) {
		if len(titles) == 0 {
			return 0, false
		}
		fa, found, err := s.films.Search(ctx, year, titles...)
		if err != nil {
			s.logger.WarnContext(ctx, "filmaffinity search failed", "event_id", e.ID, "error", err)
			return 0, false
		}
		return fa, found
	}

	if imdb := e.IMDB(); imdb != "" && s.movies != nil {
		m, exists, err := s.movies.GetByID(ctx, imdb)
		if err != nil {
			s.logger.WarnContext(ctx, "get movie failed", "imdb", imdb, "error", err)
		}
		if exists {
			if m.FilmAffinity != 0 {
				return m.FilmAffinity, true
			}
			if fa, ok := search(cmp.Or(e.Year(), m.Year), m.Titles); ok {
				return fa, true
			}
		}
	}
	return search(e.Year(), e.FullAka())
}

// completeURL fills an empty url, then an empty more, from also_in.
func completeURL(events []event.Event) []event.Event {
	out := make([]event.Event, len(events))
	for i, e := range events {
		e = e.Clone()
		for len(e.AlsoIn) > 0 && (e.URL == "" || e.More == "") {
			next := e.AlsoIn[0]
			e.AlsoIn = e.AlsoIn[1:]
			if e.URL == "" {
				e.URL = next
			} else {
				e.More = next
			}
		}
		if len(e.AlsoIn) == 0 {
			e.AlsoIn = nil
		}
		out[i] = e
	}
	return out
}

func uniqueByKey(events []event.Event) []event.Event {
	seen := make(map[string]struct{}, len(events))
	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		k := e.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e)
	}
	return out
}
