package usecase

import (
	"cmp"
	"context"
	"math"
	"regexp"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/event-agenda/internal/domain/category"
	"github.com/riskibarqy/event-agenda/internal/domain/event"
	"github.com/riskibarqy/event-agenda/internal/domain/place"
	"github.com/riskibarqy/event-agenda/internal/platform/textutil"
)

type musicKey struct {
	link  string
	place place.Place
	price float64
}

type cycleKey struct {
	cycle    string
	category category.Category
	place    place.Place
	price    int
}

type nameKey struct {
	place    place.Place
	category category.Category
	name     string
	price    float64
}

type ticketingKey struct {
	url   string
	place place.Place
	price float64
}

var nameKeyStrip = regexp.MustCompile(`[:'’,.«»]`)

// dedup merges events published by several sources. Rules run in a fixed
// order over a pool kept in canonical order, so the outcome does not depend
// on the order sources were scraped in.
func (s *CollectorService) dedup(ctx context.Context, events []event.Event) ([]event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CollectorService.dedup", attribute.Int("events.pool", len(events)))
	defer span.End()

	pool := canonicalPool(events)
	pool = s.reconcileOwnCategories(ctx, pool)

	var err error
	pool, err = s.fuseGroups(ctx, "own_music", pool, event.FindDuplicates(pool, s.ownMusicKey), s.fuseOwnMusic)
	if err != nil {
		return nil, err
	}
	pool, err = s.fuseGroups(ctx, "cycle", pool, event.FindDuplicates(pool, cycleKeyOf), s.fuseCycle)
	if err != nil {
		return nil, err
	}
	pool, err = s.fuseGroups(ctx, "place_name", pool, event.FindDuplicates(pool, nameKeyOf), s.fuseWithNewID)
	if err != nil {
		return nil, err
	}
	for _, pattern := range s.cfg.TicketingURLPatterns {
		key := func(e event.Event) (ticketingKey, bool) {
			for _, u := range e.URLs() {
				if pattern.MatchString(u) {
					return ticketingKey{url: u, place: e.Place, price: e.Price}, true
				}
			}
			return ticketingKey{}, false
		}
		pool, err = s.fuseGroups(ctx, "ticketing_url", pool, event.FindDuplicates(pool, key), s.fuseWithNewID)
		if err != nil {
			return nil, err
		}
	}

	out := make([]event.Event, 0, len(pool))
	for _, e := range pool {
		fixed, err := s.engine.Fix(ctx, e)
		if err != nil {
			s.logger.ErrorContext(ctx, "discard event: final fix failed", "event_id", e.ID, "error", err)
			continue
		}
		out = append(out, fixed)
	}
	return canonicalPool(out), nil
}

// reconcileOwnCategories corrects the category of events published on the
// own domain with the plurality category that other sources give to the same
// url or more.
func (s *CollectorService) reconcileOwnCategories(ctx context.Context, pool []event.Event) []event.Event {
	own := s.engine.Policy().OwnDomain
	if own == "" {
		return pool
	}

	byURL := make(map[string][]category.Category)
	for _, e := range pool {
		if e.Category == category.Unknown || e.URL == "" || textutil.Domain(e.URL) == own {
			continue
		}
		byURL[e.URL] = append(byURL[e.URL], e.Category)
	}

	out := make([]event.Event, 0, len(pool))
	for _, e := range pool {
		if textutil.Domain(e.URL) != own && textutil.Domain(e.More) != own {
			out = append(out, e)
			continue
		}
		votes := slices.Concat(byURL[e.More], byURL[e.URL])
		if e.More == e.URL {
			votes = byURL[e.URL]
		}
		c, ok := mainCategory(votes)
		if !ok || c == e.Category {
			out = append(out, e)
			continue
		}
		fixed, err := s.engine.Fix(ctx, e, event.WithCategory(c))
		if err != nil {
			s.logger.ErrorContext(ctx, "keep category: fix failed", "event_id", e.ID, "category", c.Name(), "error", err)
			out = append(out, e)
			continue
		}
		s.logger.DebugContext(ctx, "reconcile category", "event_id", e.ID, "from", e.Category.Name(), "to", c.Name())
		out = append(out, fixed)
	}
	return out
}

// mainCategory returns the most voted category. Ties go to the category
// listed first.
func mainCategory(votes []category.Category) (category.Category, bool) {
	counts := make(map[category.Category]int, len(votes))
	for _, c := range votes {
		if c != category.Unknown {
			counts[c]++
		}
	}
	best, found := category.Unknown, false
	for c, n := range counts {
		if !found || n > counts[best] || (n == counts[best] && category.Compare(c, best) < 0) {
			best, found = c, true
		}
	}
	return best, found
}

func (s *CollectorService) ownMusicKey(e event.Event) (musicKey, bool) {
	if e.Category != category.Music {
		return musicKey{}, false
	}
	doms := e.Domains()
	if len(doms) != 1 || doms[0] != s.engine.Policy().OwnDomain {
		return musicKey{}, false
	}
	return musicKey{link: cmp.Or(e.More, e.URL), place: e.Place, price: e.Price}, true
}

func cycleKeyOf(e event.Event) (cycleKey, bool) {
	if e.Cycle == "" {
		return cycleKey{}, false
	}
	withURL := false
	for _, ss := range e.Sessions {
		if ss.URL != "" {
			withURL = true
			break
		}
	}
	if len(e.Sessions) != 1 && withURL {
		return cycleKey{}, false
	}
	return cycleKey{cycle: e.Cycle, category: e.Category, place: e.Place, price: roundToEven(e.Price)}, true
}

func nameKeyOf(e event.Event) (nameKey, bool) {
	name := strings.ToLower(nameKeyStrip.ReplaceAllString(e.Name, ""))
	return nameKey{place: e.Place, category: e.Category, name: name, price: e.Price}, true
}

// roundToEven buckets a price to an even integer: whole prices round down to
// the even below, other prices to the closest even.
func roundToEven(x float64) int {
	down := math.Floor(x/2) * 2
	up := math.Floor((x+2)/2) * 2
	if x == math.Trunc(x) {
		return int(down)
	}
	if math.Abs(x-down) < math.Abs(x-up) {
		return int(down)
	}
	return int(up)
}

type fuseFunc func(ctx context.Context, group []event.Event) (event.Event, error)

// fuseGroups replaces every group by its fusion. A group whose fusion fails is
// kept as it was.
func (s *CollectorService) fuseGroups(ctx context.Context, rule string, pool []event.Event, groups [][]event.Event, fuse fuseFunc) ([]event.Event, error) {
	if len(groups) == 0 {
		return pool, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	drop := make(map[string]struct{})
	fused := make([]event.Event, 0, len(groups))
	for _, g := range groups {
		e, err := fuse(ctx, g)
		if err != nil {
			s.logger.ErrorContext(ctx, "keep duplicates: fusion failed", "rule", rule, "events", len(g), "error", err)
			continue
		}
		for _, m := range g {
			drop[m.Key()] = struct{}{}
		}
		s.logger.DebugContext(ctx, "fuse duplicates", "rule", rule, "events", len(g), "event_id", e.ID)
		fused = append(fused, e)
	}

	out := make([]event.Event, 0, len(pool))
	for _, e := range pool {
		if _, ok := drop[e.Key()]; !ok {
			out = append(out, e)
		}
	}
	return canonicalPool(append(out, fused...)), nil
}

func (s *CollectorService) fuseOwnMusic(ctx context.Context, group []event.Event) (event.Event, error) {
	link := cmp.Or(group[0].More, group[0].URL)
	e, err := s.engine.Fusion(ctx, false, group...)
	if err != nil {
		return event.Event{}, err
	}
	return s.engine.Fix(ctx, e, event.WithID(s.ids.FromParts(link)), event.WithURL(link))
}

func (s *CollectorService) fuseCycle(ctx context.Context, group []event.Event) (event.Event, error) {
	cycle := group[0].Cycle
	e, err := s.engine.Fusion(ctx, true, group...)
	if err != nil {
		return event.Event{}, err
	}
	e, err = s.engine.Fix(ctx, e, event.WithName(cycle), event.WithID(s.ids.FromParts(eventIDs(group)...)))
	if err != nil {
		return event.Event{}, err
	}

	var urls, mores []string
	for _, m := range group {
		if m.URL != "" && !slices.Contains(urls, m.URL) {
			urls = append(urls, m.URL)
		}
		if m.More != "" && !slices.Contains(mores, m.More) {
			mores = append(mores, m.More)
		}
	}
	allWithURL := true
	for _, ss := range e.Sessions {
		if ss.URL == "" {
			allWithURL = false
			break
		}
	}
	if allWithURL {
		e.URL, e.More = "", ""
	}
	if len(urls) == 1 && e.URL == "" {
		e.URL = urls[0]
	}
	if len(mores) == 1 && e.URL == "" {
		e.URL = mores[0]
	}
	if len(mores) == 1 && e.More == "" {
		e.More = mores[0]
	}
	return s.engine.Fix(ctx, e)
}

func (s *CollectorService) fuseWithNewID(ctx context.Context, group []event.Event) (event.Event, error) {
	e, err := s.engine.Fusion(ctx, false, group...)
	if err != nil {
		return event.Event{}, err
	}
	return s.engine.Fix(ctx, e, event.WithID(s.ids.FromParts(eventIDs(group)...)))
}

func eventIDs(events []event.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

// canonicalPool drops exact duplicates and sorts by id, url and fingerprint.
func canonicalPool(events []event.Event) []event.Event {
	out := uniqueByKey(events)
	slices.SortFunc(out, func(a, b event.Event) int {
		return cmp.Or(
			cmp.Compare(a.ID, b.ID),
			cmp.Compare(a.URL, b.URL),
			cmp.Compare(a.Key(), b.Key()),
		)
	})
	return out
}
