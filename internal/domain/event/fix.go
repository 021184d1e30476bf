package event

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/riskibarqy/event-agenda/internal/domain/category"
	"github.com/riskibarqy/event-agenda/internal/domain/session"
	"github.com/riskibarqy/event-agenda/internal/platform/textutil"
)

type fieldRule struct {
	field Field
	apply func(ctx context.Context, f *fixer, e *Event) error
}

func (en *Engine) fieldRules() []fieldRule {
	return []fieldRule{
		{field: FieldURL, apply: fixURL},
		{field: FieldName, apply: fixName},
		{field: FieldImg, apply: fixImg},
		{field: FieldPrice, apply: fixPrice},
		{field: FieldCategory, apply: fixCategory},
		{field: FieldPlace, apply: fixPlace},
		{field: FieldDuration, apply: fixDuration},
		{field: FieldPublish, apply: fixPublish},
		{field: FieldAlsoIn, apply: fixAlsoIn},
		{field: FieldSessions, apply: fixSessions},
		{field: FieldCycle, apply: fixCycle},
		{field: FieldMore, apply: fixMore},
		{field: FieldYear, apply: fixYear},
		{field: FieldDirector, apply: fixDirector},
		{field: FieldAka, apply: fixAka},
		{field: FieldIMDB, apply: fixIMDB},
		{field: FieldFilmAffinity, apply: fixFilmAffinity},
	}
}

// Fix applies patches to a copy of e and then runs the field rules and the
// invariant repairs until a whole pass changes nothing. Overridden fields
// take their override value instead of their rule.
func (en *Engine) Fix(ctx context.Context, e Event, patches ...Patch) (Event, error) {
	cur := e.Clone()
	for _, p := range patches {
		if p != nil {
			p(&cur)
		}
	}

	f := newFixer(en)
	for pass := 1; ; pass++ {
		if pass > en.maxPasses {
			return Event{}, fmt.Errorf("%w: event %s still changing after %d passes", ErrNotConverged, cur.ID, en.maxPasses)
		}
		next, err := f.pass(ctx, cur)
		if err != nil {
			return Event{}, err
		}
		if next.Equal(cur) {
			break
		}
		cur = next
	}

	if strings.TrimSpace(cur.Name) == "" {
		return Event{}, fmt.Errorf("%w: event %s", ErrNameRequired, cur.ID)
	}
	return cur, nil
}

func (f *fixer) pass(ctx context.Context, cur Event) (Event, error) {
	if err := ctx.Err(); err != nil {
		return Event{}, err
	}
	next := cur.Clone()
	ov, hasOverride := f.en.overrides.Event(next.ID)
	for _, r := range f.en.rules {
		if hasOverride && ov.apply(r.field, &next) {
			continue
		}
		if err := r.apply(ctx, f, &next); err != nil {
			return Event{}, fmt.Errorf("fix %s of event %s: %w", r.field, next.ID, err)
		}
	}
	f.en.repair(&next)
	return next, nil
}

// repair enforces the cross-field invariants.
func (en *Engine) repair(e *Event) {
	en.shapeVariant(e)

	if e.URL != "" && e.URL == e.More {
		e.More = ""
	}
	moreDomain := textutil.Domain(e.More)
	switch {
	case e.URL == "" && en.policy.trusted(moreDomain):
		e.URL, e.More = e.More, ""
	case e.More != "" && en.policy.own(textutil.Domain(e.URL)) && en.policy.trusted(moreDomain):
		e.URL, e.More = e.More, e.URL
	}

	if len(e.AlsoIn) > 0 {
		e.AlsoIn = slices.DeleteFunc(e.AlsoIn, func(u string) bool {
			return u == "" || u == e.URL || u == e.More
		})
		if len(e.AlsoIn) == 0 {
			e.AlsoIn = nil
		}
	}
}

// shapeVariant keeps the cinema payload in step with the category.
func (en *Engine) shapeVariant(e *Event) {
	switch {
	case e.Category == category.Cinema && e.Cinema == nil:
		e.Cinema = &CinemaDetails{}
	case e.Category != category.Cinema && e.Cinema != nil:
		e.Cinema = nil
	}
}

func fixURL(_ context.Context, _ *fixer, e *Event) error {
	e.URL = strings.TrimSpace(e.URL)
	return nil
}

func fixName(_ context.Context, f *fixer, e *Event) error {
	name := f.en.policy.cleanName(e.Name)
	if name == "" {
		name = f.en.policy.cleanName(e.Cycle)
	}
	if name == "" {
		name = f.en.policy.cleanName(commonSessionTitle(e.Sessions))
	}
	e.Name = name
	return nil
}

func commonSessionTitle(items []session.Session) string {
	title := ""
	for _, s := range items {
		if s.Title == "" || (title != "" && s.Title != title) {
			return ""
		}
		title = s.Title
	}
	return title
}

func fixImg(_ context.Context, _ *fixer, e *Event) error {
	e.Img = strings.TrimSpace(e.Img)
	return nil
}

func fixPrice(_ context.Context, _ *fixer, e *Event) error {
	if e.Price < 0 || math.IsNaN(e.Price) || math.IsInf(e.Price, 0) {
		e.Price = 0
	}
	return nil
}

func fixCategory(_ context.Context, f *fixer, e *Event) error {
	e.Category = f.en.policy.category(*e)
	return nil
}

func fixPlace(_ context.Context, f *fixer, e *Event) error {
	if f.en.gazetteer != nil {
		e.Place = f.en.gazetteer.Normalize(e.Place)
	}
	return nil
}

func fixDuration(ctx context.Context, f *fixer, e *Event) error {
	if e.Duration < 0 {
		e.Duration = 0
	}
	if e.IMDB() == "" {
		return nil
	}
	m, ok := f.movie(ctx, e.ID, e.IMDB())
	if ok && m.Duration > e.Duration {
		e.Duration = m.Duration
	}
	return nil
}

func fixPublish(_ context.Context, f *fixer, e *Event) error {
	e.Publish = strings.TrimSpace(e.Publish)
	if e.Publish == "" {
		e.Publish = f.today
	}
	return nil
}

func fixAlsoIn(_ context.Context, _ *fixer, e *Event) error {
	e.AlsoIn = cleanStrings(e.AlsoIn)
	slices.Sort(e.AlsoIn)
	return nil
}

func fixSessions(_ context.Context, f *fixer, e *Event) error {
	for i, s := range e.Sessions {
		if strings.TrimSpace(s.URL) != "" {
			continue
		}
		if u, ok := f.en.overrides.SessionURL(e.ID, strings.TrimSpace(s.Date)); ok {
			e.Sessions[i].URL = u
		}
	}
	e.Sessions = session.Normalize(e.Sessions)
	return nil
}

func fixCycle(_ context.Context, _ *fixer, e *Event) error {
	e.Cycle = textutil.CollapseSpaces(e.Cycle)
	return nil
}

func fixMore(ctx context.Context, f *fixer, e *Event) error {
	e.More = strings.TrimSpace(e.More)
	if e.More != "" || f.en.books == nil {
		return nil
	}
	p := f.en.policy
	if !slices.Contains(p.BookCategories, e.Category) || !slices.Contains(p.BookDomains, textutil.Domain(e.URL)) {
		return nil
	}
	if b, ok := f.book(ctx, e.ID, e.Name); ok {
		e.More = b.URL
	}
	return nil
}

// cleanStrings trims, drops empties and repeats, keeping first occurrences.
func cleanStrings(items []string) []string {
	var out []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" && !slices.Contains(out, item) {
			out = append(out, item)
		}
	}
	return out
}
