package event

import (
	"cmp"
	"context"
	"slices"

	"github.com/riskibarqy/event-agenda/internal/domain/category"
	"github.com/riskibarqy/event-agenda/internal/domain/place"
	"github.com/riskibarqy/event-agenda/internal/domain/session"
)

// Fusion merges events that describe the same happening. The result does not
// depend on the order of events: constituents are put in canonical order
// (id, then url, then fingerprint) before any first-seen tie break.
//
// With firstEventURL, when sessions end up pointing at more than one page,
// every session takes the url of the event it came from.
func (en *Engine) Fusion(ctx context.Context, firstEventURL bool, events ...Event) (Event, error) {
	switch len(events) {
	case 0:
		return Event{}, ErrNoEvents
	case 1:
		return en.Fix(ctx, events[0])
	}

	evs := canonicalOrder(events)
	merged := en.merge(firstEventURL, evs)

	fixed, err := en.Fix(ctx, merged)
	if err != nil {
		return Event{}, err
	}

	if fixed.Cinema == nil && fixed.More == "" && len(fixed.AlsoIn) == 1 {
		fixed.More = fixed.AlsoIn[0]
		fixed.AlsoIn = nil
	}
	if fixed.More == "" {
		own := fixed.URLs()
		for _, e := range evs {
			if e.More != "" && !slices.Contains(own, e.More) {
				fixed.More = e.More
				break
			}
		}
	}
	return en.Fix(ctx, fixed)
}

func canonicalOrder(events []Event) []Event {
	evs := make([]Event, len(events))
	for i, e := range events {
		evs[i] = e.Clone()
	}
	slices.SortStableFunc(evs, func(a, b Event) int {
		if c := cmp.Compare(a.ID, b.ID); c != 0 {
			return c
		}
		if c := cmp.Compare(a.URL, b.URL); c != 0 {
			return c
		}
		return cmp.Compare(a.Key(), b.Key())
	})
	return evs
}

type ownedSession struct {
	session session.Session
	parent  string
}

func (en *Engine) merge(firstEventURL bool, evs []Event) Event {
	titles := make(map[string]string)
	for _, e := range evs {
		for _, s := range e.Sessions {
			if s.URL != "" && s.Title != "" {
				if _, ok := titles[s.URL]; !ok {
					titles[s.URL] = s.Title
				}
			}
		}
	}
	for _, e := range evs {
		if e.URL != "" && e.Name != "" {
			if _, ok := titles[e.URL]; !ok {
				titles[e.URL] = e.Name
			}
		}
	}

	datesWithURL := make(map[string]bool)
	fullDates := make(map[string]bool)
	for _, e := range evs {
		for _, s := range e.Sessions {
			if s.URL != "" {
				datesWithURL[s.Date] = true
			}
			if s.Full {
				fullDates[s.Date] = true
			}
		}
	}

	var pool []ownedSession
	effective := make(map[string]bool)
	for _, e := range evs {
		for _, s := range e.Sessions {
			if s.URL == "" && datesWithURL[s.Date] {
				continue
			}
			pool = append(pool, ownedSession{session: s, parent: e.URL})
			if u := cmp.Or(s.URL, e.URL); u != "" {
				effective[u] = true
			}
		}
	}

	sessions := make([]session.Session, 0, len(pool))
	for _, o := range pool {
		s := o.session
		if len(effective) > 1 {
			switch {
			case firstEventURL && o.parent != "":
				s.URL = o.parent
			case s.URL == "":
				s.URL = o.parent
			}
		}
		if t, ok := titles[s.URL]; ok && s.URL != "" {
			s.Title = t
		}
		s.Full = fullDates[s.Date]
		sessions = append(sessions, s)
	}
	sessions = session.Normalize(sessions)

	sessionURLs := make(map[string]bool)
	for _, s := range sessions {
		if s.URL != "" {
			sessionURLs[s.URL] = true
		}
	}
	var urls []string
	for _, e := range evs {
		urls = append(urls, e.URL)
		urls = append(urls, e.AlsoIn...)
	}
	urls = cleanStrings(urls)
	slices.Sort(urls)
	if len(sessionURLs) > 1 {
		urls = slices.DeleteFunc(urls, func(u string) bool { return sessionURLs[u] })
	}

	ownURLs := make([]string, 0, len(evs))
	for _, e := range evs {
		if e.URL != "" && slices.Contains(urls, e.URL) {
			ownURLs = append(ownURLs, e.URL)
		}
	}
	mainURL, ok := plurality(ownURLs, nil)
	if !ok && len(urls) > 0 {
		mainURL = urls[0]
	}
	alsoIn := slices.DeleteFunc(slices.Clone(urls), func(u string) bool { return u == mainURL })

	out := Event{
		ID:       evs[0].ID,
		URL:      mainURL,
		AlsoIn:   alsoIn,
		Sessions: sessions,
	}
	out.Name, _ = plurality(collect(evs, func(e Event) string { return e.Name }), isEmpty)
	out.Img, _ = plurality(collect(evs, func(e Event) string { return e.Img }), isEmpty)
	out.More, _ = plurality(collect(evs, func(e Event) string { return e.More }), isEmpty)
	out.Cycle, _ = plurality(collect(evs, func(e Event) string { return e.Cycle }), isEmpty)
	out.Category, _ = plurality(collect(evs, func(e Event) category.Category { return e.Category }), func(c category.Category) bool {
		return c == category.Unknown
	})
	out.Duration, _ = plurality(collect(evs, func(e Event) int { return e.Duration }), func(d int) bool { return d <= 0 })
	out.Place, _ = plurality(collect(evs, func(e Event) place.Place { return e.Place }), place.Place.IsZero)
	for i, e := range evs {
		if i == 0 || e.Price > out.Price {
			out.Price = e.Price
		}
		if e.Publish != "" && (out.Publish == "" || e.Publish < out.Publish) {
			out.Publish = e.Publish
		}
	}
	if out.Category == category.Cinema {
		out.Cinema = mergeCinema(evs)
	}
	return out
}

func collect[T any](evs []Event, get func(Event) T) []T {
	out := make([]T, len(evs))
	for i, e := range evs {
		out[i] = get(e)
	}
	return out
}

func mergeCinema(evs []Event) *CinemaDetails {
	out := &CinemaDetails{}
	var years, fas []int
	var imdbs []string
	for _, e := range evs {
		c := e.Cinema
		if c == nil {
			continue
		}
		years = append(years, c.Year)
		imdbs = append(imdbs, c.IMDB)
		fas = append(fas, c.FilmAffinity)
		out.Director = append(out.Director, c.Director...)
		out.Aka = append(out.Aka, c.Aka...)
		if e.Name != "" {
			out.Aka = append(out.Aka, e.Name)
		}
	}
	positive := func(v int) bool { return v <= 0 }
	out.Year, _ = plurality(years, positive)
	out.IMDB, _ = plurality(imdbs, isEmpty)
	out.FilmAffinity, _ = plurality(fas, positive)
	out.Director = cleanStrings(out.Director)
	out.Aka = cleanStrings(out.Aka)
	return out
}
