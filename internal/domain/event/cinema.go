package event

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/riskibarqy/event-agenda/internal/domain/book"
	"github.com/riskibarqy/event-agenda/internal/domain/movie"
	"github.com/riskibarqy/event-agenda/internal/platform/textutil"
)

var (
	reTitleYearDirector = regexp.MustCompile(`^(.+?) \((\d{4})\) de (.+)$`)
	reTitleYear         = regexp.MustCompile(`^(.+?) \((\d{4})\)$`)
)

// splitCinemaName moves year and director out of names such as
// "Vértigo (1958) de Alfred Hitchcock".
func splitCinemaName(e *Event) {
	if m := reTitleYearDirector.FindStringSubmatch(e.Name); m != nil {
		e.Name = strings.TrimSpace(m[1])
		if e.Cinema.Year == 0 {
			e.Cinema.Year, _ = strconv.Atoi(m[2])
		}
		if len(e.Cinema.Director) == 0 {
			e.Cinema.Director = splitPeople(m[3])
		}
		return
	}
	if m := reTitleYear.FindStringSubmatch(e.Name); m != nil {
		e.Name = strings.TrimSpace(m[1])
		if e.Cinema.Year == 0 {
			e.Cinema.Year, _ = strconv.Atoi(m[2])
		}
	}
}

var rePeopleSeparator = regexp.MustCompile(`\s*(?:,|\sy\s|&)\s*`)

func splitPeople(s string) []string {
	return cleanStrings(rePeopleSeparator.Split(s, -1))
}

func fixYear(ctx context.Context, f *fixer, e *Event) error {
	c := e.Cinema
	if c == nil {
		return nil
	}
	if c.Year < 0 {
		c.Year = 0
	}
	if c.Year == 0 && c.IMDB != "" {
		if m, ok := f.movie(ctx, e.ID, c.IMDB); ok {
			c.Year = m.Year
		}
	}
	return nil
}

func fixDirector(_ context.Context, _ *fixer, e *Event) error {
	if e.Cinema != nil {
		e.Cinema.Director = cleanStrings(e.Cinema.Director)
	}
	return nil
}

func fixAka(_ context.Context, _ *fixer, e *Event) error {
	c := e.Cinema
	if c == nil {
		return nil
	}
	name := textutil.Plain(e.Name)
	var out []string
	for _, a := range cleanStrings(c.Aka) {
		if textutil.Plain(a) != name {
			out = append(out, a)
		}
	}
	c.Aka = out
	return nil
}

func fixIMDB(ctx context.Context, f *fixer, e *Event) error {
	c := e.Cinema
	if c == nil {
		return nil
	}
	c.IMDB = strings.TrimSpace(c.IMDB)
	if c.IMDB != "" || e.Cycle != "" || f.en.movies == nil {
		return nil
	}
	if id, ok := f.resolve(ctx, e.ID, movie.Query{
		Titles:    e.FullAka(),
		Directors: c.Director,
		Year:      c.Year,
		Duration:  e.Duration,
	}); ok {
		c.IMDB = id
	}
	return nil
}

func fixFilmAffinity(ctx context.Context, f *fixer, e *Event) error {
	c := e.Cinema
	if c == nil {
		return nil
	}
	if c.FilmAffinity < 0 {
		c.FilmAffinity = 0
	}
	if c.FilmAffinity == 0 && c.IMDB != "" {
		if m, ok := f.movie(ctx, e.ID, c.IMDB); ok && m.FilmAffinity > 0 {
			c.FilmAffinity = m.FilmAffinity
		}
	}
	return nil
}

type movieHit struct {
	movie movie.Movie
	ok    bool
}

type resolveHit struct {
	id string
	ok bool
}

type bookHit struct {
	book book.Book
	ok   bool
}

// fixer carries one Fix call. Lookups are memoized for its duration and a
// failed lookup counts as "no match".
type fixer struct {
	en       *Engine
	today    string
	movies   map[string]movieHit
	resolved map[string]resolveHit
	books    map[string]bookHit
}

func newFixer(en *Engine) *fixer {
	return &fixer{
		en:       en,
		today:    en.today(),
		movies:   make(map[string]movieHit),
		resolved: make(map[string]resolveHit),
		books:    make(map[string]bookHit),
	}
}

func (f *fixer) movie(ctx context.Context, eventID, imdb string) (movie.Movie, bool) {
	if f.en.movies == nil || imdb == "" {
		return movie.Movie{}, false
	}
	if hit, ok := f.movies[imdb]; ok {
		return hit.movie, hit.ok
	}
	m, ok, err := f.en.movies.GetByID(ctx, imdb)
	if err != nil {
		f.en.logger.ErrorContext(ctx, "movie lookup failed", "event_id", eventID, "imdb", imdb, "error", err)
		ok = false
	}
	f.movies[imdb] = movieHit{movie: m, ok: ok}
	return m, ok
}

func (f *fixer) resolve(ctx context.Context, eventID string, q movie.Query) (string, bool) {
	key := fmt.Sprintf("%q|%q|%d|%d", q.Titles, q.Directors, q.Year, q.Duration)
	if hit, ok := f.resolved[key]; ok {
		return hit.id, hit.ok
	}
	id, ok, err := movie.Resolve(ctx, f.en.movies, q)
	if err != nil {
		f.en.logger.ErrorContext(ctx, "movie search failed", "event_id", eventID, "titles", q.Titles, "error", err)
		ok = false
	}
	f.resolved[key] = resolveHit{id: id, ok: ok}
	return id, ok
}

func (f *fixer) book(ctx context.Context, eventID, presentation string) (book.Book, bool) {
	if hit, ok := f.books[presentation]; ok {
		return hit.book, hit.ok
	}
	found, err := f.en.books.Find(ctx, presentation)
	if err != nil {
		f.en.logger.ErrorContext(ctx, "book lookup failed", "event_id", eventID, "name", presentation, "error", err)
		found = nil
	}
	hit := bookHit{}
	if len(found) == 1 {
		hit = bookHit{book: found[0], ok: true}
	}
	f.books[presentation] = hit
	return hit.book, hit.ok
}
