package event

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/event-agenda/internal/domain/category"
	"github.com/riskibarqy/event-agenda/internal/domain/place"
	"github.com/riskibarqy/event-agenda/internal/domain/session"
	"github.com/riskibarqy/event-agenda/internal/platform/textutil"
)

// CinemaDetails is the film payload of a screening. It is present exactly
// when the event category is cinema. Zero values mean unknown.
type CinemaDetails struct {
	Year         int
	Director     []string
	Aka          []string
	IMDB         string
	FilmAffinity int
}

func (c *CinemaDetails) clone() *CinemaDetails {
	if c == nil {
		return nil
	}
	return &CinemaDetails{
		Year:         c.Year,
		Director:     slices.Clone(c.Director),
		Aka:          slices.Clone(c.Aka),
		IMDB:         c.IMDB,
		FilmAffinity: c.FilmAffinity,
	}
}

func (c *CinemaDetails) equal(o *CinemaDetails) bool {
	if c == nil || o == nil {
		return c == nil && o == nil
	}
	return c.Year == o.Year &&
		c.IMDB == o.IMDB &&
		c.FilmAffinity == o.FilmAffinity &&
		slices.Equal(c.Director, o.Director) &&
		slices.Equal(c.Aka, o.Aka)
}

// Event is a cultural event as published in the agenda. Values are treated as
// immutable: every operation of this package returns a new Event and never
// writes through the slices of its input.
type Event struct {
	ID       string
	URL      string
	Name     string
	Img      string
	Price    float64
	Category category.Category
	Place    place.Place
	Duration int
	Publish  string
	AlsoIn   []string
	Sessions []session.Session
	Cycle    string
	More     string
	Cinema   *CinemaDetails
}

// Clone returns a deep copy.
func (e Event) Clone() Event {
	out := e
	out.AlsoIn = slices.Clone(e.AlsoIn)
	out.Sessions = slices.Clone(e.Sessions)
	out.Cinema = e.Cinema.clone()
	return out
}

// Equal reports structural equality. Nil and empty slices are equal.
func (e Event) Equal(o Event) bool {
	return e.ID == o.ID &&
		e.URL == o.URL &&
		e.Name == o.Name &&
		e.Img == o.Img &&
		e.Price == o.Price &&
		e.Category == o.Category &&
		e.Place == o.Place &&
		e.Duration == o.Duration &&
		e.Publish == o.Publish &&
		e.Cycle == o.Cycle &&
		e.More == o.More &&
		slices.Equal(e.AlsoIn, o.AlsoIn) &&
		slices.Equal(e.Sessions, o.Sessions) &&
		e.Cinema.equal(o.Cinema)
}

// Key is a structural fingerprint: equal events have equal keys.
func (e Event) Key() string {
	var b strings.Builder
	field := func(v string) {
		b.WriteString(v)
		b.WriteByte(0x1f)
	}
	field(e.ID)
	field(e.URL)
	field(e.Name)
	field(e.Img)
	field(strconv.FormatFloat(e.Price, 'f', -1, 64))
	field(e.Category.Name())
	field(e.Place.Name)
	field(e.Place.Address)
	field(e.Place.LatLon)
	field(e.Place.Zone)
	field(strconv.Itoa(e.Duration))
	field(e.Publish)
	field(strings.Join(e.AlsoIn, " "))
	for _, s := range e.Sessions {
		field(s.Date + " " + s.URL + " " + s.Title + " " + strconv.FormatBool(s.Full))
	}
	field(e.Cycle)
	field(e.More)
	if c := e.Cinema; c != nil {
		field(strconv.Itoa(c.Year))
		field(strings.Join(c.Director, ";"))
		field(strings.Join(c.Aka, ";"))
		field(c.IMDB)
		field(strconv.Itoa(c.FilmAffinity))
	}
	return b.String()
}

func (e Event) IsCinema() bool {
	return e.Cinema != nil
}

// Year of the film, 0 when unknown or not a screening.
func (e Event) Year() int {
	if e.Cinema == nil {
		return 0
	}
	return e.Cinema.Year
}

func (e Event) IMDB() string {
	if e.Cinema == nil {
		return ""
	}
	return e.Cinema.IMDB
}

// FullAka lists the name followed by the alternative titles, without repeats.
func (e Event) FullAka() []string {
	out := make([]string, 0, 4)
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	add(e.Name)
	if e.Cinema != nil {
		for _, a := range e.Cinema.Aka {
			add(a)
		}
	}
	return out
}

// URLs yields url, more, also_in and session urls in that order, once each.
func (e Event) URLs() []string {
	out := make([]string, 0, 2+len(e.AlsoIn)+len(e.Sessions))
	add := func(v string) {
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	add(e.URL)
	add(e.More)
	for _, u := range e.AlsoIn {
		add(u)
	}
	for _, s := range e.Sessions {
		add(s.URL)
	}
	return out
}

// Domains returns the domains of url and more, without empties.
func (e Event) Domains() []string {
	var out []string
	for _, u := range []string{e.URL, e.More} {
		if d := textutil.Domain(u); d != "" && !slices.Contains(out, d) {
			out = append(out, d)
		}
	}
	return out
}

// Start is the date of the first session, "" without sessions.
func (e Event) Start() string {
	if len(e.Sessions) == 0 {
		return ""
	}
	return e.Sessions[0].Date
}

// End is the date of the last session, "" without sessions.
func (e Event) End() string {
	if len(e.Sessions) == 0 {
		return ""
	}
	return e.Sessions[len(e.Sessions)-1].Date
}

// Title is the display form of the name.
func (e Event) Title() string {
	t := strings.TrimSpace(e.Name)
	for _, pair := range [][2]string{{"«", "»"}, {"\"", "\""}, {"'", "'"}, {"“", "”"}} {
		if len(t) > len(pair[0])+len(pair[1]) && strings.HasPrefix(t, pair[0]) && strings.HasSuffix(t, pair[1]) {
			inner := t[len(pair[0]) : len(t)-len(pair[1])]
			if !strings.ContainsAny(inner, pair[0]+pair[1]) {
				t = strings.TrimSpace(inner)
			}
		}
	}
	if textutil.IsShouting(t) {
		t = textutil.TitleCase(t)
	}
	return t
}

// RemoveOldSessions drops sessions that started before now. Sessions with an
// unparseable date are kept.
func (e Event) RemoveOldSessions(now time.Time) Event {
	out := e.Clone()
	out.Sessions = slices.DeleteFunc(out.Sessions, func(s session.Session) bool {
		return s.IsBefore(now)
	})
	return out
}

// RemoveWorkingSessions drops sessions that start during working hours.
func (e Event) RemoveWorkingSessions() Event {
	out := e.Clone()
	out.Sessions = slices.DeleteFunc(out.Sessions, session.Session.IsWorkingHours)
	return out
}

// Patch edits a private copy of an event before it is fixed.
type Patch func(*Event)

func WithPublish(publish string) Patch {
	return func(e *Event) { e.Publish = publish }
}

func WithCategory(c category.Category) Patch {
	return func(e *Event) { e.Category = c }
}

func WithName(name string) Patch {
	return func(e *Event) { e.Name = name }
}

func WithURL(url string) Patch {
	return func(e *Event) { e.URL = url }
}

func WithMore(more string) Patch {
	return func(e *Event) { e.More = more }
}

func WithID(id string) Patch {
	return func(e *Event) { e.ID = id }
}

// WithFilmAffinity is a no-op on events that are not screenings.
func WithFilmAffinity(id int) Patch {
	return func(e *Event) {
		if e.Cinema != nil {
			e.Cinema.FilmAffinity = id
		}
	}
}
