package event

import (
	"slices"

	"github.com/riskibarqy/event-agenda/internal/domain/category"
	"github.com/riskibarqy/event-agenda/internal/domain/place"
)

// Override pins fields of one event id. Nil means "not overridden".
type Override struct {
	URL          *string
	Name         *string
	Img          *string
	Price        *float64
	Category     *category.Category
	Place        *place.Place
	Duration     *int
	Publish      *string
	Cycle        *string
	More         *string
	Year         *int
	Director     []string
	IMDB         *string
	FilmAffinity *int
}

// Overrides is the manual correction table: per event field values and
// session urls keyed by SessionKey.
type Overrides struct {
	Events   map[string]Override
	Sessions map[string]string
}

// SessionKey is the lookup key of a session url override.
func SessionKey(eventID, date string) string {
	return eventID + "_" + date
}

func (o Overrides) Event(id string) (Override, bool) {
	ov, ok := o.Events[id]
	return ov, ok
}

func (o Overrides) SessionURL(eventID, date string) (string, bool) {
	u, ok := o.Sessions[SessionKey(eventID, date)]
	return u, ok && u != ""
}

func (o Overrides) Len() int {
	return len(o.Events) + len(o.Sessions)
}

// apply writes the override of f into e and reports whether it did.
func (ov Override) apply(f Field, e *Event) bool {
	switch f {
	case FieldURL:
		return setIf(ov.URL, &e.URL)
	case FieldName:
		return setIf(ov.Name, &e.Name)
	case FieldImg:
		return setIf(ov.Img, &e.Img)
	case FieldPrice:
		return setIf(ov.Price, &e.Price)
	case FieldCategory:
		return setIf(ov.Category, &e.Category)
	case FieldPlace:
		return setIf(ov.Place, &e.Place)
	case FieldDuration:
		return setIf(ov.Duration, &e.Duration)
	case FieldPublish:
		return setIf(ov.Publish, &e.Publish)
	case FieldCycle:
		return setIf(ov.Cycle, &e.Cycle)
	case FieldMore:
		return setIf(ov.More, &e.More)
	}
	if e.Cinema == nil {
		return false
	}
	switch f {
	case FieldYear:
		return setIf(ov.Year, &e.Cinema.Year)
	case FieldDirector:
		if ov.Director == nil {
			return false
		}
		e.Cinema.Director = slices.Clone(ov.Director)
		return true
	case FieldIMDB:
		return setIf(ov.IMDB, &e.Cinema.IMDB)
	case FieldFilmAffinity:
		return setIf(ov.FilmAffinity, &e.Cinema.FilmAffinity)
	}
	return false
}

func setIf[T any](src *T, dst *T) bool {
	if src == nil {
		return false
	}
	*dst = *src
	return true
}
