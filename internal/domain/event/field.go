package event

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/event-agenda/internal/platform/textutil"
)

// Field names an attribute of Event. Fields are fixed in declaration order.
type Field int

const (
	FieldURL Field = iota + 1
	FieldName
	FieldImg
	FieldPrice
	FieldCategory
	FieldPlace
	FieldDuration
	FieldPublish
	FieldAlsoIn
	FieldSessions
	FieldCycle
	FieldMore
	FieldYear
	FieldDirector
	FieldAka
	FieldIMDB
	FieldFilmAffinity
)

var fieldNames = map[Field]string{
	FieldURL:          "url",
	FieldName:         "name",
	FieldImg:          "img",
	FieldPrice:        "price",
	FieldCategory:     "category",
	FieldPlace:        "place",
	FieldDuration:     "duration",
	FieldPublish:      "publish",
	FieldAlsoIn:       "also_in",
	FieldSessions:     "sessions",
	FieldCycle:        "cycle",
	FieldMore:         "more",
	FieldYear:         "year",
	FieldDirector:     "director",
	FieldAka:          "aka",
	FieldIMDB:         "imdb",
	FieldFilmAffinity: "filmaffinity",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Valid reports whether f names an Event attribute.
func (f Field) Valid() bool {
	_, ok := fieldNames[f]
	return ok
}

// ValidateKeys rejects fields that do not name an Event attribute.
func ValidateKeys(keys []Field) error {
	for _, k := range keys {
		if !k.Valid() {
			return fmt.Errorf("%w: %s", ErrUnknownField, k)
		}
	}
	return nil
}

// ParseField resolves names such as "price" or "also_in".
func ParseField(name string) (Field, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range fieldNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// keyValue is the comparable projection of one field used by similarity
// grouping. ok is false when the field is unset. List fields compare as a
// whole, in order.
func keyValue(e Event, f Field) (any, bool) {
	switch f {
	case FieldURL:
		return e.URL, e.URL != ""
	case FieldName:
		n := textutil.Plain(e.Name)
		return n, n != ""
	case FieldImg:
		return e.Img, e.Img != ""
	case FieldPrice:
		return e.Price, true
	case FieldCategory:
		return e.Category, true
	case FieldPlace:
		return e.Place, !e.Place.IsZero()
	case FieldDuration:
		return e.Duration, e.Duration > 0
	case FieldPublish:
		return e.Publish, e.Publish != ""
	case FieldAlsoIn:
		return joinKey(e.AlsoIn), len(e.AlsoIn) > 0
	case FieldSessions:
		parts := make([]string, 0, len(e.Sessions))
		for _, s := range e.Sessions {
			parts = append(parts, joinKey([]string{s.Date, s.URL, s.Title, strconv.FormatBool(s.Full)}))
		}
		return strings.Join(parts, "\x1e"), len(e.Sessions) > 0
	case FieldCycle:
		return e.Cycle, e.Cycle != ""
	case FieldMore:
		return e.More, e.More != ""
	case FieldYear:
		return e.Year(), e.Year() > 0
	case FieldDirector:
		if e.Cinema == nil {
			return "", false
		}
		return joinKey(e.Cinema.Director), len(e.Cinema.Director) > 0
	case FieldAka:
		if e.Cinema == nil {
			return "", false
		}
		return joinKey(e.Cinema.Aka), len(e.Cinema.Aka) > 0
	case FieldIMDB:
		return e.IMDB(), e.IMDB() != ""
	case FieldFilmAffinity:
		if e.Cinema == nil {
			return 0, false
		}
		return e.Cinema.FilmAffinity, e.Cinema.FilmAffinity > 0
	default:
		return nil, false
	}
}

func joinKey(items []string) string {
	return strings.Join(items, "\x1f")
}
