package category

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Category classifies an event. The zero value is Unknown.
type Category int

const (
	Unknown Category = iota
	Cinema
	Music
	Concert
	Recital
	Circus
	Workshop
	Dance
	Puppetry
	Theater
	Expo
	Conference
	Visit
	Childish
	Sport
	Literature
	Poetry
	ReadingClub
	Activism
	Party
	Magic
	Youth
	Seniors
	Maternity
	Marginalized
	Hiking
	ViewPoint
	Contest
	Online
	NonGeneralPublic
	NoEvent
	Spam
	Others
)

type meta struct {
	name    string
	display string
}

var metas = map[Category]meta{
	Unknown:          {name: "UNKNOWN", display: "desconocido"},
	Cinema:           {name: "CINEMA", display: "cine"},
	Music:            {name: "MUSIC", display: "música"},
	Concert:          {name: "CONCERT", display: "concierto"},
	Recital:          {name: "RECITAL", display: "recital"},
	Circus:           {name: "CIRCUS", display: "circo"},
	Workshop:         {name: "WORKSHOP", display: "taller"},
	Dance:            {name: "DANCE", display: "danza"},
	Puppetry:         {name: "PUPPETRY", display: "títeres"},
	Theater:          {name: "THEATER", display: "teatro"},
	Expo:             {name: "EXPO", display: "exposición"},
	Conference:       {name: "CONFERENCE", display: "conferencia"},
	Visit:            {name: "VISIT", display: "visita"},
	Childish:         {name: "CHILDISH", display: "infantil"},
	Sport:            {name: "SPORT", display: "deporte"},
	Literature:       {name: "LITERATURE", display: "literatura"},
	Poetry:           {name: "POETRY", display: "poesía"},
	ReadingClub:      {name: "READING_CLUB", display: "club de lectura"},
	Activism:         {name: "ACTIVISM", display: "activismo"},
	Party:            {name: "PARTY", display: "fiesta"},
	Magic:            {name: "MAGIC", display: "magia"},
	Youth:            {name: "YOUTH", display: "juvenil"},
	Seniors:          {name: "SENIORS", display: "mayores"},
	Maternity:        {name: "MATERNITY", display: "maternidad"},
	Marginalized:     {name: "MARGINALIZED", display: "colectivos vulnerables"},
	Hiking:           {name: "HIKING", display: "senderismo"},
	ViewPoint:        {name: "VIEW_POINT", display: "mirador"},
	Contest:          {name: "CONTEST", display: "concurso"},
	Online:           {name: "ONLINE", display: "online"},
	NonGeneralPublic: {name: "NON_GENERAL_PUBLIC", display: "público no general"},
	NoEvent:          {name: "NO_EVENT", display: "no es un evento"},
	Spam:             {name: "SPAM", display: "spam"},
	Others:           {name: "OTHERS", display: "otros"},
}

var (
	byName map[string]Category
	rank   map[Category]int
	all    []Category
)

func init() {
	byName = make(map[string]Category, len(metas))
	all = make([]Category, 0, len(metas))
	for c, m := range metas {
		byName[m.name] = c
		all = append(all, c)
	}

	coll := collate.New(language.Spanish, collate.IgnoreCase)
	slices.SortFunc(all, func(a, b Category) int {
		if a == b {
			return 0
		}
		if a == Unknown {
			return 1
		}
		if b == Unknown {
			return -1
		}
		return coll.CompareString(metas[a].display, metas[b].display)
	})

	rank = make(map[Category]int, len(all))
	for i, c := range all {
		rank[c] = i
	}
}

// All returns every category in display order.
func All() []Category {
	return slices.Clone(all)
}

// Parse resolves an enum name such as "READING_CLUB". Matching ignores case.
func Parse(name string) (Category, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if key == "" {
		return Unknown, nil
	}
	c, ok := byName[key]
	if !ok {
		return Unknown, fmt.Errorf("unknown category %q", name)
	}
	return c, nil
}

func (c Category) Valid() bool {
	_, ok := metas[c]
	return ok
}

// Name is the stable enum identifier used in files and feeds.
func (c Category) Name() string {
	if m, ok := metas[c]; ok {
		return m.name
	}
	return fmt.Sprintf("CATEGORY(%d)", int(c))
}

// String is the Spanish display label.
func (c Category) String() string {
	if m, ok := metas[c]; ok {
		return m.display
	}
	return c.Name()
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(c.Name()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Compare orders categories by their Spanish label under Spanish collation,
// with Unknown always last.
func Compare(a, b Category) int {
	ra, okA := rank[a]
	rb, okB := rank[b]
	switch {
	case okA && okB:
		return ra - rb
	case okA:
		return -1
	case okB:
		return 1
	default:
		return int(a) - int(b)
	}
}

func (c Category) Less(other Category) bool {
	return Compare(c, other) < 0
}

// Sort orders items in place by Compare.
func Sort(items []Category) {
	slices.SortStableFunc(items, Compare)
}
