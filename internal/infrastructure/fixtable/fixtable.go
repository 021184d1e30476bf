// Package fixtable reads the manual correction table applied while fixing
// events.
package fixtable

import (
	"fmt"
	"os"
	"strings"

	"github.com/riskibarqy/event-agenda/internal/domain/category"
	"github.com/riskibarqy/event-agenda/internal/domain/event"
	"github.com/riskibarqy/event-agenda/internal/domain/place"
	"gopkg.in/yaml.v3"
)

type placeEntry struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	LatLon  string `yaml:"latlon"`
	Zone    string `yaml:"zone"`
}

type eventEntry struct {
	URL          *string     `yaml:"url"`
	Name         *string     `yaml:"name"`
	Img          *string     `yaml:"img"`
	Price        *float64    `yaml:"price"`
	Category     *string     `yaml:"category"`
	Place        *placeEntry `yaml:"place"`
	Duration     *int        `yaml:"duration"`
	Publish      *string     `yaml:"publish"`
	Cycle        *string     `yaml:"cycle"`
	More         *string     `yaml:"more"`
	Year         *int        `yaml:"year"`
	Director     []string    `yaml:"director"`
	IMDB         *string     `yaml:"imdb"`
	FilmAffinity *int        `yaml:"filmaffinity"`
}

type file struct {
	Events   map[string]eventEntry `yaml:"events"`
	Sessions map[string]string     `yaml:"sessions"`
}

// Load reads the table at path. An empty path yields an empty table.
func Load(path string) (event.Overrides, error) {
	if strings.TrimSpace(path) == "" {
		return event.Overrides{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return event.Overrides{}, fmt.Errorf("read fix table: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML table:
//
//	events:
//	  "<event id>":
//	    price: 0
//	    category: THEATER
//	sessions:
//	  "<event id>_<yyyy-mm-dd hh:mm>": https://...
func Parse(data []byte) (event.Overrides, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return event.Overrides{}, fmt.Errorf("parse fix table: %w", err)
	}

	out := event.Overrides{
		Events:   make(map[string]event.Override, len(f.Events)),
		Sessions: make(map[string]string, len(f.Sessions)),
	}
	for id, entry := range f.Events {
		ov, err := entry.override()
		if err != nil {
			return event.Overrides{}, fmt.Errorf("fix table event %s: %w", id, err)
		}
		out.Events[id] = ov
	}
	for key, u := range f.Sessions {
		if !strings.Contains(key, "_") {
			return event.Overrides{}, fmt.Errorf("fix table session %q: key must be <event id>_<date>", key)
		}
		out.Sessions[key] = strings.TrimSpace(u)
	}
	return out, nil
}

func (e eventEntry) override() (event.Override, error) {
	ov := event.Override{
		URL:          e.URL,
		Name:         e.Name,
		Img:          e.Img,
		Price:        e.Price,
		Duration:     e.Duration,
		Publish:      e.Publish,
		Cycle:        e.Cycle,
		More:         e.More,
		Year:         e.Year,
		Director:     e.Director,
		IMDB:         e.IMDB,
		FilmAffinity: e.FilmAffinity,
	}
	if e.Category != nil {
		c, err := category.Parse(*e.Category)
		if err != nil {
			return event.Override{}, err
		}
		ov.Category = &c
	}
	if e.Place != nil {
		ov.Place = &place.Place{
			Name:    e.Place.Name,
			Address: e.Place.Address,
			LatLon:  e.Place.LatLon,
			Zone:    e.Place.Zone,
		}
	}
	return ov, nil
}
