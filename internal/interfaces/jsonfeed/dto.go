package jsonfeed

import (
	"github.com/riskibarqy/event-agenda/internal/domain/category"
	"github.com/riskibarqy/event-agenda/internal/domain/event"
	"github.com/riskibarqy/event-agenda/internal/domain/place"
	"github.com/riskibarqy/event-agenda/internal/domain/session"
)

type placeDTO struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	LatLon  string `json:"latlon,omitempty" validate:"omitempty,latlon"`
	Zone    string `json:"zone,omitempty"`
	Map     string `json:"map,omitempty"`
}

type sessionDTO struct {
	Date  string `json:"date" validate:"required,datetime=2006-01-02 15:04"`
	URL   string `json:"url,omitempty" validate:"omitempty,url"`
	Title string `json:"title,omitempty"`
	Full  bool   `json:"full,omitempty"`
}

type eventDTO struct {
	ID       string       `json:"id" validate:"required"`
	URL      string       `json:"url,omitempty" validate:"omitempty,url"`
	Name     string       `json:"name"`
	Title    string       `json:"title,omitempty"`
	Img      string       `json:"img,omitempty" validate:"omitempty,url"`
	Price    float64      `json:"price"`
	Category string       `json:"category" validate:"omitempty,category"`
	Place    *placeDTO    `json:"place,omitempty"`
	Duration int          `json:"duration,omitempty" validate:"gte=0"`
	Publish  string       `json:"publish,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AlsoIn   []string     `json:"also_in,omitempty" validate:"dive,omitempty,url"`
	Sessions []sessionDTO `json:"sessions" validate:"dive"`
	Cycle    string       `json:"cycle,omitempty"`
	More     string       `json:"more,omitempty" validate:"omitempty,url"`

	Year         int      `json:"year,omitempty" validate:"omitempty,gte=1870,lte=2100"`
	Director     []string `json:"director,omitempty"`
	Aka          []string `json:"aka,omitempty"`
	IMDB         string   `json:"imdb,omitempty" validate:"omitempty,startswith=tt"`
	FilmAffinity int      `json:"filmaffinity,omitempty" validate:"gte=0"`
}

func (d eventDTO) toDomain() event.Event {
	c, _ := category.Parse(d.Category)
	e := event.Event{
		ID:       d.ID,
		URL:      d.URL,
		Name:     d.Name,
		Img:      d.Img,
		Price:    d.Price,
		Category: c,
		Duration: d.Duration,
		Publish:  d.Publish,
		AlsoIn:   d.AlsoIn,
		Cycle:    d.Cycle,
		More:     d.More,
	}
	if d.Place != nil {
		e.Place = place.Place{Name: d.Place.Name, Address: d.Place.Address, LatLon: d.Place.LatLon, Zone: d.Place.Zone}
	}
	for _, s := range d.Sessions {
		e.Sessions = append(e.Sessions, session.Session{Date: s.Date, URL: s.URL, Title: s.Title, Full: s.Full})
	}
	if c == category.Cinema || d.Year != 0 || d.IMDB != "" || d.FilmAffinity != 0 || len(d.Director) > 0 || len(d.Aka) > 0 {
		e.Cinema = &event.CinemaDetails{
			Year:         d.Year,
			Director:     d.Director,
			Aka:          d.Aka,
			IMDB:         d.IMDB,
			FilmAffinity: d.FilmAffinity,
		}
	}
	return e
}

func eventToDTO(e event.Event) eventDTO {
	d := eventDTO{
		ID:       e.ID,
		URL:      e.URL,
		Name:     e.Name,
		Title:    e.Title(),
		Img:      e.Img,
		Price:    e.Price,
		Category: e.Category.Name(),
		Duration: e.Duration,
		Publish:  e.Publish,
		AlsoIn:   e.AlsoIn,
		Cycle:    e.Cycle,
		More:     e.More,
		Sessions: make([]sessionDTO, 0, len(e.Sessions)),
	}
	if !e.Place.IsZero() {
		d.Place = &placeDTO{
			Name:    e.Place.Name,
			Address: e.Place.Address,
			LatLon:  e.Place.LatLon,
			Zone:    e.Place.Zone,
			Map:     e.Place.MapURL(),
		}
	}
	for _, s := range e.Sessions {
		d.Sessions = append(d.Sessions, sessionDTO{Date: s.Date, URL: s.URL, Title: s.Title, Full: s.Full})
	}
	if c := e.Cinema; c != nil {
		d.Year = c.Year
		d.Director = c.Director
		d.Aka = c.Aka
		d.IMDB = c.IMDB
		d.FilmAffinity = c.FilmAffinity
	}
	return d
}
