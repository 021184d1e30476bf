package place

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var ErrNotIdempotent = errors.New("gazetteer is not idempotent")

// Place is a venue. LatLon is "lat,lon" in decimal degrees. The zero value
// means the venue is unknown.
type Place struct {
	Name    string
	Address string
	LatLon  string
	Zone    string
}

func (p Place) IsZero() bool {
	return p == Place{}
}

// Coordinates parses LatLon.
func (p Place) Coordinates() (lat, lon float64, ok bool) {
	rawLat, rawLon, found := strings.Cut(p.LatLon, ",")
	if !found {
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(rawLat), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(rawLon), 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// MapURL links to the venue on Google Maps, preferring coordinates.
func (p Place) MapURL() string {
	query := p.LatLon
	if query == "" {
		query = strings.TrimSpace(strings.Join([]string{p.Name, p.Address}, " "))
	}
	if query == "" {
		return ""
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(query)
}

func (p Place) String() string {
	if p.Address == "" {
		return p.Name
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.Address)
}

// Compare orders by name, then address, coordinates and zone.
func Compare(a, b Place) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if c := strings.Compare(a.Address, b.Address); c != 0 {
		return c
	}
	if c := strings.Compare(a.LatLon, b.LatLon); c != 0 {
		return c
	}
	return strings.Compare(a.Zone, b.Zone)
}

// FormatLatLon renders coordinates the way LatLon stores them.
func FormatLatLon(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
}
