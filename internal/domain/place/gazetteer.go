package place

import (
	"cmp"
	"fmt"
	"regexp"
	"strings"

	"github.com/riskibarqy/event-agenda/internal/platform/textutil"
)

// Rule maps a scraped place onto a canonical one. Patterns are matched
// case and accent insensitive; every non-empty pattern list needs at least
// one hit on its field.
type Rule struct {
	Name    []string
	Address []string
	Place   Place
}

// ZoneRule assigns a zone by name or address before circles are tried.
type ZoneRule struct {
	Name    []string
	Address []string
	Zone    string
}

// Catalog is the data a Gazetteer is built from.
type Catalog struct {
	Places    []Place
	Rules     []Rule
	ZoneRules []ZoneRule
	Zones     []Zone
}

type matcher struct {
	name    []*regexp.Regexp
	address []*regexp.Regexp
}

func (m matcher) match(p Place) bool {
	if len(m.name) == 0 && len(m.address) == 0 {
		return false
	}
	return anyMatch(m.name, textutil.Fold(p.Name)) && anyMatch(m.address, textutil.Fold(p.Address))
}

func anyMatch(patterns []*regexp.Regexp, value string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, re := range patterns {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

type compiledRule struct {
	matcher
	place Place
}

type compiledZoneRule struct {
	matcher
	zone string
}

// Gazetteer canonicalises places and assigns zones. It is immutable and safe
// for concurrent use.
type Gazetteer struct {
	places    []Place
	rules     []compiledRule
	zoneRules []compiledZoneRule
	zones     []Zone
}

// NewGazetteer compiles the catalog and checks that every catalog place is a
// fixed point of Normalize.
func NewGazetteer(c Catalog) (*Gazetteer, error) {
	g := &Gazetteer{zones: append([]Zone(nil), c.Zones...)}

	for i, r := range c.ZoneRules {
		m, err := compileMatcher(r.Name, r.Address)
		if err != nil {
			return nil, fmt.Errorf("zone rule %d: %w", i, err)
		}
		g.zoneRules = append(g.zoneRules, compiledZoneRule{matcher: m, zone: r.Zone})
	}

	g.places = make([]Place, 0, len(c.Places))
	for _, p := range c.Places {
		g.places = append(g.places, g.withZone(tidy(p)))
	}

	for i, r := range c.Rules {
		m, err := compileMatcher(r.Name, r.Address)
		if err != nil {
			return nil, fmt.Errorf("place rule %d: %w", i, err)
		}
		g.rules = append(g.rules, compiledRule{matcher: m, place: g.withZone(tidy(r.Place))})
	}

	for _, p := range g.places {
		if got := g.Normalize(p); got != p {
			return nil, fmt.Errorf("%w: catalog place %q normalizes to %q", ErrNotIdempotent, p.String(), got.String())
		}
	}
	for i, r := range g.rules {
		if got := g.Normalize(r.place); got != r.place {
			return nil, fmt.Errorf("%w: target of rule %d %q normalizes to %q", ErrNotIdempotent, i, r.place.String(), got.String())
		}
	}

	return g, nil
}

func compileMatcher(names, addresses []string) (matcher, error) {
	var m matcher
	for _, src := range names {
		re, err := compilePattern(src)
		if err != nil {
			return matcher{}, err
		}
		m.name = append(m.name, re)
	}
	for _, src := range addresses {
		re, err := compilePattern(src)
		if err != nil {
			return matcher{}, err
		}
		m.address = append(m.address, re)
	}
	return m, nil
}

func compilePattern(src string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + textutil.StripAccents(src))
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", src, err)
	}
	return re, nil
}

// Normalize returns the canonical form of p. It is idempotent.
func (g *Gazetteer) Normalize(p Place) Place {
	p = tidy(p)
	if p.IsZero() {
		return p
	}

	for _, r := range g.rules {
		if r.match(p) {
			return r.place
		}
	}

	if known, ok := g.lookup(p); ok {
		return known
	}

	p = g.withZone(p)
	if p.Name == "" {
		p.Name = cmp.Or(p.Zone, p.LatLon)
	}
	return p
}

func (g *Gazetteer) lookup(p Place) (Place, bool) {
	name := textutil.Fold(p.Name)
	address := textutil.Fold(p.Address)
	for _, known := range g.places {
		if textutil.Fold(known.Name) != name {
			continue
		}
		if address != "" && textutil.Fold(known.Address) == address {
			return known, true
		}
		if p.LatLon != "" && known.LatLon == p.LatLon {
			return known, true
		}
	}
	return Place{}, false
}

// tidy collapses whitespace and derives a capitalized name, falling back to
// the first address segment.
func tidy(p Place) Place {
	p = Place{
		Name:    textutil.CollapseSpaces(p.Name),
		Address: textutil.CollapseSpaces(p.Address),
		LatLon:  strings.ReplaceAll(strings.TrimSpace(p.LatLon), " ", ""),
		Zone:    strings.TrimSpace(p.Zone),
	}
	if p.Name == "" {
		first, _, _ := strings.Cut(p.Address, ",")
		p.Name = strings.TrimSpace(first)
	}
	p.Name = textutil.Capitalize(p.Name)
	return p
}

func (g *Gazetteer) withZone(p Place) Place {
	if p.Zone == "" {
		p.Zone = g.zoneOf(p)
	}
	return p
}

// Zone returns the zone p falls into or "".
func (g *Gazetteer) Zone(p Place) string {
	return g.zoneOf(p)
}

func (g *Gazetteer) zoneOf(p Place) string {
	for _, r := range g.zoneRules {
		if r.match(p) {
			return r.zone
		}
	}
	lat, lon, ok := p.Coordinates()
	if !ok {
		return ""
	}
	for _, z := range g.zones {
		if z.Contains(lat, lon) {
			return z.Name
		}
	}
	return ""
}

// Places returns the canonical catalog.
func (g *Gazetteer) Places() []Place {
	return append([]Place(nil), g.places...)
}
