package event

import (
	"regexp"
	"slices"
	"strings"

	"github.com/riskibarqy/event-agenda/internal/domain/category"
	"github.com/riskibarqy/event-agenda/internal/platform/textutil"
)

// NameRule is one step of the name cleanup cascade.
type NameRule struct {
	Pattern *regexp.Regexp
	Replace string
}

// CategoryRule rewrites the category of events matching every set condition.
type CategoryRule struct {
	From       []category.Category
	URLDomain  []string
	MoreDomain []string
	Name       *regexp.Regexp
	To         category.Category
}

func (r CategoryRule) match(e Event) bool {
	if len(r.From) > 0 && !slices.Contains(r.From, e.Category) {
		return false
	}
	if len(r.URLDomain) > 0 && !slices.Contains(r.URLDomain, textutil.Domain(e.URL)) {
		return false
	}
	if len(r.MoreDomain) > 0 && !slices.Contains(r.MoreDomain, textutil.Domain(e.More)) {
		return false
	}
	if r.Name != nil && !r.Name.MatchString(textutil.Fold(e.Name)) {
		return false
	}
	return true
}

// Policy is the data driving the fix rules.
type Policy struct {
	// OwnDomain is the aggregator whose pages yield to a venue page.
	OwnDomain string
	// TrustedMoreDomains are venue or ticketing sites preferred as url.
	TrustedMoreDomains []string
	// BookDomains are the url domains whose literature events get a book link.
	BookDomains    []string
	BookCategories []category.Category
	NameRules      []NameRule
	CategoryRules  []CategoryRule
}

// DefaultPolicy is the Madrid configuration.
func DefaultPolicy() Policy {
	return Policy{
		OwnDomain: "madrid.es",
		TrustedMoreDomains: []string{
			"condeduquemadrid.es",
			"teatroespanol.es",
			"21distritos.es",
			"tienda.madrid-destino.com",
			"teatrocircoprice.es",
			"centrocentro.org",
			"cinetecamadrid.com",
			"mataderomadrid.org",
			"lacasaencendida.es",
		},
		BookDomains:    []string{"madrid.es", "casamerica.es", "circulobellasartes.com"},
		BookCategories: []category.Category{category.Literature, category.Conference},
		NameRules: []NameRule{
			{Pattern: regexp.MustCompile(`[´”“]`), Replace: "'"},
			{Pattern: regexp.MustCompile(`(?i)^\s*(ciclo|cine|concierto|teatro|exposici[oó]n|taller|conferencia|danza|estreno)\s*[:\-–]\s+`), Replace: ""},
			{Pattern: regexp.MustCompile(`(?i)\s*[\(\[]\s*v\.?\s*o\.?\s*(s\.?\s*e\.?|s\.?)?\s*[\)\]]\s*$`), Replace: ""},
			{Pattern: regexp.MustCompile(`(?i)\s*-\s*(entrada libre|gratis|agotad[oa]s?)\s*$`), Replace: ""},
			{Pattern: regexp.MustCompile(`\s*[\.,;:]+\s*$`), Replace: ""},
			{Pattern: regexp.MustCompile(`\s+`), Replace: " "},
		},
		CategoryRules: []CategoryRule{
			{
				From:       []category.Category{category.Conference, category.Others, category.Unknown},
				MoreDomain: []string{"goodreads.com"},
				To:         category.Literature,
			},
			{
				From: []category.Category{category.Conference, category.Workshop, category.Literature, category.Others, category.Unknown},
				Name: regexp.MustCompile(`\bclub de lectura\b`),
				To:   category.ReadingClub,
			},
			{
				From: []category.Category{category.Others, category.Unknown},
				Name: regexp.MustCompile(`\b(recital|lectura) de poesia\b`),
				To:   category.Poetry,
			},
			{
				From: []category.Category{category.Others, category.Unknown},
				Name: regexp.MustCompile(`\bcuentacuentos\b`),
				To:   category.Childish,
			},
		},
	}
}

func (p Policy) trusted(domain string) bool {
	return domain != "" && slices.Contains(p.TrustedMoreDomains, domain)
}

func (p Policy) own(domain string) bool {
	return domain != "" && domain == p.OwnDomain
}

// cleanName runs the cascade and title-cases names written in capitals.
func (p Policy) cleanName(name string) string {
	name = strings.TrimSpace(name)
	for _, r := range p.NameRules {
		name = strings.TrimSpace(r.Pattern.ReplaceAllString(name, r.Replace))
	}
	if textutil.IsShouting(name) {
		name = textutil.TitleCase(name)
	}
	return name
}

func (p Policy) category(e Event) category.Category {
	for _, r := range p.CategoryRules {
		if r.match(e) {
			return r.To
		}
	}
	return e.Category
}
