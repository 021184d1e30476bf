package filmaffinity

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/riskibarqy/event-agenda/external/webfetch"
	"github.com/riskibarqy/event-agenda/internal/platform/htmldom"
	"github.com/riskibarqy/event-agenda/internal/platform/logging"
	"github.com/riskibarqy/event-agenda/internal/platform/resilience"
	"github.com/riskibarqy/event-agenda/internal/usecase"
)

const defaultBaseURL = "https://www.filmaffinity.com"

var filmHrefRegex = regexp.MustCompile(`/film(\d+)\.html$`)

// Page titles served instead of results when the site refuses to answer.
var blockedTitles = map[string]struct{}{
	"":                  {},
	"not title found":   {},
	"too many request":  {},
	"too many requests": {},
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	CacheTTL       time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client finds FilmAffinity ids through the site search.
type Client struct {
	baseURL string
	fetcher *webfetch.Fetcher
	logger  *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		logger:  logger,
		fetcher: webfetch.New(webfetch.Config{
			Name:           "filmaffinity",
			HTTPClient:     cfg.HTTPClient,
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			CacheTTL:       cfg.CacheTTL,
			Logger:         logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
	}
}

// Search looks every title up and collects the ids of films released in
// year. It reports an id only when exactly one film qualifies.
func (c *Client) Search(ctx context.Context, year int, titles ...string) (int, bool, error) {
	if year <= 0 || len(titles) == 0 {
		return 0, false, nil
	}

	ids := make(map[int]struct{})
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		found, err := c.searchTitle(ctx, year, title)
		if err != nil {
			return 0, false, fmt.Errorf("search filmaffinity title=%q year=%d: %w", title, year, err)
		}
		for _, id := range found {
			ids[id] = struct{}{}
		}
	}

	if len(ids) != 1 {
		if len(ids) > 1 {
			c.logger.DebugContext(ctx, "ambiguous filmaffinity search", "year", year, "titles", titles, "ids", len(ids))
		}
		return 0, false, nil
	}
	for id := range ids {
		return id, true, nil
	}
	return 0, false, nil
}

func (c *Client) searchTitle(ctx context.Context, year int, title string) ([]int, error) {
	fullURL := c.baseURL + "/es/search.php?stype=title&em=1&stext=" + url.QueryEscape(title)
	raw, err := c.fetcher.Get(ctx, fullURL)
	if err != nil {
		return nil, err
	}
	doc, err := htmldom.Parse(raw)
	if err != nil {
		return nil, err
	}

	pageTitle := strings.ToLower(htmldom.Text(htmldom.Find(doc, htmldom.Element("title"))))
	if _, blocked := blockedTitles[pageTitle]; blocked {
		c.fetcher.Throttled(ctx, pageTitle)
		return nil, fmt.Errorf("%w: filmaffinity answered %q", usecase.ErrDependencyUnavailable, pageTitle)
	}

	return filmIDs(doc, year), nil
}

// filmIDs reads a search answer. An exact hit redirects to the film page,
// which announces itself through its alternate link; otherwise the result
// cards list candidates with their year.
func filmIDs(doc *html.Node, year int) []int {
	var out []int
	alternate := htmldom.Find(doc, htmldom.WithAttr(htmldom.WithAttr(htmldom.Element("link"), "rel", "alternate"), "hreflang", "es"))
	if id, ok := idFromLink(alternate); ok && pageYear(doc) == year {
		out = append(out, id)
	}

	for _, res := range htmldom.FindAll(doc, htmldom.Element("div", "searchres")) {
		for _, card := range htmldom.FindAll(res, htmldom.Element("div", "card-body")) {
			y, err := strconv.Atoi(htmldom.Text(htmldom.Find(card, htmldom.Element("span", "mc-year"))))
			if err != nil || y != year {
				continue
			}
			if id, ok := idFromLink(htmldom.Find(card, htmldom.WithAttr(htmldom.Element("a"), "href"))); ok {
				out = append(out, id)
			}
		}
	}
	return out
}

func pageYear(doc *html.Node) int {
	published := func(n *html.Node) bool {
		if n.Type != html.ElementNode || (n.Data != "dd" && n.Data != "span") {
			return false
		}
		v, _ := htmldom.Attr(n, "itemprop")
		return v == "datePublished"
	}
	y, err := strconv.Atoi(htmldom.Text(htmldom.Find(doc, published)))
	if err != nil {
		return 0
	}
	return y
}

func idFromLink(n *html.Node) (int, bool) {
	href, ok := htmldom.Attr(n, "href")
	if !ok {
		return 0, false
	}
	m := filmHrefRegex.FindStringSubmatch(href)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}
