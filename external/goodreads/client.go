package goodreads

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/riskibarqy/event-agenda/external/webfetch"
	"github.com/riskibarqy/event-agenda/internal/domain/book"
	"github.com/riskibarqy/event-agenda/internal/platform/htmldom"
	"github.com/riskibarqy/event-agenda/internal/platform/logging"
	"github.com/riskibarqy/event-agenda/internal/platform/resilience"
)

const defaultBaseURL = "https://www.goodreads.com"

var ratingRegex = regexp.MustCompile(`([\d.]+) avg rating\s*[—–-]\s*([\d,]+) ratings?`)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	CacheTTL       time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client searches the Goodreads catalogue. It implements book.Lookup.
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
			Name:           "goodreads",
			HTTPClient:     cfg.HTTPClient,
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			CacheTTL:       cfg.CacheTTL,
			Logger:         logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
	}
}

// Find splits presentation into title and author, searches "title author"
// and then "title" alone, and returns the matches of the first query that
// has any.
func (c *Client) Find(ctx context.Context, presentation string) ([]book.Book, error) {
	title, author, ok := book.SplitTitleAuthor(presentation)
	if !ok {
		return nil, nil
	}

	for _, query := range []string{title + " " + author, title} {
		candidates, err := c.search(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("search goodreads query=%q: %w", query, err)
		}
		if found := book.Match(title, author, candidates); len(found) > 0 {
			c.logger.DebugContext(ctx, "goodreads match", "query", query, "matches", len(found), "url", found[0].URL)
			return found, nil
		}
	}
	return nil, nil
}

func (c *Client) search(ctx context.Context, query string) ([]book.Book, error) {
	fullURL := c.baseURL + "/search?utf8=%E2%9C%93&query=" + url.QueryEscape(query)
	raw, err := c.fetcher.Get(ctx, fullURL)
	if err != nil {
		return nil, err
	}
	doc, err := htmldom.Parse(raw)
	if err != nil {
		return nil, err
	}
	return c.parseResults(doc), nil
}

func (c *Client) parseResults(doc *html.Node) []book.Book {
	table := htmldom.Find(doc, htmldom.Element("table", "tableList"))
	if table == nil {
		return nil
	}

	var out []book.Book
	seen := make(map[string]struct{})
	for _, link := range htmldom.FindAll(table, htmldom.WithAttr(htmldom.Element("a", "bookTitle"), "href")) {
		td := htmldom.Closest(link, htmldom.Element("td"))
		if td == nil {
			continue
		}
		var authors []string
		for _, a := range htmldom.FindAll(td, htmldom.Element("a", "authorName")) {
			if name := htmldom.Text(a); name != "" && !slices.Contains(authors, name) {
				authors = append(authors, name)
			}
		}
		if len(authors) == 0 {
			continue
		}

		href, _ := htmldom.Attr(link, "href")
		b := book.Book{
			URL:     c.absolute(strings.SplitN(href, "-", 2)[0]),
			Title:   htmldom.Text(link),
			Authors: authors,
		}
		if m := ratingRegex.FindStringSubmatch(htmldom.Text(td)); m != nil {
			b.Rating, _ = strconv.ParseFloat(m[1], 64)
			b.Reviews, _ = strconv.Atoi(strings.ReplaceAll(m[2], ",", ""))
		}
		if _, dup := seen[b.URL]; dup {
			continue
		}
		seen[b.URL] = struct{}{}
		out = append(out, b)
	}
	return out
}

func (c *Client) absolute(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return c.baseURL + "/" + strings.TrimLeft(href, "/")
}
