package book

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/riskibarqy/event-agenda/internal/platform/textutil"
)

// Book is a search hit from a book catalogue.
type Book struct {
	URL     string
	Title   string
	Authors []string
	Rating  float64
	Reviews int
}

var titleAuthorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^['‘"«](.+)['’"»],?\s*escrito por (.+)$`),
	regexp.MustCompile(`^['‘"«](.+)['’"»],\s*de (.+)$`),
	regexp.MustCompile(`^['‘"«](.+)['’"»]\s*de (.+)$`),
	regexp.MustCompile(`^(.+),\s*de (.+)$`),
	regexp.MustCompile(`^(.+) de (.+)$`),
}

// SplitTitleAuthor parses presentations such as "'Title', de Author".
func SplitTitleAuthor(s string) (title, author string, ok bool) {
	s = textutil.CollapseSpaces(s)
	for _, re := range titleAuthorPatterns {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		title = strings.TrimSpace(m[1])
		author = strings.TrimSpace(m[2])
		if title != "" && author != "" {
			return title, author, true
		}
	}
	return "", "", false
}

// Match keeps the candidates whose title and author agree with the query and
// ranks them by review count, then rating.
func Match(title, author string, candidates []Book) []Book {
	wantTitle := textutil.Plain(title)
	wantAuthor := textutil.Plain(author)
	if wantTitle == "" {
		return nil
	}

	var out []Book
	for _, b := range candidates {
		if !titleMatches(wantTitle, textutil.Plain(b.Title)) {
			continue
		}
		if wantAuthor != "" && !authorMatches(wantAuthor, b.Authors) {
			continue
		}
		out = append(out, b)
	}
	slices.SortStableFunc(out, func(a, b Book) int {
		if c := cmp.Compare(b.Reviews, a.Reviews); c != 0 {
			return c
		}
		return cmp.Compare(b.Rating, a.Rating)
	})
	return out
}

// titleMatches accepts equal titles and titles extended with a subtitle.
func titleMatches(want, got string) bool {
	if got == want {
		return true
	}
	return strings.HasPrefix(got, want+" ")
}

// authorMatches accepts an author when every word of the query appears in
// the author's name.
func authorMatches(want string, authors []string) bool {
	words := strings.Fields(want)
	for _, a := range authors {
		name := " " + textutil.Plain(a) + " "
		all := true
		for _, w := range words {
			if !strings.Contains(name, " "+w+" ") {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}
