// Package htmldom offers the few tree queries the catalogue scrapers need on
// top of golang.org/x/net/html.
package htmldom

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/riskibarqy/event-agenda/internal/platform/textutil"
)

// Matcher selects element nodes.
type Matcher func(*html.Node) bool

func Parse(raw []byte) (*html.Node, error) {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// Element matches tag elements carrying every given class.
func Element(tag string, classes ...string) Matcher {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != tag {
			return false
		}
		for _, c := range classes {
			if !HasClass(n, c) {
				return false
			}
		}
		return true
	}
}

// WithAttr narrows m to nodes whose attribute key exists and, when values
// are given, equals one of them.
func WithAttr(m Matcher, key string, values ...string) Matcher {
	return func(n *html.Node) bool {
		if !m(n) {
			return false
		}
		v, ok := Attr(n, key)
		if !ok {
			return false
		}
		return len(values) == 0 || slices.Contains(values, v)
	}
}

// FindAll walks the subtree of n in document order.
func FindAll(n *html.Node, m Matcher) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if m(node) {
			out = append(out, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return out
}

func Find(n *html.Node, m Matcher) *html.Node {
	if n == nil {
		return nil
	}
	if m(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := Find(c, m); found != nil {
			return found
		}
	}
	return nil
}

// Closest returns the nearest ancestor of n matched by m.
func Closest(n *html.Node, m Matcher) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if m(p) {
			return p
		}
	}
	return nil
}

func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func HasClass(n *html.Node, class string) bool {
	v, ok := Attr(n, "class")
	return ok && slices.Contains(strings.Fields(v), class)
}

// Text returns the text content of n with whitespace collapsed.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteByte(' ')
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return textutil.CollapseSpaces(sb.String())
}
