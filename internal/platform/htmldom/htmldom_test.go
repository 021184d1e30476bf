package htmldom

import "testing"

const page = `<html><head><title> Too many
 request </title><link rel="alternate" hreflang="es" href="/es/film1.html"></head>
<body><table class="tableList"><tr><td>
<a class="bookTitle" href="/book/show/1-nada"><span>Nada</span></a>
<a class="authorName x" href="/a/1">Carmen   Laforet</a>
</td></tr></table></body></html>`

func TestQueries(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(page))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if got := Text(Find(doc, Element("title"))); got != "Too many request" {
		t.Fatalf("expected collapsed title, got %q", got)
	}

	link := Find(doc, WithAttr(Element("link"), "hreflang", "es"))
	if href, _ := Attr(link, "href"); href != "/es/film1.html" {
		t.Fatalf("expected alternate link, got %q", href)
	}
	if Find(doc, WithAttr(Element("link"), "hreflang", "en")) != nil {
		t.Fatalf("expected no english alternate")
	}

	title := Find(doc, WithAttr(Element("a", "bookTitle"), "href"))
	td := Closest(title, Element("td"))
	if td == nil {
		t.Fatalf("expected enclosing cell")
	}
	authors := FindAll(td, Element("a", "authorName"))
	if len(authors) != 1 || Text(authors[0]) != "Carmen Laforet" {
		t.Fatalf("unexpected authors: %d", len(authors))
	}
}
