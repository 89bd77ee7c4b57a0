package archive

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const tocBase = "https://www.europarl.europa.eu/doceo/document/TA-5-1999-07-21-TOC_NL.html"

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestResolveNextByTitleAttribute(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, `
	<body>
	  <a href="/portal/nl">Home</a>
	  <a title="Volgende" href="TA-5-1999-07-22-TOC_NL.html">&gt;</a>
	</body>`)

	next, ok, err := ResolveNext(doc, tocBase, "Volgende")
	if err != nil {
		t.Fatalf("ResolveNext returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected a next link")
	}
	if next != "https://www.europarl.europa.eu/doceo/document/TA-5-1999-07-22-TOC_NL.html" {
		t.Fatalf("unexpected next url: %s", next)
	}
}

func TestResolveNextFallsBackToAnchorText(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, `
	<body>
	  <a href="/portal/nl">Home</a>
	  <a href="TA-5-1999-07-22-TOC_NL.html">volgende pagina</a>
	</body>`)

	next, ok, err := ResolveNext(doc, tocBase, "Volgende")
	if err != nil {
		t.Fatalf("ResolveNext returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected a next link")
	}
	if !strings.HasSuffix(next, "/doceo/document/TA-5-1999-07-22-TOC_NL.html") {
		t.Fatalf("unexpected next url: %s", next)
	}
}

func TestResolveNextFirstDocumentOrderMatchWins(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, `
	<body>
	  <a title="Volgende" href="first.html">first</a>
	  <a title="Volgende" href="second.html">second</a>
	</body>`)

	next, ok, err := ResolveNext(doc, tocBase, "Volgende")
	if err != nil {
		t.Fatalf("ResolveNext returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected a next link")
	}
	if !strings.HasSuffix(next, "/doceo/document/first.html") {
		t.Fatalf("expected first anchor in document order, got %s", next)
	}
}

func TestResolveNextNoMatchIsTermination(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, `
	<body>
	  <a href="/portal/nl">Home</a>
	  <a href="/previous.html" title="Vorige">&lt;</a>
	</body>`)

	_, ok, err := ResolveNext(doc, tocBase, "Volgende")
	if err != nil {
		t.Fatalf("ResolveNext returned error: %v", err)
	}
	if ok {
		t.Fatal("expected no next link")
	}
}

func TestResolveNextMalformedPage(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, `<body><p>nothing here</p></body>`)

	_, _, err := ResolveNext(doc, tocBase, "Volgende")
	if !errors.Is(err, ErrMalformedPage) {
		t.Fatalf("expected ErrMalformedPage, got %v", err)
	}
}
