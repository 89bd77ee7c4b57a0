package archive

import (
	"errors"
	"strings"
	"testing"
)

func newTestExtractor(t *testing.T, selector, language string, minLength int, patterns ...string) *Extractor {
	t.Helper()
	compiled, err := CompilePatterns(patterns)
	if err != nil {
		t.Fatalf("compile patterns: %v", err)
	}
	return NewExtractor(ExtractorSettings{
		ContainerSelector: selector,
		Language:          language,
		MinLength:         minLength,
		Boilerplate:       compiled,
	})
}

func TestExtractUsesContainerAndKeepsParagraphs(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t, "div.transcript", "", 10)
	html := `
	<html><body>
	  <nav><p>navigation junk</p></nav>
	  <div class="transcript">
	    <p>De  Voorzitter   opent de vergadering.</p>
	    <p>Eerste    spreker aan het woord.</p>
	  </div>
	  <footer><p>footer junk</p></footer>
	</body></html>`

	text, err := e.Extract(html)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	want := "De Voorzitter opent de vergadering.\nEerste spreker aan het woord."
	if text != want {
		t.Fatalf("unexpected text:\n%q\nwant:\n%q", text, want)
	}
}

func TestExtractLanguageFallback(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t, "div.absent", "NL", 10)
	html := `
	<html><body>
	  <p lang="fr">Texte en français ignoré.</p>
	  <div lang="nl-BE"><p>Nederlandse tekst van de zitting.</p></div>
	</body></html>`

	text, err := e.Extract(html)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if text != "Nederlandse tekst van de zitting." {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractMissingContainer(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t, "div.transcript", "", 10)
	_, err := e.Extract(`<html><body><div class="menu"><p>not the content</p></div></body></html>`)
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
}

func TestExtractRejectsShortBody(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t, "div.transcript", "", 50)
	_, err := e.Extract(`<html><body><div class="transcript"><p>te kort</p></div></body></html>`)
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent for short body, got %v", err)
	}
}

func TestExtractDropsBoilerplateLines(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t, "div.transcript", "", 10,
		`(?i)\(The sitting (?:was suspended|opened|closed|ended) at[^)]*\)`,
		`^\d{1,4}$`,
	)
	html := `
	<div class="transcript">
	  <p>Het debat over het verslag begint.</p>
	  <p>(The sitting was suspended at 13.05)</p>
	  <p>12</p>
	  <p>Na de schorsing (The sitting opened at 15.00) gaat het debat verder.</p>
	</div>`

	text, err := e.Extract(html)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	want := "Het debat over het verslag begint.\nNa de schorsing gaat het debat verder."
	if text != want {
		t.Fatalf("unexpected text:\n%q\nwant:\n%q", text, want)
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t, "div.transcript", "", 10, `\[(?:COM|A)\d+-\d+(?:/\d+)?\]`)
	html := `
	<div class="transcript">
	  <p>Verslag over de begroting [COM2021-456] wordt besproken.</p>
	  <p>De stemming volgt	morgen.</p>
	</div>`

	first, err := e.Extract(html)
	if err != nil {
		t.Fatalf("first Extract: %v", err)
	}
	second, err := e.Extract(html)
	if err != nil {
		t.Fatalf("second Extract: %v", err)
	}
	if first != second {
		t.Fatalf("extract not idempotent:\n%q\nvs\n%q", first, second)
	}
	if strings.Contains(first, "[COM") {
		t.Fatalf("boilerplate survived: %q", first)
	}
}
