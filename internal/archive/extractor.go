package archive

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoContent marks a document page whose content container is missing or
// whose cleaned body falls under the configured minimum length. The walk
// skips such documents and keeps going.
var ErrNoContent = errors.New("document has no extractable content")

var spaceRuns = regexp.MustCompile(`[ \t]+`)

// Extractor isolates the body of a full document page and flattens it to
// normalized plain text, one paragraph per line.
type Extractor struct {
	selector    string
	langPrefix  string
	minLength   int
	boilerplate []*regexp.Regexp
}

// ExtractorSettings configures a single archive's extraction rules.
type ExtractorSettings struct {
	// ContainerSelector is the CSS selector of the content region.
	ContainerSelector string
	// Language selects elements by lang attribute prefix when no
	// container selector matches (e.g. "NL" matches lang="nl-BE").
	Language string
	// MinLength rejects cleaned bodies shorter than this many bytes.
	MinLength int
	// Boilerplate lines matching these patterns are stripped; applied
	// per line against plain text, never against markup.
	Boilerplate []*regexp.Regexp
}

// NewExtractor builds an extractor from settings.
func NewExtractor(settings ExtractorSettings) *Extractor {
	return &Extractor{
		selector:    settings.ContainerSelector,
		langPrefix:  strings.ToLower(settings.Language),
		minLength:   settings.MinLength,
		boilerplate: settings.Boilerplate,
	}
}

// CompilePatterns compiles the configured boilerplate expressions.
func CompilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("boilerplate pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// Extract returns the cleaned text body of a full document page. The result
// only depends on the input HTML, so running it twice yields identical text.
func (e *Extractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}
	doc.Find("script, style, noscript, nav, header, footer").Remove()

	region := e.contentRegion(doc)
	if region == nil {
		return "", ErrNoContent
	}

	var paragraphs []string
	region.Find("p").Each(func(_ int, p *goquery.Selection) {
		if t := strings.TrimSpace(p.Text()); t != "" {
			paragraphs = append(paragraphs, t)
		}
	})
	if len(paragraphs) == 0 {
		region.Each(func(_ int, s *goquery.Selection) {
			if t := strings.TrimSpace(s.Text()); t != "" {
				paragraphs = append(paragraphs, t)
			}
		})
	}

	text := e.clean(paragraphs)
	if len(text) < e.minLength {
		return "", ErrNoContent
	}
	return text, nil
}

// contentRegion locates the structural container of the transcript body:
// the configured selector first, then elements tagged with the archive's
// language. Returns nil when neither is present.
func (e *Extractor) contentRegion(doc *goquery.Document) *goquery.Selection {
	if e.selector != "" {
		if sel := doc.Find(e.selector).First(); sel.Length() > 0 {
			return sel
		}
	}

	if e.langPrefix != "" {
		sel := doc.Find("body *").FilterFunction(func(_ int, s *goquery.Selection) bool {
			lang, exists := s.Attr("lang")
			if !exists {
				lang, exists = s.Attr("xml:lang")
			}
			return exists && strings.HasPrefix(strings.ToLower(lang), e.langPrefix)
		})
		if sel.Length() > 0 {
			return sel
		}
	}

	return nil
}

// clean collapses whitespace, normalizes line endings, drops boilerplate
// lines and trims the result. Paragraph boundaries survive as newlines.
func (e *Extractor) clean(paragraphs []string) string {
	var lines []string
	for _, p := range paragraphs {
		p = strings.ReplaceAll(p, "\r\n", "\n")
		for _, line := range strings.Split(p, "\n") {
			line = strings.TrimSpace(spaceRuns.ReplaceAllString(line, " "))
			for _, pat := range e.boilerplate {
				line = pat.ReplaceAllString(line, "")
			}
			line = strings.TrimSpace(spaceRuns.ReplaceAllString(line, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return strings.Join(lines, "\n")
}
