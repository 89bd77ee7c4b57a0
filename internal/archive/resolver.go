package archive

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrMalformedPage marks a table-of-contents page without any anchors at
// all. It is distinct from "no next link", which is the normal end of the
// archive.
var ErrMalformedPage = errors.New("page lacks navigation anchors")

// ResolveNext locates the forward-navigation anchor on a fetched TOC page
// and returns its target resolved to an absolute URL. The anchor's title
// attribute is checked first, then its visible text (case-insensitive
// substring); the first match in document order wins. ok is false when no
// anchor carries the label.
func ResolveNext(doc *goquery.Document, pageURL, label string) (next string, ok bool, err error) {
	anchors := doc.Find("a")
	if anchors.Length() == 0 {
		return "", false, ErrMalformedPage
	}

	var href string
	anchors.EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if title, exists := a.Attr("title"); exists && strings.EqualFold(strings.TrimSpace(title), label) {
			href, _ = a.Attr("href")
			return false
		}
		return true
	})

	if href == "" {
		needle := strings.ToLower(label)
		anchors.EachWithBreak(func(_ int, a *goquery.Selection) bool {
			if strings.Contains(strings.ToLower(a.Text()), needle) {
				href, _ = a.Attr("href")
				return false
			}
			return true
		})
	}

	if href == "" {
		return "", false, nil
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return "", false, fmt.Errorf("parse page url %s: %w", pageURL, err)
	}
	target, err := url.Parse(href)
	if err != nil {
		return "", false, fmt.Errorf("parse next href %s: %w", href, err)
	}

	return base.ResolveReference(target).String(), true, nil
}
