package archive

import (
	"fmt"
	"regexp"
	"strings"
)

// referenceExpr captures the fixed layout of table-of-contents URLs:
// /doceo/document/<TYPE>-<TERM>-<DATE>-TOC_<LANG>.html
var referenceExpr = regexp.MustCompile(`/doceo/document/([A-Z]+)-(\d+)-(\d{4}-\d{2}-\d{2})-TOC_([A-Z]{2})\.html$`)

// Reference identifies one table-of-contents page in the archive.
type Reference struct {
	URL      string
	Type     string
	Term     string
	Date     string
	Language string
}

// ParseReference validates a TOC URL against the archive pattern and pulls
// out the document type, parliamentary term, sitting date and language.
func ParseReference(tocURL string) (Reference, error) {
	m := referenceExpr.FindStringSubmatch(tocURL)
	if m == nil {
		return Reference{}, fmt.Errorf("url %s does not match the archive pattern", tocURL)
	}

	return Reference{
		URL:      tocURL,
		Type:     m[1],
		Term:     m[2],
		Date:     m[3],
		Language: m[4],
	}, nil
}

// DocumentURL derives the full-document URL by removing the -TOC token.
// Nothing else about the URL changes.
func (r Reference) DocumentURL() string {
	return strings.Replace(r.URL, "-TOC_", "_", 1)
}
