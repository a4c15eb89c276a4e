package images

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// pageSelector pairs a CSS selector with the attribute carrying the image URL.
type pageSelector struct {
	query string
	attr  string
}

// pageSelectors is scanned in strict order; the first match whose attribute
// value starts with "http" wins. Social metadata first, then site-specific
// hero/featured image classes, then images scoped to article containers.
var pageSelectors = []pageSelector{
	{`meta[property="og:image"]`, "content"},
	{`meta[name="twitter:image"]`, "content"},
	{`img.hero-image`, "src"},
	{`img.featured-image`, "src"},
	{`img.main-image`, "src"},
	{`img.article-image`, "src"},
	{`img.story-image`, "src"},
	{`article img`, "src"},
	{`.article-body img`, "src"},
	{`.story-body img`, "src"},
	{`.content img`, "src"},
}

// scanDocument walks the selector list over a parsed article page and
// returns the first absolute image URL found, or empty when none matches.
func scanDocument(doc *goquery.Document) string {
	for _, sel := range pageSelectors {
		var found string
		doc.Find(sel.query).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			val, ok := s.Attr(sel.attr)
			if !ok {
				return true
			}
			val = strings.TrimSpace(val)
			if strings.HasPrefix(val, "http") && isAbsoluteHTTPURL(val) {
				found = val
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}
