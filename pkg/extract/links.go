package extract

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// resultTitleSelector matches the anchor inside each search-result
// title on the results page.
const resultTitleSelector = ".search-title > a"

// CandidateLinks returns the absolute URLs of every search-result
// entity on the results page, in document order. Relative hrefs are
// resolved against base. Zero results is a valid empty set. Anchors
// with missing or unparseable hrefs are skipped with a warning.
func CandidateLinks(doc *goquery.Document, base *url.URL, log *logrus.Entry) []string {
	var links []string
	doc.Find(resultTitleSelector).Each(func(_ int, anchor *goquery.Selection) {
		href, exists := anchor.Attr("href")
		if !exists || href == "" {
			return
		}
		linkURL, err := base.Parse(href)
		if err != nil {
			log.Warnf("Skipping invalid result href %q: %v", href, err)
			return
		}
		links = append(links, linkURL.String())
	})
	return links
}
