// Package extract holds the pure functions that map a parsed page to
// structured facts. No I/O, no state: the same document always yields
// the same output.
package extract

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"repo-crawler/pkg/models"
	"repo-crawler/pkg/utils"
)

// ownerSelector matches the meta tag whose content attribute carries
// the repository owner's login.
const ownerSelector = `meta[name='octolytics-dimension-user_login']`

// languageSelector matches one language-breakdown item; its first two
// spans are the language name and its percentage.
const languageSelector = `.d-inline-flex.flex-items-center`

// Owner returns the repository owner login from a detail page. A page
// without the owner marker (layout drift, substituted error page)
// fails with ErrMissingField.
func Owner(doc *goquery.Document) (string, error) {
	owner, exists := doc.Find(ownerSelector).First().Attr("content")
	if !exists {
		return "", fmt.Errorf("%w: owner marker %q not found", utils.ErrMissingField, ownerSelector)
	}
	return owner, nil
}

// LanguageStats returns the language-percentage breakdown from a detail
// page in document order. Duplicate language names overwrite earlier
// values (last occurrence wins). A page with no breakdown yields an
// empty mapping, not an error.
func LanguageStats(doc *goquery.Document) *models.LanguageStats {
	stats := models.NewLanguageStats()
	doc.Find(languageSelector).Each(func(_ int, item *goquery.Selection) {
		spans := item.Find("span")
		if spans.Length() < 2 {
			return
		}
		name := spans.Eq(0).Text()
		percentage := spans.Eq(1).Text()
		stats.Set(name, percentage)
	})
	return stats
}
