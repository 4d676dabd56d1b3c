// Package query builds search URLs for the target code host.
package query

import (
	"net/url"
	"strings"

	"repo-crawler/pkg/models"
)

// BuildSearchURL constructs the absolute search URL for the given
// keywords and entity type. Keywords are percent-encoded and joined by
// a literal '+', the intentional token separator; '+' characters inside
// a keyword encode to %2B so the two stay distinguishable. The type
// parameter is lowercased. Validation happens upstream: keywords are
// assumed non-empty and entityType one of the supported values.
func BuildSearchURL(base *url.URL, keywords []string, entityType models.EntityType) string {
	searchURL := base.ResolveReference(&url.URL{Path: "/search"})

	// QueryEscape turns spaces into '+' and escapes everything else,
	// so escaping the space-joined keywords yields the '+'-separated
	// query term.
	q := url.QueryEscape(strings.Join(keywords, " "))
	searchURL.RawQuery = "q=" + q + "&type=" + strings.ToLower(string(entityType))
	return searchURL.String()
}
