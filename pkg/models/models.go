package models

import (
	"fmt"
	"strings"

	"repo-crawler/pkg/utils"
)

// EntityType selects which kind of search result the crawl targets
type EntityType string

const (
	EntityRepositories EntityType = "repositories"
	EntityIssues       EntityType = "issues"
	EntityWikis        EntityType = "wikis"
)

// ParseEntityType normalizes a user-supplied type string (case-insensitive)
// to one of the supported entity types.
func ParseEntityType(s string) (EntityType, error) {
	switch EntityType(strings.ToLower(strings.TrimSpace(s))) {
	case EntityRepositories:
		return EntityRepositories, nil
	case EntityIssues:
		return EntityIssues, nil
	case EntityWikis:
		return EntityWikis, nil
	default:
		return "", fmt.Errorf("%w: unknown entity type %q (want repositories, issues or wikis)", utils.ErrInvalidInput, s)
	}
}

// Record is the final output unit for one discovered entity.
// Extra is populated only for repository crawls and omitted otherwise.
type Record struct {
	URL   string     `json:"url"`
	Extra *RepoExtra `json:"extra,omitempty"`
}

// RepoExtra holds repository-specific fields extracted from a detail page
type RepoExtra struct {
	Owner         string         `json:"owner"`
	LanguageStats *LanguageStats `json:"language_stats"`
}
