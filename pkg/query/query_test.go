package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repo-crawler/pkg/models"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestBuildSearchURL(t *testing.T) {
	base := mustParse(t, "https://github.com/")

	tests := []struct {
		name       string
		keywords   []string
		entityType models.EntityType
		expected   string
	}{
		{
			name:       "single keyword",
			keywords:   []string{"openstack"},
			entityType: models.EntityRepositories,
			expected:   "https://github.com/search?q=openstack&type=repositories",
		},
		{
			name:       "multiple keywords joined by literal plus",
			keywords:   []string{"openstack", "nova", "css"},
			entityType: models.EntityRepositories,
			expected:   "https://github.com/search?q=openstack+nova+css&type=repositories",
		},
		{
			name:       "issues type",
			keywords:   []string{"golang"},
			entityType: models.EntityIssues,
			expected:   "https://github.com/search?q=golang&type=issues",
		},
		{
			name:       "wikis type",
			keywords:   []string{"golang"},
			entityType: models.EntityWikis,
			expected:   "https://github.com/search?q=golang&type=wikis",
		},
		{
			name:       "keyword with space becomes plus",
			keywords:   []string{"open stack"},
			entityType: models.EntityRepositories,
			expected:   "https://github.com/search?q=open+stack&type=repositories",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildSearchURL(base, tt.keywords, tt.entityType)
			assert.Equal(t, tt.expected, got)

			// Joined by a literal '+', never an encoded one
			u, err := url.Parse(got)
			require.NoError(t, err, "result must be a well-formed URL")
			assert.Equal(t, "/search", u.Path)

			joined := ""
			for i, kw := range tt.keywords {
				if i > 0 {
					joined += "+"
				}
				joined += url.QueryEscape(kw)
			}
			assert.Equal(t, "q="+joined+"&type="+string(tt.entityType), u.RawQuery)
		})
	}
}

func TestBuildSearchURL_EncodesUnsafeCharacters(t *testing.T) {
	base := mustParse(t, "https://github.com/")

	got := BuildSearchURL(base, []string{"c++", "a&b"}, models.EntityRepositories)

	u, err := url.Parse(got)
	require.NoError(t, err)
	// Literal '+' inside a keyword must be percent-encoded so it stays
	// distinguishable from the separator
	assert.Equal(t, "q=c%2B%2B+a%26b&type=repositories", u.RawQuery)
}

func TestBuildSearchURL_BaseWithoutTrailingSlash(t *testing.T) {
	base := mustParse(t, "https://github.com")

	got := BuildSearchURL(base, []string{"nova"}, models.EntityRepositories)
	assert.Equal(t, "https://github.com/search?q=nova&type=repositories", got)
}
