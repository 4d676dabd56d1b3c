// Package crawler composes the query builder, resilient fetcher and
// extraction functions into the full search crawl.
package crawler

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"repo-crawler/pkg/config"
	"repo-crawler/pkg/extract"
	"repo-crawler/pkg/fetch"
	"repo-crawler/pkg/models"
	"repo-crawler/pkg/query"
	"repo-crawler/pkg/utils"
)

// Crawler runs one search crawl: build the search URL, fetch the
// results page, fetch each entity's detail page concurrently, and
// extract structured records.
type Crawler struct {
	base       *url.URL
	keywords   []string
	entityType models.EntityType
	fetcher    *fetch.Fetcher
	batch      *fetch.BatchFetcher
	log        *logrus.Logger
}

// NewCrawler creates a Crawler for one validated crawl input. The base
// URL and input are assumed validated by the config layer.
func NewCrawler(appCfg *config.AppConfig, input *config.InputData, fetcher *fetch.Fetcher, log *logrus.Logger) (*Crawler, error) {
	base, err := url.Parse(appCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", appCfg.BaseURL, err)
	}
	entityType, err := input.EntityType()
	if err != nil {
		return nil, err
	}

	return &Crawler{
		base:       base,
		keywords:   input.Keywords,
		entityType: entityType,
		fetcher:    fetcher,
		batch:      fetch.NewBatchFetcher(fetcher, appCfg.EffectiveAbortOnFirstFailure(), log),
		log:        log,
	}, nil
}

// Run executes the crawl and returns the ordered records for every
// discovered entity. A failed search-page fetch fails the whole crawl;
// detail-page failures follow the configured batch policy. Records are
// immutable once built; the caller owns their serialization.
func (c *Crawler) Run(ctx context.Context) ([]models.Record, error) {
	crawlLog := c.log.WithFields(logrus.Fields{
		"crawl_id": uuid.NewString(),
		"keywords": c.keywords,
		"type":     c.entityType,
	})

	searchURL := query.BuildSearchURL(c.base, c.keywords, c.entityType)
	crawlLog.Infof("Fetching search page: %s", searchURL)

	searchDoc, err := c.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("fetch search page: %w", err)
	}

	links := extract.CandidateLinks(searchDoc, c.base, crawlLog)
	crawlLog.Infof("Found %d candidate links", len(links))
	if len(links) == 0 {
		return []models.Record{}, nil
	}

	results, err := c.batch.FetchAll(ctx, links)
	if err != nil {
		return nil, fmt.Errorf("fetch detail pages: %w", err)
	}
	// In collect mode a cancelled context fails every slot; surface the
	// cancellation instead of reporting an all-skipped crawl.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	records := make([]models.Record, 0, len(results))
	skipped := 0
	for _, res := range results {
		recLog := crawlLog.WithField("url", res.URL)
		if res.Err != nil {
			recLog.Warnf("Skipping record, fetch failed (%s): %v", utils.CategorizeError(res.Err), res.Err)
			skipped++
			continue
		}

		record, err := c.buildRecord(res)
		if err != nil {
			// Layout drift on one detail page does not void its
			// siblings; the record is dropped and counted.
			recLog.Warnf("Skipping record, extraction failed (%s): %v", utils.CategorizeError(err), err)
			skipped++
			continue
		}
		recLog.Debugf("Record: %+v", record)
		records = append(records, record)
	}

	if skipped > 0 {
		crawlLog.Warnf("Crawl finished with %d of %d records skipped", skipped, len(results))
	} else {
		crawlLog.Infof("Crawl finished with %d records", len(records))
	}
	return records, nil
}

// buildRecord maps one fetched detail page to its Result Record.
// Repository crawls carry owner and language stats; other entity types
// carry the URL alone.
func (c *Crawler) buildRecord(res fetch.Result) (models.Record, error) {
	record := models.Record{URL: res.URL}
	if c.entityType != models.EntityRepositories {
		return record, nil
	}

	owner, err := extract.Owner(res.Doc)
	if err != nil {
		return models.Record{}, err
	}
	record.Extra = &models.RepoExtra{
		Owner:         owner,
		LanguageStats: extract.LanguageStats(res.Doc),
	}
	return record, nil
}
