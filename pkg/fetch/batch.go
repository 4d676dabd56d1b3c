package fetch

import (
	"context"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"golang.org/x/sync/errgroup"
)

// Result pairs one input URL with its fetched document or error.
// Results are positionally indexed: FetchAll's slot i always holds the
// outcome for urls[i] no matter which request completed first.
type Result struct {
	URL string
	Doc *goquery.Document
	Err error
}

// BatchFetcher issues a set of fetches concurrently. There is no fixed
// upper bound on in-flight requests; the proxy pool is not a
// concurrency limiter and concurrent attempts may draw the same proxy.
type BatchFetcher struct {
	fetcher             *Fetcher
	abortOnFirstFailure bool
	log                 *logrus.Logger
}

// NewBatchFetcher creates a BatchFetcher. With abortOnFirstFailure the
// first exhausted fetch cancels its siblings and fails the whole batch;
// otherwise every slot completes and carries its own error.
func NewBatchFetcher(fetcher *Fetcher, abortOnFirstFailure bool, log *logrus.Logger) *BatchFetcher {
	return &BatchFetcher{
		fetcher:             fetcher,
		abortOnFirstFailure: abortOnFirstFailure,
		log:                 log,
	}
}

// FetchAll fetches every URL concurrently and returns one Result per
// input URL in input order. In fail-fast mode the returned error is the
// first fetch error and the results slice is nil.
func (b *BatchFetcher) FetchAll(ctx context.Context, urls []string) ([]Result, error) {
	if b.abortOnFirstFailure {
		return b.fetchAllFailFast(ctx, urls)
	}
	return b.fetchAllCollect(ctx, urls), nil
}

func (b *BatchFetcher) fetchAllFailFast(ctx context.Context, urls []string) ([]Result, error) {
	results := make([]Result, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		g.Go(func() error {
			doc, err := b.fetcher.Fetch(gctx, u)
			if err != nil {
				return err
			}
			results[i] = Result{URL: u, Doc: doc}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		b.log.WithField("urls", len(urls)).Warnf("Batch aborted: %v", err)
		return nil, err
	}
	return results, nil
}

func (b *BatchFetcher) fetchAllCollect(ctx context.Context, urls []string) []Result {
	results := make([]Result, len(urls))

	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc, err := b.fetcher.Fetch(ctx, u)
			results[i] = Result{URL: u, Doc: doc, Err: err}
		}()
	}
	wg.Wait()
	return results
}
