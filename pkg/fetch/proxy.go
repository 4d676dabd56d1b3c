package fetch

import (
	"fmt"
	"math/rand"
	"net/url"
)

// Picker selects one of n choices. Injected into the Pool so tests can
// make proxy selection deterministic.
type Picker interface {
	Pick(n int) int
}

// randPicker draws uniformly from the shared process-wide source
type randPicker struct{}

func (randPicker) Pick(n int) int { return rand.Intn(n) }

// NewRandPicker returns the default uniformly-random Picker
func NewRandPicker() Picker { return randPicker{} }

// Pool is an immutable set of egress proxy endpoints, configured once
// at crawl start and shared read-only across all concurrent fetch
// attempts. Entries are borrowed by value; there is no rotation
// pointer, so concurrent draws need no coordination.
type Pool struct {
	proxies []*url.URL
	picker  Picker
}

// NewPool builds a Pool from host:port endpoint strings. An empty list
// is valid and yields a pool that never offers a proxy.
func NewPool(endpoints []string, picker Picker) (*Pool, error) {
	if picker == nil {
		picker = NewRandPicker()
	}
	proxies := make([]*url.URL, 0, len(endpoints))
	for _, ep := range endpoints {
		u, err := url.Parse("http://" + ep)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy endpoint %q: %w", ep, err)
		}
		proxies = append(proxies, u)
	}
	return &Pool{proxies: proxies, picker: picker}, nil
}

// Size returns the number of configured proxies
func (p *Pool) Size() int {
	return len(p.proxies)
}

// Pick returns a proxy URL selected by the pool's Picker, or nil when
// the pool is empty.
func (p *Pool) Pick() *url.URL {
	if len(p.proxies) == 0 {
		return nil
	}
	return p.proxies[p.picker.Pick(len(p.proxies))]
}
