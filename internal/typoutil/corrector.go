package typoutil

import (
	"sync"
)

// defaultMaxCacheSize bounds the number of remembered corrections per Corrector.
const defaultMaxCacheSize = 1000

type correction struct {
	term  string
	found bool
}

// Corrector finds the closest vocabulary term for misspelled words. It is bound
// to one immutable vocabulary, so cached corrections never go stale.
type Corrector struct {
	sortedTerms []string
	maxDistance int

	cache        map[string]correction
	cacheMu      sync.RWMutex
	maxCacheSize int
}

// NewCorrector creates a Corrector over sortedTerms, which must be in
// lexicographic order and must not be modified afterwards.
func NewCorrector(sortedTerms []string, maxDistance int) *Corrector {
	return &Corrector{
		sortedTerms:  sortedTerms,
		maxDistance:  maxDistance,
		cache:        make(map[string]correction),
		maxCacheSize: defaultMaxCacheSize,
	}
}

// Correct returns the closest term within the configured edit distance.
// The boolean is false when no term is close enough.
func (c *Corrector) Correct(term string) (string, bool) {
	c.cacheMu.RLock()
	cached, ok := c.cache[term]
	c.cacheMu.RUnlock()
	if ok {
		return cached.term, cached.found
	}

	best, _, found := ClosestTerm(term, c.sortedTerms, c.maxDistance)

	c.cacheMu.Lock()
	if len(c.cache) < c.maxCacheSize {
		c.cache[term] = correction{term: best, found: found}
	}
	c.cacheMu.Unlock()

	return best, found
}
