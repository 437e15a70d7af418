// Package atlas implements the multi-phase search query pipeline.
//
// HOW A QUERY RUNS:
// A Query executes a fixed sequence of phases, each preceded by a
// cancellation check:
//  1. Coordinate phase: parse the raw text as a lat/lon pair
//  2. Category phase: skip masks + completion suggestions
//  3. Local feature phase: viewport scan of the spatial index
//  4. Trie phase: world-level named-entity scan
//  5. Final flush + terminal sentinel
//
// Results accumulate in a bounded best-K ranker and are flushed to the
// caller's emit function after the local scan and again at the end, so the
// stream is ordered best-first within each flush. Exactly one empty
// sentinel Result closes every stream that runs to completion.
//
// CANCELLATION:
// Cancel sets an atomic flag readable from any goroutine. The pipeline
// observes it between phases and between successive candidates within the
// scan phases, then stops without emitting further results. This is
// expected-path control flow, not an error.
package atlas

import (
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Engine binds the index collaborators and configuration from which
// queries are created. All collaborators are optional: a nil source skips
// its dependent phase. The engine itself is stateless across queries and
// safe for concurrent use.
type Engine struct {
	features   FeatureSource
	trie       TrieSource
	categories CategorySource
	cfg        Config
}

// NewEngine creates an engine with default configuration. Any collaborator
// may be nil.
func NewEngine(features FeatureSource, trie TrieSource, categories CategorySource) *Engine {
	return NewEngineWithConfig(features, trie, categories, DefaultConfig())
}

// NewEngineWithConfig creates an engine with explicit tunables.
func NewEngineWithConfig(features FeatureSource, trie TrieSource, categories CategorySource, cfg Config) *Engine {
	return &Engine{
		features:   features,
		trie:       trie,
		categories: categories,
		cfg:        cfg,
	}
}

// NewSearch creates a query over the engine's indexes. The text is
// tokenized immediately; viewport and limit shape the scan phases.
func (e *Engine) NewSearch(text string, viewport Rect) *Query {
	toks := tokenizeQuery(text)
	keywordRunes := make([][]rune, len(toks.keywords))
	for i, kw := range toks.keywords {
		keywordRunes[i] = []rune(kw)
	}
	return &Query{
		raw:          text,
		keywords:     toks.keywords,
		keywordRunes: keywordRunes,
		prefix:       []rune(toks.prefix),
		viewport:     viewport,
		remaining:    e.cfg.DefaultLimit,
		concurrency:  e.cfg.Concurrency,
		cfg:          e.cfg,
		features:     e.features,
		trie:         e.trie,
		categories:   e.categories,
		skipForType:  make(map[uint32]uint32),
		results:      newRanker(),
	}
}

// Query is one search request. A query owns its ranker and skip-mask table
// exclusively; nothing is shared across concurrent queries except the
// read-only index collaborators. Run consumes the query — it must be
// called at most once, and the caller must not retain the query afterwards.
type Query struct {
	raw          string
	keywords     []string
	keywordRunes [][]rune
	prefix       []rune
	viewport     Rect

	remaining   int
	concurrency int
	cfg         Config

	features   FeatureSource
	trie       TrieSource
	categories CategorySource

	// skipForType maps an entity-type code to the 31-bit mask of keyword
	// positions already explained by a category match.
	skipForType map[uint32]uint32

	mu      sync.Mutex // guards results during the parallel scan
	results *ranker

	terminate atomic.Bool
	ran       bool
}

// WithLimit overrides the result-count cap for this query.
func (q *Query) WithLimit(n int) *Query {
	if n > 0 {
		q.remaining = n
	}
	return q
}

// WithConcurrency overrides the number of scoring goroutines used by the
// local feature scan.
func (q *Query) WithConcurrency(n int) *Query {
	if n > 0 {
		q.concurrency = n
	}
	return q
}

// Cancel raises the termination flag. Safe to call from any goroutine,
// including concurrently with Run; the pipeline observes the flag at its
// next checkpoint.
func (q *Query) Cancel() {
	q.terminate.Store(true)
}

func (q *Query) cancelled() bool {
	return q.terminate.Load()
}

// Run executes the pipeline, streaming results to emit. The stream ends
// with exactly one empty sentinel Result unless the query is cancelled
// before the final flush.
func (q *Query) Run(emit func(Result)) {
	if q.ran {
		return
	}
	q.ran = true
	defer func() {
		q.results.release()
		q.results = nil
	}()

	if q.cancelled() {
		return
	}

	// Coordinate phase.
	if lat, lon, precision, ok := ParseLatLon(q.raw); ok {
		q.addResult(latLonResult(lat, lon, precision))
	}

	if q.cancelled() {
		return
	}

	// Category phase.
	if q.categories != nil {
		q.matchCategories()
	}

	if q.cancelled() {
		return
	}

	// Local feature phase. Coarse viewports skip straight to the trie:
	// per-feature detail is not meaningful at world overview levels.
	scale := ScaleLevel(q.viewport)
	if q.features != nil && scale > q.cfg.UpperWorldScale {
		maxScale := scale + q.cfg.ScanDepth
		if maxScale > q.cfg.UpperScale {
			maxScale = q.cfg.UpperScale
		}
		if q.concurrency > 1 {
			q.scanViewportParallel(maxScale)
		} else {
			q.scanViewport(maxScale)
		}
	}

	if q.cancelled() {
		return
	}

	q.flush(emit)
	if q.remaining == 0 {
		emit(Result{})
		return
	}

	if q.cancelled() {
		return
	}

	// Trie phase.
	if q.trie != nil {
		q.scanTrie()
	}

	if q.cancelled() {
		return
	}

	q.flush(emit)
	emit(Result{})
}

// scanViewport enumerates the spatial index serially, scoring each feature
// and observing the termination flag after every entity.
func (q *Query) scanViewport(maxScale int) {
	q.features.ForEachInViewport(q.viewport, maxScale, func(f Feature) bool {
		if q.cancelled() {
			log.Debugf("terminate flag observed during viewport scan: %q", q.raw)
			return false
		}
		if res, ok := q.scoreFeature(f); ok {
			q.addResult(res)
		}
		return true
	})
}

// scanViewportParallel fans feature scoring out to a worker pool. Scoring
// is a pure function of candidate and query state, so only the ranker
// needs synchronization; the final best-K set is order-independent, which
// keeps the parallel path's output equivalent to the serial one.
func (q *Query) scanViewportParallel(maxScale int) {
	feed := make(chan Feature, q.concurrency*2)
	g := new(errgroup.Group)
	for i := 0; i < q.concurrency; i++ {
		g.Go(func() error {
			for f := range feed {
				if res, ok := q.scoreFeature(f); ok {
					q.mu.Lock()
					q.results.offer(res, q.remaining)
					q.mu.Unlock()
				}
			}
			return nil
		})
	}

	q.features.ForEachInViewport(q.viewport, maxScale, func(f Feature) bool {
		if q.cancelled() {
			log.Debugf("terminate flag observed during viewport scan: %q", q.raw)
			return false
		}
		feed <- f
		return true
	})
	close(feed)
	_ = g.Wait() // workers never fail; Wait only fences completion
}

// scanTrie enumerates the world-level trie index, observing the
// termination flag after every entity.
func (q *Query) scanTrie() {
	q.trie.ForEachNamed(func(name string, f Feature) bool {
		if q.cancelled() {
			log.Debugf("terminate flag observed during trie scan: %q", q.raw)
			return false
		}
		if res, ok := q.scoreName(name, f); ok {
			q.addResult(res)
		}
		return true
	})
}

// newMatcherFor builds a name matcher with the feature's skip-masked
// keyword set.
func (q *Query) newMatcherFor(f Feature) *nameMatcher {
	var skip uint32
	for _, t := range f.Types {
		skip |= q.skipForType[t]
	}
	keywords := q.keywordRunes
	if skip != 0 {
		keywords = make([][]rune, 0, len(q.keywordRunes))
		for i, kw := range q.keywordRunes {
			if skip&(1<<uint(i)) == 0 {
				keywords = append(keywords, kw)
			}
		}
	}
	return newNameMatcher(keywords, q.prefix)
}

// scoreFeature scores all name variants of a feature. The second return
// is false when the feature does not match or its text is never drawn.
func (q *Query) scoreFeature(f Feature) (intermediateResult, bool) {
	m := q.newMatcherFor(f)
	for _, name := range f.Names {
		m.ProcessName(name.Text)
	}
	return q.matchedResult(m, f)
}

// scoreName scores a single indexed name of a trie entity.
func (q *Query) scoreName(name string, f Feature) (intermediateResult, bool) {
	m := q.newMatcherFor(f)
	m.ProcessName(name)
	return q.matchedResult(m, f)
}

func (q *Query) matchedResult(m *nameMatcher, f Feature) (intermediateResult, bool) {
	if !m.Matched() {
		return intermediateResult{}, false
	}
	if f.MinDrawableScale < 0 {
		return intermediateResult{}, false
	}
	return intermediateResult{result: Result{
		Kind:             ResultFeature,
		Name:             m.BestName(),
		Center:           f.Center,
		MinDrawableScale: f.MinDrawableScale,
		Cost:             m.Score(),
	}}, true
}

// addResult offers a candidate to the bounded ranker. Single-threaded
// phases call it directly; the parallel scan path locks around the offer
// instead.
func (q *Query) addResult(res intermediateResult) {
	q.results.offer(res, q.remaining)
}

// flush drains the ranker best-first into emit and decrements the
// remaining-result budget, floored at zero.
func (q *Query) flush(emit func(Result)) {
	drained := q.results.drain()
	for _, r := range drained {
		emit(r)
	}
	q.remaining -= len(drained)
	if q.remaining < 0 {
		q.remaining = 0
	}
}
