package atlas

// ResultKind discriminates the variants of a search Result.
type ResultKind int

const (
	// ResultEnd is the terminal sentinel closing a result stream. The zero
	// Result value is the sentinel, so an emitted Result{} always denotes
	// end-of-stream.
	ResultEnd ResultKind = iota

	// ResultSuggestion is a category completion suggestion, not a place.
	ResultSuggestion

	// ResultLatLon is a coordinate parsed directly from the query text.
	ResultLatLon

	// ResultFeature is a place candidate from a spatial or trie index.
	ResultFeature
)

// Result is one element of the ranked output stream.
type Result struct {
	Kind ResultKind

	// Name is the display name: the best-matching name variant for feature
	// results, the matched synonym for suggestions, or the formatted
	// coordinate for lat/lon results.
	Name string

	// Suggestion is the completion text of a suggestion result, ready to
	// replace the user's input (synonym plus a trailing space).
	Suggestion string

	// Center is the feature center or the parsed coordinate.
	Center Point

	// MinDrawableScale carries the drawable-detail-level hint of feature
	// results so callers can pick a presentation zoom.
	MinDrawableScale int

	// Cost is the compound match cost. Lower is better.
	Cost uint32
}

// IsEndMarker reports whether the result is the terminal sentinel.
func (r Result) IsEndMarker() bool {
	return r.Kind == ResultEnd
}

// intermediateResult is a candidate plus its rank ordering, produced by
// matching and consumed by the bounded ranker.
type intermediateResult struct {
	result Result
}

// kindOrder positions suggestion results ahead of place results so that
// completions surface above places regardless of their packed penalty.
func kindOrder(k ResultKind) int {
	switch k {
	case ResultSuggestion:
		return 0
	case ResultLatLon:
		return 1
	default:
		return 2
	}
}

// betterThan reports whether a ranks strictly ahead of b: first by result
// kind, then by ascending cost.
func (a intermediateResult) betterThan(b intermediateResult) bool {
	ka, kb := kindOrder(a.result.Kind), kindOrder(b.result.Kind)
	if ka != kb {
		return ka < kb
	}
	return a.result.Cost < b.result.Cost
}
