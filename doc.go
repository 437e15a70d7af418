/*
Package atlas implements the query-time matching and ranking core of an
offline geospatial search engine.

Given free-text input and a geographic viewport, atlas produces a ranked
stream of place candidates drawn from a spatial feature index, a
category/synonym dictionary, and a prefix-tree index of named entities.
The heavy lifting — index construction, on-disk formats, routing — lives
outside this package; atlas consumes those collaborators through narrow
iteration contracts and focuses on tokenization, exact keyword and prefix
cost scoring, bounded best-K ranking, and cooperative cancellation.

# Query Pipeline

A search runs as a strict sequence of phases, each gated on a cancellation
flag:

 1. Coordinate phase: the raw text is tried as a latitude/longitude pair;
    on success one coordinate result is synthesized directly.
 2. Category phase: query tokens are matched against the synonym
    dictionary, producing completion suggestions and per-entity-type skip
    masks that stop category words from being re-scored as literal name
    tokens.
 3. Local feature phase: features intersecting the viewport are enumerated
    from the spatial index and scored, with a cancellation check per
    feature. Ranked results are flushed to the caller.
 4. Trie phase: named entities from the world-level trie index are scored
    the same way.
 5. Final flush, terminated by exactly one empty sentinel Result.

# Quick Start

	features := atlas.NewGridFeatureIndex(0.01)
	features.Add(atlas.Feature{
	    ID:     1,
	    Types:  []uint32{amenityCafe},
	    Names:  []atlas.FeatureName{{Lang: "en", Text: "Cafe Central"}},
	    Center: atlas.Point{Lat: 48.21, Lon: 16.36},
	})

	engine := atlas.NewEngine(features, nil, categories)
	query := engine.NewSearch("caf", viewport).WithLimit(10)
	query.Run(func(r atlas.Result) {
	    if r.IsEndMarker() {
	        return
	    }
	    fmt.Println(r.Name, r.Cost)
	})

# Cancellation

Cancellation is cooperative and level-triggered. Calling Cancel from any
goroutine guarantees the pipeline observes the flag at the next checkpoint
(between phases, and between successive candidates within the scan phases)
and stops without emitting further results. Results flushed before
cancellation remain delivered; the terminal sentinel is only guaranteed for
queries that run to completion.

# Scoring

Costs are lower-is-better integers with hard ceilings: 512 for a full
keyword match and a prefix-length-dependent ceiling (1, 256 or 512) for
prefix matches. A cost of ceiling+1 marks "no match". Matching is exact
token equality and exact prefix containment — there is no partial-credit
edit distance — which keeps ranking comparisons cheap and total.
*/
package atlas
