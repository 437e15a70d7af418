package atlas

// FeatureName is one localized or alternate name of a feature.
type FeatureName struct {
	Lang string
	Text string
}

// Feature is a place candidate as materialized by an index collaborator.
//
// Features are value types: the engine never mutates them and never retains
// them past the query that scored them.
type Feature struct {
	// ID uniquely identifies the feature within its index.
	ID uint32

	// Types holds the entity-type codes assigned to the feature. Type codes
	// key the per-query skip-mask table built by category matching.
	Types []uint32

	// Names holds the localized and alternate names, in index order. The
	// matcher scores every variant and reports the best one for display.
	Names []FeatureName

	// Center is the representative coordinate used for display and for
	// viewport containment tests.
	Center Point

	// MinDrawableScale is the coarsest scale level at which the feature's
	// text is drawn. Negative means the text is never drawn; such features
	// contribute no results.
	MinDrawableScale int

	// Rank is a static popularity rank assigned at index build time.
	Rank float32
}

// FeatureSource enumerates features from a spatial index.
//
// Implementations are read-only during a query and may be shared across
// concurrent queries. Enumeration order is unspecified.
type FeatureSource interface {
	// ForEachInViewport invokes fn once per feature whose geometry
	// intersects rect and whose detail is at or below maxScale. Returning
	// false from fn stops the enumeration; the driver must observe the
	// return value after every feature.
	ForEachInViewport(rect Rect, maxScale int, fn func(Feature) bool)
}

// TrieSource enumerates named entities from a world-level prefix-tree
// index, covering areas outside the locally detailed spatial index.
//
// Enumeration order is unspecified. Returning false from fn stops the
// traversal.
type TrieSource interface {
	ForEachNamed(fn func(name string, f Feature) bool)
}

// CategorySource exposes the category/synonym dictionary as an ordered
// sequence of entries, stable for the lifetime of a query.
type CategorySource interface {
	Categories() []Category
}
