package atlas

import "math"

// Scale levels follow the usual slippy-map convention: level 0 shows the
// whole world, each subsequent level halves the visible span.
const (
	// UpperScale is the finest detail level any index stores.
	UpperScale = 17

	// UpperWorldScale is the coarsest level at which per-feature detail is
	// meaningful. Viewports at or above this level skip the local feature
	// scan entirely.
	UpperWorldScale = 9
)

// Point is a geographic coordinate in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Rect is a geographic bounding rectangle in degrees.
type Rect struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Width returns the longitudinal span of the rectangle in degrees.
func (r Rect) Width() float64 {
	return r.MaxLon - r.MinLon
}

// Height returns the latitudinal span of the rectangle in degrees.
func (r Rect) Height() float64 {
	return r.MaxLat - r.MinLat
}

// Contains reports whether the point lies inside the rectangle (borders
// inclusive).
func (r Rect) Contains(p Point) bool {
	return p.Lat >= r.MinLat && p.Lat <= r.MaxLat &&
		p.Lon >= r.MinLon && p.Lon <= r.MaxLon
}

// Intersects reports whether the two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.MinLat <= o.MaxLat && o.MinLat <= r.MaxLat &&
		r.MinLon <= o.MaxLon && o.MinLon <= r.MaxLon
}

// ScaleLevel estimates the detail level of a viewport from its angular
// span: a world-sized viewport maps to 0, halving the span increases the
// level by one. The result is clamped to [0, UpperScale].
func ScaleLevel(r Rect) int {
	span := math.Max(r.Width(), r.Height())
	if span <= 0 {
		return UpperScale
	}
	level := int(math.Floor(math.Log2(360.0 / span)))
	if level < 0 {
		return 0
	}
	if level > UpperScale {
		return UpperScale
	}
	return level
}
