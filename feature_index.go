// Package atlas implements an in-memory grid spatial index.
//
// WHAT IS GRIDFEATUREINDEX?
// GridFeatureIndex is the reference FeatureSource implementation: a uniform
// lat/lon grid where each cell keeps a roaring bitmap of the feature IDs
// whose center falls inside it. A viewport query unions the bitmaps of the
// intersecting cells and filters by exact containment and drawable scale.
//
// The production system serves features from an on-disk index; this
// implementation exists so the query pipeline is usable and testable end to
// end without one. It is read-only after loading from the engine's point of
// view: Add must not run concurrently with queries.
package atlas

import (
	"math"

	"github.com/RoaringBitmap/roaring"
	"github.com/x448/float16"
)

// Compile-time check to ensure GridFeatureIndex implements FeatureSource
var _ FeatureSource = (*GridFeatureIndex)(nil)

// gridCell addresses one cell of the uniform grid.
type gridCell struct {
	x int32
	y int32
}

// GridFeatureIndex is an in-memory FeatureSource backed by a uniform grid
// of roaring bitmaps.
type GridFeatureIndex struct {
	cellSize float64
	features map[uint32]Feature
	// ranks keeps the static rank out of the Feature map as half floats;
	// rank precision past three significant digits carries no signal.
	ranks map[uint32]float16.Float16
	cells map[gridCell]*roaring.Bitmap
}

// NewGridFeatureIndex creates an empty index with the given cell size in
// degrees. Typical values are 0.01–0.1 depending on feature density.
func NewGridFeatureIndex(cellSize float64) *GridFeatureIndex {
	if cellSize <= 0 {
		cellSize = 0.01
	}
	return &GridFeatureIndex{
		cellSize: cellSize,
		features: make(map[uint32]Feature),
		ranks:    make(map[uint32]float16.Float16),
		cells:    make(map[gridCell]*roaring.Bitmap),
	}
}

// Add inserts or replaces a feature.
func (g *GridFeatureIndex) Add(f Feature) {
	if old, exists := g.features[f.ID]; exists {
		cell := g.cellOf(old.Center)
		if bm := g.cells[cell]; bm != nil {
			bm.Remove(f.ID)
		}
	}

	g.ranks[f.ID] = float16.Fromfloat32(f.Rank)
	f.Rank = 0
	g.features[f.ID] = f

	cell := g.cellOf(f.Center)
	bm := g.cells[cell]
	if bm == nil {
		bm = roaring.New()
		g.cells[cell] = bm
	}
	bm.Add(f.ID)
}

// Len returns the number of indexed features.
func (g *GridFeatureIndex) Len() int {
	return len(g.features)
}

// ForEachInViewport invokes fn once per feature whose center lies inside
// rect and whose text is drawable at or below maxScale. Returning false
// from fn stops the enumeration.
func (g *GridFeatureIndex) ForEachInViewport(rect Rect, maxScale int, fn func(Feature) bool) {
	minCell := g.cellOf(Point{Lat: rect.MinLat, Lon: rect.MinLon})
	maxCell := g.cellOf(Point{Lat: rect.MaxLat, Lon: rect.MaxLon})

	// A huge viewport over a fine grid touches more cells than there are
	// populated ones; walking the cell map directly is cheaper then.
	cellCount := int64(maxCell.x-minCell.x+1) * int64(maxCell.y-minCell.y+1)
	if cellCount > int64(len(g.cells)) {
		for cell, bm := range g.cells {
			if cell.x < minCell.x || cell.x > maxCell.x || cell.y < minCell.y || cell.y > maxCell.y {
				continue
			}
			if !g.visitCell(bm, rect, maxScale, fn) {
				return
			}
		}
		return
	}

	for y := minCell.y; y <= maxCell.y; y++ {
		for x := minCell.x; x <= maxCell.x; x++ {
			bm := g.cells[gridCell{x: x, y: y}]
			if bm == nil {
				continue
			}
			if !g.visitCell(bm, rect, maxScale, fn) {
				return
			}
		}
	}
}

// visitCell enumerates one cell's features, returning false if fn stopped
// the enumeration.
func (g *GridFeatureIndex) visitCell(bm *roaring.Bitmap, rect Rect, maxScale int, fn func(Feature) bool) bool {
	for iter := bm.Iterator(); iter.HasNext(); {
		f := g.features[iter.Next()]
		if !rect.Contains(f.Center) {
			continue
		}
		if f.MinDrawableScale > maxScale {
			continue
		}
		f.Rank = g.ranks[f.ID].Float32()
		if !fn(f) {
			return false
		}
	}
	return true
}

func (g *GridFeatureIndex) cellOf(p Point) gridCell {
	return gridCell{
		x: int32(math.Floor(p.Lon / g.cellSize)),
		y: int32(math.Floor(p.Lat / g.cellSize)),
	}
}
