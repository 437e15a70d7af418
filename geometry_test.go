package atlas

import "testing"

// TestScaleLevel_World tests that a world-sized viewport maps to level 0
func TestScaleLevel_World(t *testing.T) {
	world := Rect{MinLat: -90, MinLon: -180, MaxLat: 90, MaxLon: 180}
	if got := ScaleLevel(world); got != 0 {
		t.Errorf("expected level 0, got %d", got)
	}
}

// TestScaleLevel_City tests that a city-sized viewport is finer than the
// world overview threshold
func TestScaleLevel_City(t *testing.T) {
	city := Rect{MinLat: 48.15, MinLon: 16.30, MaxLat: 48.25, MaxLon: 16.40}
	level := ScaleLevel(city)
	if level <= UpperWorldScale {
		t.Errorf("expected level > %d, got %d", UpperWorldScale, level)
	}
	if level > UpperScale {
		t.Errorf("level %d exceeds UpperScale", level)
	}
}

// TestScaleLevel_Degenerate tests that a zero-span viewport clamps to the
// finest level
func TestScaleLevel_Degenerate(t *testing.T) {
	point := Rect{MinLat: 48.2, MinLon: 16.3, MaxLat: 48.2, MaxLon: 16.3}
	if got := ScaleLevel(point); got != UpperScale {
		t.Errorf("expected level %d, got %d", UpperScale, got)
	}
}

// TestRect_Contains tests containment with inclusive borders
func TestRect_Contains(t *testing.T) {
	r := Rect{MinLat: 0, MinLon: 0, MaxLat: 10, MaxLon: 10}

	if !r.Contains(Point{Lat: 5, Lon: 5}) {
		t.Error("expected interior point to be contained")
	}
	if !r.Contains(Point{Lat: 0, Lon: 10}) {
		t.Error("expected border point to be contained")
	}
	if r.Contains(Point{Lat: 11, Lon: 5}) {
		t.Error("expected exterior point to be outside")
	}
}

// TestRect_Intersects tests rectangle overlap
func TestRect_Intersects(t *testing.T) {
	a := Rect{MinLat: 0, MinLon: 0, MaxLat: 10, MaxLon: 10}
	b := Rect{MinLat: 5, MinLon: 5, MaxLat: 15, MaxLon: 15}
	c := Rect{MinLat: 20, MinLon: 20, MaxLat: 30, MaxLon: 30}

	if !a.Intersects(b) || !b.Intersects(a) {
		t.Error("expected a and b to intersect")
	}
	if a.Intersects(c) {
		t.Error("expected a and c to be disjoint")
	}
}
