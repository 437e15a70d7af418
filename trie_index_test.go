package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameTrieIndex_AddAndEnumerate(t *testing.T) {
	idx := NewNameTrieIndex()
	f := Feature{
		ID:    1,
		Types: []uint32{7},
		Names: []FeatureName{
			{Lang: "en", Text: "Cafe Central"},
			{Lang: "de", Text: "Café Zentral"},
		},
		Center: Point{Lat: 48.21, Lon: 16.36},
	}
	idx.Add(f)

	require.Equal(t, 1, idx.Len())

	seen := make(map[string]uint32)
	idx.ForEachNamed(func(name string, got Feature) bool {
		seen[name] = got.ID
		return true
	})

	require.Len(t, seen, 2, "every name variant must be enumerable")
	assert.Equal(t, uint32(1), seen["Cafe Central"])
	assert.Equal(t, uint32(1), seen["Café Zentral"])
}

func TestNameTrieIndex_SharedName(t *testing.T) {
	idx := NewNameTrieIndex()
	idx.Add(cafeFeature(1, "Cafe Central", Point{Lat: 48.21, Lon: 16.36}))
	idx.Add(cafeFeature(2, "Cafe Central", Point{Lat: 50.00, Lon: 20.00}))

	ids := make(map[uint32]bool)
	idx.ForEachNamed(func(name string, f Feature) bool {
		ids[f.ID] = true
		return true
	})

	assert.Len(t, ids, 2, "features sharing a name must both be enumerated")
}

func TestNameTrieIndex_EarlyStop(t *testing.T) {
	idx := NewNameTrieIndex()
	for i := uint32(1); i <= 10; i++ {
		idx.Add(cafeFeature(i, "Cafe", Point{Lat: 48.21, Lon: 16.36}))
	}

	count := 0
	idx.ForEachNamed(func(string, Feature) bool {
		count++
		return count < 4
	})
	assert.Equal(t, 4, count, "traversal must stop when the callback returns false")
}

func TestNameTrieIndex_EmptyNameSkipped(t *testing.T) {
	idx := NewNameTrieIndex()
	idx.Add(Feature{ID: 1, Names: []FeatureName{{Lang: "en", Text: "  "}}})

	count := 0
	idx.ForEachNamed(func(string, Feature) bool {
		count++
		return true
	})
	assert.Equal(t, 0, count)
}
