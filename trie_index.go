// Package atlas implements an in-memory prefix-tree name index.
//
// NameTrieIndex is the reference TrieSource implementation: a patricia trie
// keyed by normalized feature name, each key holding the entities indexed
// under that name. Like GridFeatureIndex it stands in for the production
// on-disk trie; Add must not run concurrently with queries.
package atlas

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Compile-time check to ensure NameTrieIndex implements TrieSource
var _ TrieSource = (*NameTrieIndex)(nil)

// errStopVisit aborts a trie traversal early; it never escapes this file.
var errStopVisit = errors.New("stop trie visit")

// trieEntry pairs a display name with the feature it denotes.
type trieEntry struct {
	name      string
	featureID uint32
}

// NameTrieIndex is an in-memory TrieSource backed by a patricia trie.
type NameTrieIndex struct {
	trie     *patricia.Trie
	features map[uint32]Feature
}

// NewNameTrieIndex creates an empty name index.
func NewNameTrieIndex() *NameTrieIndex {
	return &NameTrieIndex{
		trie:     patricia.NewTrie(),
		features: make(map[uint32]Feature),
	}
}

// Add indexes every name variant of the feature under its normalized form.
func (t *NameTrieIndex) Add(f Feature) {
	t.features[f.ID] = f
	for _, name := range f.Names {
		key := normalizeText(name.Text)
		if !hasAlnum(key) {
			continue
		}
		entry := trieEntry{name: name.Text, featureID: f.ID}
		if item := t.trie.Get(patricia.Prefix(key)); item != nil {
			t.trie.Set(patricia.Prefix(key), append(item.([]trieEntry), entry))
			continue
		}
		t.trie.Insert(patricia.Prefix(key), []trieEntry{entry})
	}
}

// Len returns the number of indexed features.
func (t *NameTrieIndex) Len() int {
	return len(t.features)
}

// ForEachNamed walks the whole trie, invoking fn once per (name, feature)
// pair. Returning false from fn stops the traversal.
func (t *NameTrieIndex) ForEachNamed(fn func(name string, f Feature) bool) {
	err := t.trie.Visit(func(prefix patricia.Prefix, item patricia.Item) error {
		for _, entry := range item.([]trieEntry) {
			if !fn(entry.name, t.features[entry.featureID]) {
				return errStopVisit
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopVisit) {
		log.Errorf("error visiting name trie: %v", err)
	}
}
