package atlas

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// suggestPrefixLenBits is the width of the trigger-length field packed into
// a suggestion penalty. Match quality occupies the high bits so it
// dominates the ordering; trigger length breaks ties in favor of shorter
// triggers.
const suggestPrefixLenBits = 5

// CategorySynonym is one name under which a category can be typed.
type CategorySynonym struct {
	// Name is the synonym text, e.g. "restaurant".
	Name string `msgpack:"name"`

	// PrefixLengthToSuggest is the minimum number of typed runes required
	// before this synonym is offered as a completion suggestion. Must fit
	// in suggestPrefixLenBits, enforced at dictionary construction.
	PrefixLengthToSuggest int `msgpack:"min_prefix"`
}

// Category is one dictionary entry: a set of synonym names denoting a set
// of entity-type codes.
type Category struct {
	Synonyms []CategorySynonym `msgpack:"synonyms"`
	Types    []uint32          `msgpack:"types"`
}

// CategorySet is an in-memory CategorySource.
type CategorySet struct {
	categories []Category
}

// Compile-time check to ensure CategorySet implements CategorySource
var _ CategorySource = (*CategorySet)(nil)

// NewCategorySet returns an empty category dictionary.
func NewCategorySet() *CategorySet {
	return &CategorySet{}
}

// Add appends one category entry. Synonyms whose trigger length does not
// fit the packed penalty format are rejected, which makes the 5-bit
// invariant a property of construction rather than a runtime assertion.
func (cs *CategorySet) Add(c Category) error {
	for _, syn := range c.Synonyms {
		if syn.Name == "" {
			return fmt.Errorf("category synonym with empty name")
		}
		if syn.PrefixLengthToSuggest < 1 || syn.PrefixLengthToSuggest >= 1<<suggestPrefixLenBits {
			return fmt.Errorf("category synonym %q: trigger length %d out of range [1, %d]",
				syn.Name, syn.PrefixLengthToSuggest, 1<<suggestPrefixLenBits-1)
		}
	}
	cs.categories = append(cs.categories, c)
	return nil
}

// Categories returns the entries in insertion order.
func (cs *CategorySet) Categories() []Category {
	return cs.categories
}

// categoryFile is the on-disk msgpack layout of a category table.
type categoryFile struct {
	Categories []Category `msgpack:"categories"`
}

// LoadCategories reads a msgpack-encoded category table from path.
func LoadCategories(path string) (*CategorySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category table %s: %w", path, err)
	}
	var file categoryFile
	if err := msgpack.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode category table %s: %w", path, err)
	}
	cs := NewCategorySet()
	for _, c := range file.Categories {
		if err := cs.Add(c); err != nil {
			return nil, fmt.Errorf("invalid category table %s: %w", path, err)
		}
	}
	log.Debugf("loaded %d categories from %s", len(cs.categories), path)
	return cs, nil
}

// SaveCategories writes a msgpack-encoded category table to path.
func SaveCategories(cs *CategorySet, path string) error {
	data, err := msgpack.Marshal(categoryFile{Categories: cs.categories})
	if err != nil {
		return fmt.Errorf("failed to encode category table: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write category table %s: %w", path, err)
	}
	return nil
}

// matchCategories runs the category phase: with keywords present it marks
// skip-mask positions for every entity type a matched category denotes;
// with only a prefix it emits the best completion suggestion per category.
func (q *Query) matchCategories() {
	prefixRunes := q.prefix
	maxPfx := maxPrefixScore(len(prefixRunes))

	for _, category := range q.categories.Categories() {
		bestName := ""
		// One past the worst representable matching penalty, so only
		// synonyms at or below the ceiling can win.
		bestPenalty := ((maxPfx + 1) << suggestPrefixLenBits) - 1

		for _, syn := range category.Synonyms {
			if len(q.keywords) > 0 {
				tokens := splitTokens(normalizeText(syn.Name))
				n := len(tokens)
				if n == 0 || n > len(q.keywords) {
					continue
				}
				if equalTokens(tokens, q.keywords[:n]) {
					q.orSkipMask(category.Types, (1<<uint(n))-1)
				}
				if equalTokens(tokens, q.keywords[len(q.keywords)-n:]) {
					q.orSkipMask(category.Types, ((1<<uint(n))-1)<<uint(len(q.keywords)-n))
				}
			} else if len(prefixRunes) > 0 {
				if len(prefixRunes) < syn.PrefixLengthToSuggest {
					continue
				}
				cost := prefixMatch(prefixRunes, []rune(normalizeText(syn.Name)), maxPfx)
				penalty := (cost << suggestPrefixLenBits) | uint32(syn.PrefixLengthToSuggest)
				if penalty < bestPenalty {
					bestPenalty = penalty
					bestName = syn.Name
				}
			}
		}

		if bestName != "" {
			q.addResult(intermediateResult{result: Result{
				Kind:       ResultSuggestion,
				Name:       bestName,
				Suggestion: bestName + " ",
				Cost:       bestPenalty,
			}})
		}
	}
}

// equalTokens compares two normalized token sequences of equal length.
func equalTokens(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// orSkipMask ORs mask into the skip entry of every given entity type.
func (q *Query) orSkipMask(types []uint32, mask uint32) {
	for _, t := range types {
		q.skipForType[t] |= mask
	}
}
