package atlas

// Keyword and prefix matching is deliberately exact: a keyword matches a
// name token only by full equality, a prefix only by character-for-character
// containment. The cost ceilings exist to keep every comparison bounded and
// to give short prefixes a stricter bar, avoiding false positives on one or
// two typed characters.

// maxKeywordScore returns the cost ceiling for a full keyword match.
func maxKeywordScore() uint32 { return 512 }

// maxPrefixScore returns the cost ceiling for a prefix match of the given
// prefix length. Shorter prefixes are held to a stricter ceiling.
func maxPrefixScore(size int) uint32 {
	if size < 3 {
		return 1
	}
	if size < 6 {
		return 256
	}
	return 512
}

// keywordMatch scores keyword a against name token b. Cost is 0 only if the
// tokens are equal in length and every rune matches in order; any mismatch
// yields maxCost+1.
func keywordMatch(a, b []rune, maxCost uint32) uint32 {
	if len(a) != len(b) {
		return maxCost + 1
	}
	for i := range a {
		if a[i] != b[i] {
			return maxCost + 1
		}
	}
	return 0
}

// prefixMatch scores prefix p against name token t. Cost is 0 only if t
// starts with p; any mismatch yields maxCost+1.
func prefixMatch(p, t []rune, maxCost uint32) uint32 {
	if len(p) > len(t) {
		return maxCost + 1
	}
	for i := range p {
		if p[i] != t[i] {
			return maxCost + 1
		}
	}
	return 0
}

// nameMatcher scores a candidate's name variants against the query's
// keywords and prefix, tracking the best (lowest) combined score achieved
// and the name variant that produced it.
//
// A matcher is built per candidate with the skip-masked keyword set and is
// not safe for concurrent use; each scoring goroutine owns its own.
type nameMatcher struct {
	keywords [][]rune
	prefix   []rune

	maxKeyword uint32
	maxPrefix  uint32

	bestKeywordScore uint32
	bestPrefixScore  uint32
	bestName         string
}

// newNameMatcher creates a matcher for the given (already skip-masked)
// keywords and prefix. Before any name is processed both scores sit one
// past their ceilings, i.e. "no match".
func newNameMatcher(keywords [][]rune, prefix []rune) *nameMatcher {
	maxKw := maxKeywordScore()
	maxPfx := maxPrefixScore(len(prefix))
	return &nameMatcher{
		keywords:         keywords,
		prefix:           prefix,
		maxKeyword:       maxKw,
		maxPrefix:        maxPfx,
		bestKeywordScore: maxKw + 1,
		bestPrefixScore:  maxPfx + 1,
	}
}

// ProcessName scores one name variant. Each query keyword takes its best
// cost across the name's tokens, the prefix likewise; the variant with the
// lowest combined score seen so far is retained.
func (m *nameMatcher) ProcessName(name string) {
	tokens := splitTokens(normalizeText(name))
	if len(tokens) == 0 {
		return
	}
	nameTokens := make([][]rune, len(tokens))
	for i, t := range tokens {
		nameTokens[i] = []rune(t)
	}

	var keywordScore uint32
	for _, kw := range m.keywords {
		best := m.maxKeyword + 1
		for _, nt := range nameTokens {
			if c := keywordMatch(kw, nt, m.maxKeyword); c < best {
				best = c
				if c == 0 {
					break
				}
			}
		}
		keywordScore += best
	}

	var prefixScore uint32
	if len(m.prefix) > 0 {
		prefixScore = m.maxPrefix + 1
		for _, nt := range nameTokens {
			if c := prefixMatch(m.prefix, nt, m.maxPrefix); c < prefixScore {
				prefixScore = c
				if c == 0 {
					break
				}
			}
		}
	}

	if keywordScore+prefixScore < m.bestKeywordScore+m.bestPrefixScore {
		m.bestKeywordScore = keywordScore
		m.bestPrefixScore = prefixScore
		m.bestName = name
	}
}

// KeywordScore returns the best keyword score across processed names.
// Anything above maxKeywordScore() means no keyword match.
func (m *nameMatcher) KeywordScore() uint32 { return m.bestKeywordScore }

// PrefixScore returns the best prefix score across processed names.
// Anything above the prefix ceiling means no prefix match.
func (m *nameMatcher) PrefixScore() uint32 { return m.bestPrefixScore }

// BestName returns the name variant that produced the best score.
func (m *nameMatcher) BestName() string { return m.bestName }

// Matched reports whether both scores sit at or below their ceilings.
func (m *nameMatcher) Matched() bool {
	return m.bestKeywordScore <= m.maxKeyword && m.bestPrefixScore <= m.maxPrefix
}

// Score returns the compound match cost of the best variant.
func (m *nameMatcher) Score() uint32 {
	return m.bestKeywordScore + m.bestPrefixScore
}
