package atlas

import "testing"

// TestKeywordMatch_Exact tests that full rune-for-rune equality costs zero
func TestKeywordMatch_Exact(t *testing.T) {
	cost := keywordMatch([]rune("cafe"), []rune("cafe"), maxKeywordScore())
	if cost != 0 {
		t.Errorf("expected cost 0, got %d", cost)
	}
}

// TestKeywordMatch_UnequalLength tests that any length mismatch always
// exceeds the ceiling
func TestKeywordMatch_UnequalLength(t *testing.T) {
	pairs := [][2]string{
		{"cafe", "caf"},
		{"caf", "cafe"},
		{"", "a"},
		{"longer", "short"},
	}
	for _, p := range pairs {
		cost := keywordMatch([]rune(p[0]), []rune(p[1]), maxKeywordScore())
		if cost <= maxKeywordScore() {
			t.Errorf("keywordMatch(%q, %q): expected > %d, got %d", p[0], p[1], maxKeywordScore(), cost)
		}
	}
}

// TestKeywordMatch_CharMismatch tests that a single differing rune is a
// full non-match
func TestKeywordMatch_CharMismatch(t *testing.T) {
	cost := keywordMatch([]rune("cafe"), []rune("cave"), maxKeywordScore())
	if cost != maxKeywordScore()+1 {
		t.Errorf("expected %d, got %d", maxKeywordScore()+1, cost)
	}
}

// TestPrefixMatch_StartsWith tests that prefix cost is zero iff the token
// starts with the prefix character-for-character
func TestPrefixMatch_StartsWith(t *testing.T) {
	cases := []struct {
		prefix, token string
		match         bool
	}{
		{"caf", "cafe", true},
		{"cafe", "cafe", true},
		{"", "cafe", true},
		{"caf", "central", false},
		{"cafes", "cafe", false},
		{"caz", "cafe", false},
	}
	for _, c := range cases {
		maxCost := maxPrefixScore(len(c.prefix))
		cost := prefixMatch([]rune(c.prefix), []rune(c.token), maxCost)
		if c.match && cost != 0 {
			t.Errorf("prefixMatch(%q, %q): expected 0, got %d", c.prefix, c.token, cost)
		}
		if !c.match && cost <= maxCost {
			t.Errorf("prefixMatch(%q, %q): expected > %d, got %d", c.prefix, c.token, maxCost, cost)
		}
	}
}

// TestMaxPrefixScore_Ceilings tests the size-dependent prefix ceilings
func TestMaxPrefixScore_Ceilings(t *testing.T) {
	cases := []struct {
		size int
		want uint32
	}{
		{0, 1}, {1, 1}, {2, 1},
		{3, 256}, {5, 256},
		{6, 512}, {20, 512},
	}
	for _, c := range cases {
		if got := maxPrefixScore(c.size); got != c.want {
			t.Errorf("maxPrefixScore(%d): expected %d, got %d", c.size, c.want, got)
		}
	}
}

// TestNameMatcher_BestNameAcrossVariants tests that the matcher records
// which name variant produced the best score
func TestNameMatcher_BestNameAcrossVariants(t *testing.T) {
	m := newNameMatcher([][]rune{[]rune("cafe")}, nil)
	m.ProcessName("Zentralkaffee")
	m.ProcessName("Cafe Central")

	if !m.Matched() {
		t.Fatal("expected a match")
	}
	if m.BestName() != "Cafe Central" {
		t.Errorf("expected best name %q, got %q", "Cafe Central", m.BestName())
	}
	if m.Score() != 0 {
		t.Errorf("expected score 0, got %d", m.Score())
	}
}

// TestNameMatcher_NoNames tests that a matcher with no processed names
// reports no match
func TestNameMatcher_NoNames(t *testing.T) {
	m := newNameMatcher([][]rune{[]rune("cafe")}, nil)
	if m.Matched() {
		t.Error("expected no match before any name is processed")
	}
}

// TestNameMatcher_UnmatchedKeywordRejects tests that one unmatched keyword
// pushes the score past the ceiling
func TestNameMatcher_UnmatchedKeywordRejects(t *testing.T) {
	m := newNameMatcher([][]rune{[]rune("cafe"), []rune("sushi")}, nil)
	m.ProcessName("Cafe Central")

	if m.Matched() {
		t.Errorf("expected no match, keyword score %d", m.KeywordScore())
	}
}

// TestNameMatcher_PrefixOnly tests prefix-only matching with no keywords
func TestNameMatcher_PrefixOnly(t *testing.T) {
	m := newNameMatcher(nil, []rune("caf"))
	m.ProcessName("Cafe Central")

	if !m.Matched() {
		t.Fatal("expected prefix match")
	}
	if m.PrefixScore() != 0 {
		t.Errorf("expected prefix score 0, got %d", m.PrefixScore())
	}
}

// TestNameMatcher_PrefixRejected tests that a non-matching prefix exceeds
// its ceiling
func TestNameMatcher_PrefixRejected(t *testing.T) {
	m := newNameMatcher(nil, []rune("xyz"))
	m.ProcessName("Cafe Central")

	if m.Matched() {
		t.Error("expected no match for prefix xyz")
	}
}

// TestNameMatcher_SkippedKeywords tests that removing a keyword position
// from the set turns a rejection into a match
func TestNameMatcher_SkippedKeywords(t *testing.T) {
	// Full keyword set: "cafe" never appears in the candidate's name.
	full := newNameMatcher([][]rune{[]rune("cafe"), []rune("central")}, nil)
	full.ProcessName("Central")
	if full.Matched() {
		t.Fatal("expected no match with the category word present")
	}

	// Skip-masked set: "cafe" was consumed as a category word.
	masked := newNameMatcher([][]rune{[]rune("central")}, nil)
	masked.ProcessName("Central")
	if !masked.Matched() {
		t.Fatal("expected a match once the category word is skipped")
	}
	if masked.Score() != 0 {
		t.Errorf("expected score 0, got %d", masked.Score())
	}
}
