package typofuzz

import "testing"

func TestPatternsZeroEditsIsWordAlone(t *testing.T) {
	got := Patterns("cobre", 0)
	want := map[string]struct{}{"cobre": {}}
	if !mapsEqual(got, want) {
		t.Errorf("Patterns(w, 0) = %v, want %v", got, want)
	}
}

func TestPatternsOneEditIncludesInsertionsAndSubstitutions(t *testing.T) {
	got := Patterns("ab", 1)

	for _, want := range []string{
		// insertions, p in [0,2]
		"?ab", "a?b", "ab?",
		// substitutions, p in [0,2)
		"?b", "a?",
	} {
		if _, ok := got[want]; !ok {
			t.Errorf("Patterns(\"ab\", 1) missing %q, got %v", want, got)
		}
	}
	if _, ok := got["ab"]; !ok {
		t.Errorf("Patterns(\"ab\", 1) should still include the original word")
	}
}

func TestPatternsMonotonicInK(t *testing.T) {
	p0 := Patterns("vodka", 0)
	p1 := Patterns("vodka", 1)
	p2 := Patterns("vodka", 2)

	if !isSubset(p0, p1) {
		t.Errorf("Patterns(w,0) not a subset of Patterns(w,1)")
	}
	if !isSubset(p1, p2) {
		t.Errorf("Patterns(w,1) not a subset of Patterns(w,2)")
	}
	if len(p2) <= len(p1) {
		t.Errorf("expected Patterns(w,2) to be strictly larger than Patterns(w,1), got %d and %d", len(p2), len(p1))
	}
}

func TestPatternsFiniteness(t *testing.T) {
	got := Patterns("alcohol", 2)
	if len(got) == 0 {
		t.Fatal("expected a non-empty, finite pattern set")
	}
	for p := range got {
		if len(p) < len("alcohol") || len(p) > len("alcohol")+2 {
			t.Errorf("pattern %q has length outside [L, L+k]", p)
		}
	}
}

func TestPatternsEmptyWord(t *testing.T) {
	got := Patterns("", 1)
	want := map[string]struct{}{"": {}, "?": {}}
	if !mapsEqual(got, want) {
		t.Errorf("Patterns(\"\", 1) = %v, want %v", got, want)
	}
}

func mapsEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func isSubset(small, big map[string]struct{}) bool {
	for k := range small {
		if _, ok := big[k]; !ok {
			return false
		}
	}
	return true
}
