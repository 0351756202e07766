package searchexpr

import (
	"context"
	"errors"
	"testing"

	"github.com/dreamware/redsearch/internal/docmodel"
	"github.com/dreamware/redsearch/internal/encode"
	"github.com/dreamware/redsearch/internal/searchctx"
	"github.com/dreamware/redsearch/internal/store"
)

func testConfig() docmodel.CollectionConfig {
	return docmodel.CollectionConfig{
		Name:        "cocktails",
		FacetFields: []string{"category"},
	}
}

func TestFacetEqRejectsNonFacetField(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := searchctx.New(testConfig(), s)

	_, err := FacetEq{Field: "name", Value: docmodel.String("x")}.Eval(ctx)
	var unsupported *UnsupportedError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected *UnsupportedError, got %v", err)
	}
}

func TestFacetEqReturnsFacetKey(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := searchctx.New(testConfig(), s)

	res, err := FacetEq{Field: "category", Value: docmodel.String("rum")}.Eval(ctx)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	want := encode.Facet("cocktails", "category", docmodel.String("rum"))
	if string(res.Key) != string(want) {
		t.Errorf("Eval().Key = %q, want %q", res.Key, want)
	}
}

func TestContainsTokenReturnsTokenKey(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := searchctx.New(testConfig(), s)

	res, err := ContainsToken{Token: "rum"}.Eval(ctx)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	want := encode.Token("cocktails", "rum")
	if string(res.Key) != string(want) {
		t.Errorf("Eval().Key = %q, want %q", res.Key, want)
	}
}

func TestAndIntersectsPostingSets(t *testing.T) {
	bg := context.Background()
	s := store.NewMemoryStore()
	ctx := searchctx.New(testConfig(), s)

	s.SetAdd(bg, encode.Token("cocktails", "rum"), []byte("1"), []byte("2"))
	s.SetAdd(bg, encode.Token("cocktails", "lime"), []byte("2"), []byte("3"))

	res, err := And{Children: []Expr{
		ContainsToken{Token: "rum"},
		ContainsToken{Token: "lime"},
	}}.Eval(ctx)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}

	members, _ := s.SetMembers(bg, res.Key)
	if len(members) != 1 || string(members[0]) != "2" {
		t.Errorf("And result members = %v, want [2]", members)
	}
}

func TestOrUnionsPostingSets(t *testing.T) {
	bg := context.Background()
	s := store.NewMemoryStore()
	ctx := searchctx.New(testConfig(), s)

	s.SetAdd(bg, encode.Token("cocktails", "rum"), []byte("1"))
	s.SetAdd(bg, encode.Token("cocktails", "lime"), []byte("2"))

	res, err := Or{Children: []Expr{
		ContainsToken{Token: "rum"},
		ContainsToken{Token: "lime"},
	}}.Eval(ctx)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}

	members, _ := s.SetMembers(bg, res.Key)
	if len(members) != 2 {
		t.Errorf("Or result members = %v, want 2 members", members)
	}
}

func TestAndSingleChildReturnsItsKeyUnchanged(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := searchctx.New(testConfig(), s)

	res, err := And{Children: []Expr{ContainsToken{Token: "rum"}}}.Eval(ctx)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	want := encode.Token("cocktails", "rum")
	if string(res.Key) != string(want) {
		t.Errorf("single-child And = %q, want %q (unchanged)", res.Key, want)
	}
	if len(ctx.ScratchKeys()) != 0 {
		t.Errorf("single-child And should not allocate a scratch key, got %v", ctx.ScratchKeys())
	}
}

func TestContainsTokensIsAndOfContainsToken(t *testing.T) {
	bg := context.Background()
	s := store.NewMemoryStore()
	ctx := searchctx.New(testConfig(), s)

	s.SetAdd(bg, encode.Token("cocktails", "rum"), []byte("1"), []byte("2"))
	s.SetAdd(bg, encode.Token("cocktails", "lime"), []byte("2"))

	res, err := ContainsTokens{Tokens: []string{"rum", "lime"}}.Eval(ctx)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	members, _ := s.SetMembers(bg, res.Key)
	if len(members) != 1 || string(members[0]) != "2" {
		t.Errorf("ContainsTokens result = %v, want [2]", members)
	}
}

func TestContainsApproxRejectsShortWord(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := searchctx.New(testConfig(), s)

	_, err := ContainsApprox{Word: "ab", MaxTypos: 1}.Eval(ctx)
	var unsupported *UnsupportedError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected *UnsupportedError for a <3-char word, got %v", err)
	}
}

func TestContainsApproxFindsExactTokenAtZeroTypos(t *testing.T) {
	bg := context.Background()
	s := store.NewMemoryStore()
	ctx := searchctx.New(testConfig(), s)

	// simulate indexing having populated cobre's shards
	s.SetAdd(bg, encode.StartShard("cocktails", "co"), []byte("cobre"))
	s.SetAdd(bg, encode.EndShard("cocktails", "re"), []byte("cobre"))

	res, err := ContainsApprox{Word: "cobre", MaxTypos: 0}.Eval(ctx)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	found := false
	for _, tok := range res.Tokens {
		if tok == "cobre" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected ContainsApprox to find %q among %v", "cobre", res.Tokens)
	}
}

func TestContainsApproxExpandBuildsOrOfTokens(t *testing.T) {
	bg := context.Background()
	s := store.NewMemoryStore()
	ctx := searchctx.New(testConfig(), s)

	s.SetAdd(bg, encode.StartShard("cocktails", "co"), []byte("cobre"))
	s.SetAdd(bg, encode.Token("cocktails", "cobre"), []byte("1"))

	expanded, err := ContainsApprox{Word: "cobre", MaxTypos: 0}.Expand(ctx)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if expanded == nil {
		t.Fatal("expected a non-nil expansion")
	}

	res, err := expanded.Eval(ctx)
	if err != nil {
		t.Fatalf("Eval(expanded): %v", err)
	}
	members, _ := s.SetMembers(bg, res.Key)
	if len(members) != 1 || string(members[0]) != "1" {
		t.Errorf("expanded Or result = %v, want [1]", members)
	}
}

func TestContainsApproxRejectsAmbiguousPattern(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := searchctx.New(testConfig(), s)

	// "abc" at MaxTypos=2 reaches the pattern "??c" (both leading runes
	// wildcarded), which has no position-pair with two literal anchors in
	// any of SelectShard's six alternatives.
	_, err := ContainsApprox{Word: "abc", MaxTypos: 2}.Eval(ctx)
	var unsupported *UnsupportedError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected *UnsupportedError for an unanchorable pattern, got %v", err)
	}
}

func TestContainsApproxAsDirectAndChildIsUnsupported(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := searchctx.New(testConfig(), s)

	_, err := And{Children: []Expr{
		ContainsApprox{Word: "cobre", MaxTypos: 0},
		ContainsToken{Token: "rum"},
	}}.Eval(ctx)
	var unsupported *UnsupportedError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected *UnsupportedError when ContainsApprox is used directly as a boolean operand, got %v", err)
	}
}
