package collection

import (
	"context"
	"testing"

	"github.com/dreamware/redsearch/internal/docmodel"
	"github.com/dreamware/redsearch/internal/searchexpr"
	"github.com/dreamware/redsearch/internal/store"
)

func testCollection() *Collection {
	cfg := docmodel.CollectionConfig{
		Name:        "cocktails",
		IDField:     "id",
		TextFields:  []string{"name"},
		FacetFields: []string{"category"},
		Translit:    docmodel.DefaultTranslitTable(),
	}
	return Configure(cfg, store.NewMemoryStore())
}

func TestIndexDocumentAndGetAllDocs(t *testing.T) {
	ctx := context.Background()
	col := testCollection()

	if err := col.IndexDocument(ctx, docmodel.Document{
		"id": "1", "name": "Mojito", "category": "rum cocktail",
	}); err != nil {
		t.Fatalf("IndexDocument: %v", err)
	}

	docs, err := col.GetAllDocs(ctx)
	if err != nil {
		t.Fatalf("GetAllDocs: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("GetAllDocs = %v, want 1 document", docs)
	}
	if _, ok := docs["1"]; !ok {
		t.Errorf("expected document id 1 present, got %v", docs)
	}
}

func TestSearchByTokenAndUnlinksScratchKeys(t *testing.T) {
	ctx := context.Background()
	col := testCollection()

	col.IndexDocument(ctx, docmodel.Document{"id": "1", "name": "Dark and Stormy", "category": "rum cocktail"})
	col.IndexDocument(ctx, docmodel.Document{"id": "2", "name": "Mojito", "category": "rum cocktail"})

	ids, err := col.Search(ctx, searchexpr.And{Children: []searchexpr.Expr{
		searchexpr.ContainsToken{Token: "stormy"},
		searchexpr.FacetEq{Field: "category", Value: docmodel.String("rum cocktail")},
	}})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(ids) != 1 || ids[0] != "1" {
		t.Errorf("Search = %v, want [1]", ids)
	}

	leftover, err := col.store.Keys(ctx, []byte("t/*"))
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(leftover) != 0 {
		t.Errorf("expected Search to unlink its scratch keys, found %v", leftover)
	}
}

func TestSearchExpandsRootContainsApproxAndSortsIds(t *testing.T) {
	ctx := context.Background()
	col := testCollection()

	col.IndexDocument(ctx, docmodel.Document{"id": "9", "name": "Mojito", "category": "rum cocktail"})
	col.IndexDocument(ctx, docmodel.Document{"id": "2", "name": "Mojito Especial", "category": "rum cocktail"})

	ids, err := col.Search(ctx, searchexpr.ContainsApprox{Word: "mojito", MaxTypos: 0})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(ids) != 2 || ids[0] != "2" || ids[1] != "9" {
		t.Errorf("Search = %v, want sorted [2 9]", ids)
	}
}

func TestSearchRootContainsApproxNoMatchesReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	col := testCollection()

	ids, err := col.Search(ctx, searchexpr.ContainsApprox{Word: "nonexistent", MaxTypos: 0})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Search = %v, want empty", ids)
	}
}

func TestSearchUnsupportedFacetFieldSurfacesError(t *testing.T) {
	ctx := context.Background()
	col := testCollection()

	_, err := col.Search(ctx, searchexpr.FacetEq{Field: "name", Value: docmodel.String("x")})
	if err == nil {
		t.Fatal("expected an error searching a non-facet field")
	}
}
