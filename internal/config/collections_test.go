package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCollectionsFile(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "collections.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadCollectionsDecodesSchema(t *testing.T) {
	path := writeCollectionsFile(t, `
collections:
  - name: cocktails
    id_field: id
    text_fields: [name, instructions]
    facet_fields: [category]
    number_fields: [abv]
    stop_words: [a, the, and]
`)

	cfgs, err := LoadCollections(path)
	if err != nil {
		t.Fatalf("LoadCollections: %v", err)
	}
	if len(cfgs) != 1 {
		t.Fatalf("got %d collections, want 1", len(cfgs))
	}
	c := cfgs[0]
	if c.Name != "cocktails" || c.IDField != "id" {
		t.Errorf("Name/IDField = %q/%q, want cocktails/id", c.Name, c.IDField)
	}
	if len(c.TextFields) != 2 || len(c.FacetFields) != 1 || len(c.NumberFields) != 1 {
		t.Errorf("field counts = %+v, want 2/1/1", c)
	}
	if _, ok := c.StopWords["the"]; !ok {
		t.Errorf("expected %q in stop words, got %v", "the", c.StopWords)
	}
	if c.Translit == nil {
		t.Error("expected a default translit table to be attached")
	}
}

func TestLoadCollectionsRejectsMissingName(t *testing.T) {
	path := writeCollectionsFile(t, "collections:\n  - id_field: id\n")
	if _, err := LoadCollections(path); err == nil {
		t.Fatal("expected an error for a collection with no name")
	}
}

func TestLoadCollectionsMissingFileErrors(t *testing.T) {
	if _, err := LoadCollections("/nonexistent/collections.yaml"); err == nil {
		t.Fatal("expected an error for a missing collections file")
	}
}
