package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dreamware/redsearch/internal/docmodel"
)

// collectionsFile is the on-disk YAML shape collections load from — one
// entry per docmodel.CollectionConfig, e.g.:
//
//	collections:
//	  - name: cocktails
//	    id_field: id
//	    text_fields: [name, instructions]
//	    facet_fields: [category]
//	    number_fields: [abv]
//	    stop_words: [a, the, and, with]
type collectionsFile struct {
	Collections []collectionEntry `yaml:"collections"`
}

type collectionEntry struct {
	Name         string   `yaml:"name"`
	IDField      string   `yaml:"id_field"`
	TextFields   []string `yaml:"text_fields"`
	FacetFields  []string `yaml:"facet_fields"`
	NumberFields []string `yaml:"number_fields"`
	StopWords    []string `yaml:"stop_words"`
}

// LoadCollections reads path and decodes it into a set of
// docmodel.CollectionConfig, each carrying the default diacritic fold table
// — spec §3's per-collection schema is declared statically, not inferred
// from documents.
func LoadCollections(path string) ([]docmodel.CollectionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read collections file %s: %w", path, err)
	}

	var file collectionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config: parse collections file %s: %w", path, err)
	}

	cfgs := make([]docmodel.CollectionConfig, len(file.Collections))
	for i, e := range file.Collections {
		if e.Name == "" {
			return nil, fmt.Errorf("config: collection at index %d has no name", i)
		}
		cfgs[i] = docmodel.CollectionConfig{
			Name:         e.Name,
			IDField:      e.IDField,
			TextFields:   e.TextFields,
			FacetFields:  e.FacetFields,
			NumberFields: e.NumberFields,
			StopWords:    docmodel.NewStopWords(e.StopWords),
			Translit:     docmodel.DefaultTranslitTable(),
		}
	}
	return cfgs, nil
}
