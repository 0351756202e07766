package docmodel

// TranslitTable folds diacritic runes to their plain ASCII equivalent, used by
// the tokenizer's lowercase-and-fold step. The zero value is the identity fold.
type TranslitTable map[rune]rune

// DefaultTranslitTable folds the Spanish/Portuguese/French diacritic set the
// original Python implementation's str.maketrans table carried
// (common.py: "áéíóúàèìòùñç" -> "aeiouaeiounc").
func DefaultTranslitTable() TranslitTable {
	const from = "áéíóúàèìòùñç"
	const to = "aeiouaeiounc"
	t := make(TranslitTable, len(from))
	fr := []rune(from)
	tr := []rune(to)
	for i := range fr {
		t[fr[i]] = tr[i]
	}
	return t
}

// Fold applies the table to a single rune, returning it unchanged if there is
// no entry.
func (t TranslitTable) Fold(r rune) rune {
	if folded, ok := t[r]; ok {
		return folded
	}
	return r
}

// CollectionConfig is the immutable description of a collection's schema:
// which field holds the identifier, which fields are free text, which are
// categorical facets, which are numeric, the stop-word set excluded from text
// indexing, and the diacritic fold table. See spec §3.
//
// Invariant (unchecked, per spec): a field name should not appear in more
// than one of TextFields/FacetFields/NumberFields.
type CollectionConfig struct {
	Name        string
	IDField     string
	TextFields  []string
	FacetFields []string
	NumberFields []string
	StopWords   map[string]struct{}
	Translit    TranslitTable
}

// IsFacetField reports whether fld is declared as a facet field.
func (c CollectionConfig) IsFacetField(fld string) bool {
	for _, f := range c.FacetFields {
		if f == fld {
			return true
		}
	}
	return false
}

// NewStopWords builds a stop-word set from a slice, matching the Python
// original's `set(stop_words)`.
func NewStopWords(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
