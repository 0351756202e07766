// Package tokenize implements the text-field tokenization rules of spec §4.B:
// lowercase, diacritic fold, split on non-alphanumerics, drop empties and
// stop words.
package tokenize

import (
	"strings"

	"github.com/dreamware/redsearch/internal/docmodel"
)

func isAlphaNum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// Tokenize produces an ordered list of tokens from text, duplicates
// preserved, following the six steps of spec §4.B exactly:
//  1. lowercase
//  2. translit fold
//  3. replace every character outside [a-z0-9] with a space
//  4. split on the literal space character
//  5. drop empty strings
//  6. drop tokens present in stopWords
func Tokenize(text string, translit docmodel.TranslitTable, stopWords map[string]struct{}) []string {
	lowered := strings.ToLower(text)

	folded := make([]rune, 0, len(lowered))
	for _, r := range lowered {
		folded = append(folded, translit.Fold(r))
	}

	cleaned := make([]rune, len(folded))
	for i, r := range folded {
		if isAlphaNum(r) {
			cleaned[i] = r
		} else {
			cleaned[i] = ' '
		}
	}

	fields := strings.Split(string(cleaned), " ")

	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if tok == "" {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
