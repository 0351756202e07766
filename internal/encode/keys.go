// Package encode implements the pure key-building functions of the indexing
// schema (spec §4.A): total functions mapping (collection, role, params) to
// the byte-string key the external store addresses. None of these touch the
// store; callers must never depend on store-side case folding since the
// encoder preserves case exactly as given.
package encode

import (
	"fmt"
	"strings"

	"github.com/dreamware/redsearch/internal/docmodel"
)

// escapeSlash percent-encodes '/' and '%' in a facet value before it is
// spliced into a key, so a value containing '/' cannot be mistaken for a
// key-namespace boundary. This is the percent-encoding mitigation spec §9
// names as option (a) for the open question of '/' in facet values.
func escapeSlash(s string) string {
	if !strings.ContainsAny(s, "/%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '/':
			b.WriteString("%2F")
		case '%':
			b.WriteString("%25")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Docs returns the key of the hash holding JSON-serialized document bodies:
// "{collection}/docs".
func Docs(collection string) []byte {
	return []byte(collection + "/docs")
}

// Vocabulary returns the key of the set of every token ever emitted by
// tokenization: "{collection}/text_tokens".
func Vocabulary(collection string) []byte {
	return []byte(collection + "/text_tokens")
}

// Token returns the key of the posting set for a text token:
// "{collection}/docs/t:{tok}".
func Token(collection, tok string) []byte {
	return []byte(fmt.Sprintf("%s/docs/t:%s", collection, tok))
}

// Facet returns the key of the posting set for a facet field/value pair:
// "{collection}/docs/f:{field}/v:{val}".
func Facet(collection, field string, val docmodel.Scalar) []byte {
	return []byte(fmt.Sprintf("%s/docs/f:%s/v:%s", collection, field, escapeSlash(val.String())))
}

// Numeric returns the key of the sorted set for a numeric field:
// "{collection}/docs/n:{field}".
func Numeric(collection, field string) []byte {
	return []byte(fmt.Sprintf("%s/docs/n:%s", collection, field))
}

// DocFacets returns the key of the per-document reverse facet index:
// "{collection}/doc_facets/{docID}".
func DocFacets(collection, docID string) []byte {
	return []byte(fmt.Sprintf("%s/doc_facets/%s", collection, docID))
}

// DocNumbers returns the key of the per-document reverse numeric index:
// "{collection}/doc_num/{docID}". Supplements spec §4.D with the symmetric
// reverse index the Python original's index_numeric also maintained.
func DocNumbers(collection, docID string) []byte {
	return []byte(fmt.Sprintf("%s/doc_num/%s", collection, docID))
}

// StartShard returns the key of a start-anchored n-gram shard set:
// "{collection}/s_pat/{shard}".
func StartShard(collection, shard string) []byte {
	return []byte(fmt.Sprintf("%s/s_pat/%s", collection, shard))
}

// EndShard returns the key of an end-anchored n-gram shard set:
// "{collection}/e_pat/{shard}".
func EndShard(collection, shard string) []byte {
	return []byte(fmt.Sprintf("%s/e_pat/%s", collection, shard))
}

// FacetValue renders the "f:{field}/v:{val}" member string stored in the
// per-document reverse facet index (DocFacets' set members).
func FacetValue(field string, val docmodel.Scalar) string {
	return fmt.Sprintf("f:%s/v:%s", field, escapeSlash(val.String()))
}

// NumberValue renders the "n:{val}" member string stored in the per-document
// reverse numeric index (DocNumbers' set members).
func NumberValue(val float64) string {
	sc := docmodel.Float(val)
	return fmt.Sprintf("n:%s", sc.String())
}

// Scratch returns the key of a temporary intermediate result set produced
// during query evaluation: "t/{runPrefix}:{i}".
func Scratch(runPrefix string, i int) []byte {
	return []byte(fmt.Sprintf("t/%s:%d", runPrefix, i))
}

// CollectionGlob returns the "{collection}/*" glob used by external cleanup
// utilities (spec §4.H: "Deletion of a collection ... is an external utility
// responsibility") to enumerate every key belonging to a collection.
func CollectionGlob(collection string) []byte {
	return []byte(collection + "/*")
}
