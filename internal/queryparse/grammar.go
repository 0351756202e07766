// Package queryparse reproduces spec.md §6's query-string grammar with
// participle/v2 struct tags, the way _examples/other_examples's pgraph DSL
// grammar builds a lexer and nested AST structs from parser tags rather than
// a hand-rolled recursive-descent parser.
//
// The grammar's documented, non-standard precedence — OR binds tighter than
// AND — is expressed directly in the struct nesting: Expr is an AND-list of
// Term, and Term is an OR-list of FilterClause, so "a OR b AND c" parses as
// (a OR b) AND c.
package queryparse

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var queryLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `\b(AND|OR|NOT|TO|true|false)\b`},
	{Name: "Cmp", Pattern: `<=|>=|=|<|>`},
	{Name: "Number", Pattern: `\d+(\.\d*)?`},
	{Name: "String", Pattern: `"[A-Za-z0-9 ]*"`},
	{Name: "Ident", Pattern: `[A-Za-z0-9-]+`},
	{Name: "Punct", Pattern: `[():]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Query is search_expr = expr EOF.
type Query struct {
	Expr *Expr `parser:"@@"`
}

// Expr is expr = term ("AND" term)*.
type Expr struct {
	Terms []*Term `parser:"@@ (\"AND\" @@)*"`
}

// Term is term = filter_clause ("OR" filter_clause)* — the tighter-binding
// level, nested one level below Expr.
type Term struct {
	Clauses []*FilterClause `parser:"@@ (\"OR\" @@)*"`
}

// FilterClause is filter_clause = "NOT" filter_expr | filter_expr | "(" expr ")".
type FilterClause struct {
	Not    *FilterExpr `parser:"(  \"NOT\" @@"`
	Filter *FilterExpr `parser:" | @@"`
	Sub    *Expr       `parser:" | \"(\" @@ \")\" )"`
}

// FilterExpr covers match_expr, num_filter_expr, and tag_expr in one shape:
// all three start with a single Ident-or-String token (fld_name for the
// first two, lit_str for tag_expr); what follows — ":"  a cmp operator, or
// nothing — disambiguates which production matched, without backtracking.
type FilterExpr struct {
	Head  string     `parser:"@(Ident|String)"`
	Match *ValueOrRange `parser:"( \":\" @@"`
	Cmp   *CmpFilter    `parser:"| @@ )?"`
}

// ValueOrRange is the right-hand side of a match_expr: either a lit_val or a
// range. Both start with a token, so Num's optional trailing "TO" @Number is
// what separates range from a bare lit_number, again without backtracking.
type ValueOrRange struct {
	Num     *float64 `parser:"(  @Number"`
	RangeTo *float64 `parser:"   ( \"TO\" @Number )?"`
	Str     *string  `parser:"| @String"`
	Ident   *string  `parser:"| @Ident"`
	Boolean *string  `parser:"| @(\"true\"|\"false\") )"`
}

// IsRange reports whether this value parsed as a range (lit_number "TO" lit_number).
func (v *ValueOrRange) IsRange() bool {
	return v.Num != nil && v.RangeTo != nil
}

// CmpFilter is the cmp_operator lit_number suffix of num_filter_expr.
type CmpFilter struct {
	Op  string  `parser:"@(\"=\"|\"<=\"|\">=\"|\"<\"|\">\")"`
	Val float64 `parser:"@Number"`
}

var parser = participle.MustBuild[Query](
	participle.Lexer(queryLexer),
	participle.Unquote("String"),
	participle.Elide("Whitespace"),
)

// Parse parses a raw query string into its AST, without compiling it to a
// searchexpr.Expr.
func Parse(query string) (*Query, error) {
	return parser.ParseString("", query)
}
