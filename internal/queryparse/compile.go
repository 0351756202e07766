package queryparse

import (
	"strings"

	"github.com/dreamware/redsearch/internal/docmodel"
	"github.com/dreamware/redsearch/internal/searchexpr"
)

// Compile parses query and walks its AST into a searchexpr.Expr tree.
//
// Per spec.md §6, range matches and numeric comparisons are parsed into the
// AST but have no evaluator: Compile returns an *UnsupportedOperatorError
// naming the offending operator (and field, where one applies) the moment it
// finds one, rather than silently dropping the clause. NOT falls in the same
// bucket: searchexpr's closed node sum has no negation variant to compile it
// to.
func Compile(query string) (searchexpr.Expr, error) {
	q, err := Parse(query)
	if err != nil {
		return nil, err
	}
	return compileExpr(q.Expr)
}

func compileExpr(e *Expr) (searchexpr.Expr, error) {
	children := make([]searchexpr.Expr, len(e.Terms))
	for i, term := range e.Terms {
		c, err := compileTerm(term)
		if err != nil {
			return nil, err
		}
		children[i] = c
	}
	return searchexpr.And{Children: children}, nil
}

func compileTerm(t *Term) (searchexpr.Expr, error) {
	children := make([]searchexpr.Expr, len(t.Clauses))
	for i, clause := range t.Clauses {
		c, err := compileClause(clause)
		if err != nil {
			return nil, err
		}
		children[i] = c
	}
	return searchexpr.Or{Children: children}, nil
}

func compileClause(c *FilterClause) (searchexpr.Expr, error) {
	switch {
	case c.Not != nil:
		return nil, &UnsupportedOperatorError{Operator: "NOT", Field: c.Not.Head}
	case c.Sub != nil:
		return compileExpr(c.Sub)
	default:
		return compileFilter(c.Filter)
	}
}

func compileFilter(f *FilterExpr) (searchexpr.Expr, error) {
	switch {
	case f.Cmp != nil:
		return nil, &UnsupportedOperatorError{Operator: f.Cmp.Op, Field: f.Head}
	case f.Match != nil:
		if f.Match.IsRange() {
			return nil, &UnsupportedOperatorError{Operator: "TO", Field: f.Head}
		}
		val, err := scalarFromValue(f.Match)
		if err != nil {
			return nil, err
		}
		return searchexpr.FacetEq{Field: f.Head, Value: val}, nil
	default:
		return searchexpr.ContainsToken{Token: normalizeTag(f.Head)}, nil
	}
}

func scalarFromValue(v *ValueOrRange) (docmodel.Scalar, error) {
	switch {
	case v.Num != nil:
		n := *v.Num
		if n == float64(int64(n)) {
			return docmodel.Int(int64(n)), nil
		}
		return docmodel.Float(n), nil
	case v.Str != nil:
		return docmodel.String(*v.Str), nil
	case v.Ident != nil:
		return docmodel.String(*v.Ident), nil
	case v.Boolean != nil:
		return docmodel.Bool(*v.Boolean == "true"), nil
	default:
		return docmodel.Scalar{}, &UnsupportedOperatorError{Operator: "empty match value"}
	}
}

// normalizeTag lowercases a bare tag_expr token so it lines up with the
// tokenizer's own lowercase-and-fold normalization (spec §4.B) — a query
// author typing "Rum" should still hit the "rum" posting set.
func normalizeTag(s string) string {
	return strings.ToLower(s)
}
