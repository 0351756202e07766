// Package searchexpr implements the expression algebra of spec §4.F: a
// closed sum of query-tree node variants, each evaluating against a
// searchctx.Context to either a store key (a posting set) or a list of
// tokens (ContainsApprox's asymmetric result, per §9's design note).
package searchexpr

import (
	"context"
	"fmt"

	"github.com/dreamware/redsearch/internal/docmodel"
	"github.com/dreamware/redsearch/internal/encode"
	"github.com/dreamware/redsearch/internal/ngram"
	"github.com/dreamware/redsearch/internal/searchctx"
	"github.com/dreamware/redsearch/internal/typofuzz"
)

// background is used for every store call Eval makes. Spec §5's scheduling
// model is synchronous with no suspension points within a tree walk, so
// evaluation never has a caller-supplied context.Context to thread through;
// cancellation happens at the store-client level, per spec §5.
var background = context.Background()

// Result is the sum type every node's Eval returns: exactly one of Key
// (naming a posting set already populated in the store) or Tokens (a list
// of token strings, ContainsApprox's sole variant).
type Result struct {
	Key    []byte
	Tokens []string
}

func keyResult(k []byte) Result { return Result{Key: k} }

func (r Result) isTokens() bool { return r.Tokens != nil }

// AsKey returns r.Key, or an UnsupportedError if r actually carries Tokens
// — the case a bare ContainsApprox used directly as an And/Or child hits: a
// token list cannot be fed to SINTERSTORE/SUNIONSTORE or SMEMBERS without
// first being expanded (spec §4.F: "a standalone ContainsApprox does not
// itself yield document ids"). collection.Search expands a root-level
// ContainsApprox before evaluating, so that case never reaches here.
func (r Result) AsKey() ([]byte, error) {
	if r.isTokens() {
		return nil, &UnsupportedError{Op: "ContainsApprox", Detail: "used directly as a boolean operand; call Expand() first"}
	}
	return r.Key, nil
}


// Expr is one node of the query tree.
type Expr interface {
	Eval(ctx *searchctx.Context) (Result, error)
}

// FacetEq matches documents whose fld contains val among its facet values.
type FacetEq struct {
	Field string
	Value docmodel.Scalar
}

func (e FacetEq) Eval(ctx *searchctx.Context) (Result, error) {
	if !ctx.Config.IsFacetField(e.Field) {
		return Result{}, &UnsupportedError{Op: "FacetEq", Detail: fmt.Sprintf("field %q is not a facet field", e.Field)}
	}
	return keyResult(encode.Facet(ctx.Config.Name, e.Field, e.Value)), nil
}

// ContainsToken matches documents whose posting set contains tok. tok must
// already be normalized (lowercased, folded) — ContainsToken never
// tokenizes its argument.
type ContainsToken struct {
	Token string
}

func (e ContainsToken) Eval(ctx *searchctx.Context) (Result, error) {
	return keyResult(encode.Token(ctx.Config.Name, e.Token)), nil
}

// ContainsTokens matches documents whose posting sets contain every token
// in Tokens — sugar for And(ContainsToken(t1), ..., ContainsToken(tn)).
type ContainsTokens struct {
	Tokens []string
}

func (e ContainsTokens) Eval(ctx *searchctx.Context) (Result, error) {
	children := make([]Expr, len(e.Tokens))
	for i, tok := range e.Tokens {
		children[i] = ContainsToken{Token: tok}
	}
	return And{Children: children}.Eval(ctx)
}

// And is the n-ary conjunction of at least one child, left-folding pairwise
// set-intersections into fresh scratch keys.
type And struct {
	Children []Expr
}

func (e And) Eval(ctx *searchctx.Context) (Result, error) {
	return foldKeys(ctx, e.Children, func(dst, a, b []byte) error {
		return ctx.Store.SetInterStore(background, dst, a, b)
	})
}

// Or is the n-ary disjunction of at least one child, left-folding pairwise
// set-unions into fresh scratch keys.
type Or struct {
	Children []Expr
}

func (e Or) Eval(ctx *searchctx.Context) (Result, error) {
	return foldKeys(ctx, e.Children, func(dst, a, b []byte) error {
		return ctx.Store.SetUnionStore(background, dst, a, b)
	})
}

func foldKeys(ctx *searchctx.Context, children []Expr, combine func(dst, a, b []byte) error) (Result, error) {
	if len(children) == 0 {
		return Result{}, fmt.Errorf("searchexpr: And/Or requires at least one child")
	}

	first, err := children[0].Eval(ctx)
	if err != nil {
		return Result{}, err
	}
	acc, err := first.AsKey()
	if err != nil {
		return Result{}, err
	}

	for _, child := range children[1:] {
		res, err := child.Eval(ctx)
		if err != nil {
			return Result{}, err
		}
		k1, err := res.AsKey()
		if err != nil {
			return Result{}, err
		}
		k2 := ctx.GenKey()
		if err := combine(k2, acc, k1); err != nil {
			return Result{}, err
		}
		acc = k2
	}

	return keyResult(acc), nil
}

// ContainsApprox matches tokens within maxTypos edits of Word, per spec
// §4.E/§4.F: it does not itself produce document ids, only a candidate
// token list — Expand wraps that into the Or(ContainsToken...) tree spec
// §4.F's asymmetry note recommends.
type ContainsApprox struct {
	Word     string
	MaxTypos int
}

func (e ContainsApprox) Eval(ctx *searchctx.Context) (Result, error) {
	if len(e.Word) < 3 {
		return Result{}, &UnsupportedError{Op: "ContainsApprox", Detail: fmt.Sprintf("word %q is shorter than 3 characters", e.Word)}
	}

	patterns := typofuzz.Patterns(e.Word, e.MaxTypos)

	// Non-nil even when nothing matches, so AsKey still recognizes a token
	// result rather than an empty key.
	tokens := []string{}
	for pat := range patterns {
		if len(pat) < 3 {
			return Result{}, &UnsupportedError{Op: "ContainsApprox", Detail: fmt.Sprintf("pattern %q is shorter than 3 characters", pat)}
		}
		shard, ok := ngram.SelectShard(pat)
		if !ok {
			return Result{}, &UnsupportedError{Op: "ContainsApprox", Detail: fmt.Sprintf("pattern %q has no unambiguous shard anchor", pat)}
		}
		var shardKey []byte
		if shard.Kind == ngram.Start {
			shardKey = encode.StartShard(ctx.Config.Name, shard.Pattern)
		} else {
			shardKey = encode.EndShard(ctx.Config.Name, shard.Pattern)
		}

		it := ctx.Store.Scan(background, shardKey, pat, 10000)
		for it.Next(background) {
			tokens = append(tokens, string(it.Member()))
		}
		if err := it.Err(); err != nil {
			return Result{}, err
		}
	}

	return Result{Tokens: tokens}, nil
}

// Expand turns this node's matched tokens into Or(ContainsToken(t)...), the
// composable Boolean-tree form spec §4.F recommends wrapping ContainsApprox
// in. Returns nil if evaluation found no candidate tokens at all.
func (e ContainsApprox) Expand(ctx *searchctx.Context) (Expr, error) {
	res, err := e.Eval(ctx)
	if err != nil {
		return nil, err
	}
	if len(res.Tokens) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(res.Tokens))
	children := make([]Expr, 0, len(res.Tokens))
	for _, tok := range res.Tokens {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		children = append(children, ContainsToken{Token: tok})
	}
	return Or{Children: children}, nil
}

