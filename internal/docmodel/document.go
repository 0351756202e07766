// Package docmodel defines the document shape and collection configuration
// shared by the indexing and search packages.
//
// Documents arrive as untyped JSON objects and stay untyped: Document is a
// map[string]any, and there is no separate Value sum type. This package
// provides the closed Scalar sum and ToScalar, which internal/docindex uses
// to narrow each facet element; number fields are checked there with their
// own type switch over the raw value.
package docmodel

import (
	"errors"
	"fmt"
)

// Scalar is one of the four JSON leaf types a facet or numeric field value may
// hold once a document has been normalized.
type Scalar struct {
	kind  scalarKind
	str   string
	num   float64
	boolv bool
}

type scalarKind int

const (
	scalarString scalarKind = iota
	scalarInt
	scalarFloat
	scalarBool
)

// String builds a string-kind Scalar.
func String(s string) Scalar { return Scalar{kind: scalarString, str: s} }

// Int builds an int-kind Scalar.
func Int(i int64) Scalar { return Scalar{kind: scalarInt, num: float64(i)} }

// Float builds a float-kind Scalar.
func Float(f float64) Scalar { return Scalar{kind: scalarFloat, num: f} }

// Bool builds a bool-kind Scalar.
func Bool(b bool) Scalar { return Scalar{kind: scalarBool, boolv: b} }

// IsNumber reports whether the scalar holds an int or a float, i.e. whether
// it may legally populate a number field per spec §4.D.
func (s Scalar) IsNumber() bool {
	return s.kind == scalarInt || s.kind == scalarFloat
}

// Float64 returns the scalar's numeric value. Only valid when IsNumber is true.
func (s Scalar) Float64() float64 { return s.num }

// String renders the scalar the way a facet value is stringified for key
// construction: no type tag, just the literal text. Booleans render as
// "true"/"false", numbers render without a superfluous ".0" when integral.
func (s Scalar) String() string {
	switch s.kind {
	case scalarString:
		return s.str
	case scalarBool:
		if s.boolv {
			return "true"
		}
		return "false"
	case scalarInt:
		return fmt.Sprintf("%d", int64(s.num))
	case scalarFloat:
		if s.num == float64(int64(s.num)) {
			return fmt.Sprintf("%d", int64(s.num))
		}
		return fmt.Sprintf("%g", s.num)
	default:
		return ""
	}
}

// ErrNotScalar is returned when a value claimed to be scalar (or list of
// scalar) turns out to carry a nested object or array.
var ErrNotScalar = errors.New("value is not a scalar")

// ToScalar narrows a decoded JSON leaf (string, float64, bool, or an int or
// int64 set in Go code) into a Scalar. Returns ErrNotScalar for any other
// value, including maps, slices, json.Number, and nil.
func ToScalar(v any) (Scalar, error) {
	switch t := v.(type) {
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Float(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	default:
		return Scalar{}, fmt.Errorf("%w: %v (%T)", ErrNotScalar, v, v)
	}
}

// AsList coerces a raw field value the way spec §4.D requires: a list passes
// through unchanged, nil/missing becomes an empty list, any other value
// becomes a one-element list. Matches the Python original's as_list.
func AsList(v any) []any {
	if v == nil {
		return nil
	}
	if list, ok := v.([]any); ok {
		return list
	}
	return []any{v}
}

// Document is an unordered mapping from field name to decoded JSON value, as
// produced by json.Unmarshal into map[string]any.
type Document map[string]any

// ID extracts the document identifier by reading the configured id field and
// stringifying it, per spec §3: "the string form is the canonical identifier
// used everywhere downstream."
func (d Document) ID(idField string) (string, error) {
	raw, ok := d[idField]
	if !ok {
		return "", fmt.Errorf("document missing id field %q", idField)
	}
	sc, err := ToScalar(raw)
	if err != nil {
		return "", fmt.Errorf("id field %q: %w", idField, err)
	}
	return sc.String(), nil
}
