package queryparse

import "fmt"

// UnsupportedOperatorError reports a syntactically valid operator that the
// grammar parses but the evaluator does not implement: a range match, a
// numeric comparison, or NOT — spec.md §6's "Range and numeric comparison
// operators are parsed but not wired to evaluators in the current core"
// (NOT shares the same fate here: searchexpr's closed sum has no negation
// variant to compile it to).
type UnsupportedOperatorError struct {
	Operator string
	Field    string
}

func (e *UnsupportedOperatorError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("queryparse: operator %q is parsed but not evaluable", e.Operator)
	}
	return fmt.Sprintf("queryparse: operator %q on field %q is parsed but not evaluable", e.Operator, e.Field)
}
