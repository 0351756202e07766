// Package ngram implements the n-gram shard index of spec §4.C: given a
// vocabulary token, it enumerates the fixed, length-gated set of start- and
// end-anchored shard keys the token belongs to, making approximate matching
// tractable by narrowing a typo pattern's scan to one small shard set instead
// of the whole vocabulary.
package ngram

// Kind distinguishes a start-anchored shard from an end-anchored one.
type Kind int

const (
	// Start anchors the shard pattern to the beginning of the token.
	Start Kind = iota
	// End anchors the shard pattern to the end of the token.
	End
)

func (k Kind) String() string {
	if k == Start {
		return "start"
	}
	return "end"
}

// Shard is one (kind, pattern) pair a token belongs to. Pattern is the
// literal shard-name fragment spliced into encode.StartShard/EndShard — '?'
// is a literal wildcard character in the shard name, the same character the
// store's glob-scan treats as a single-char wildcard.
type Shard struct {
	Kind    Kind
	Pattern string
}

// Shards enumerates every shard a token of the given length belongs to, per
// spec §3's start/end shard-key table. Tokens shorter than 2 characters
// produce no shards and, as a consequence, cannot participate in approximate
// search (an acknowledged spec gap, not a bug here).
func Shards(tok string) []Shard {
	r := []rune(tok)
	l := len(r)
	if l < 2 {
		return nil
	}

	shards := make([]Shard, 0, 8)

	// 2-char anchored patterns.
	shards = append(shards,
		Shard{Start, string(r[0]) + string(r[1])},
		Shard{End, string(r[l-2]) + string(r[l-1])},
	)

	if l >= 3 {
		shards = append(shards,
			Shard{Start, string(r[0]) + "?" + string(r[2])},
			Shard{Start, "?" + string(r[1]) + string(r[2])},
			Shard{End, string(r[l-2]) + "?" + string(r[l-1])},
			Shard{End, string(r[l-3]) + string(r[l-2]) + "?"},
		)
	}

	if l >= 4 {
		shards = append(shards,
			Shard{Start, string(r[0]) + "??" + string(r[3])},
			Shard{Start, "?" + string(r[1]) + "?" + string(r[3])},
			Shard{End, string(r[l-4]) + "??" + string(r[l-1])},
			Shard{End, string(r[l-4]) + "?" + string(r[l-2]) + "?"},
		)
	}

	return shards
}

// SelectShard picks the single most selective shard key a glob-style typo
// pattern (length >= 3, '?' as wildcard) should be scanned against, following
// the canonical priority order of spec §4.F's ContainsApprox:
//
//  1. start 2-char prefix, if pat[0] and pat[1] are literal
//  2. {pat[0]}?{pat[2]}, if pat[0] and pat[2] are literal
//  3. ?{pat[1]}{pat[2]}, if pat[1] and pat[2] are literal
//  4. end 2-char suffix, if pat[-1] and pat[-2] are literal
//  5. {pat[-3]}?{pat[-1]}, if pat[-1] and pat[-3] are literal
//  6. {pat[-3]}{pat[-2]}?, if pat[-2] and pat[-3] are literal
//
// Returns ok=false if pat is shorter than 3 runes or none of the six
// alternatives has two literal anchor characters (a pattern that matches the
// empty string or is almost entirely wildcards).
func SelectShard(pat string) (Shard, bool) {
	r := []rune(pat)
	l := len(r)
	if l < 3 {
		return Shard{}, false
	}

	lit := func(i int) bool { return r[i] != '?' }

	switch {
	case lit(0) && lit(1):
		return Shard{Start, string(r[0]) + string(r[1])}, true
	case lit(0) && lit(2):
		return Shard{Start, string(r[0]) + "?" + string(r[2])}, true
	case lit(1) && lit(2):
		return Shard{Start, "?" + string(r[1]) + string(r[2])}, true
	case lit(l-1) && lit(l-2):
		return Shard{End, string(r[l-2]) + string(r[l-1])}, true
	case lit(l-1) && lit(l-3):
		return Shard{End, string(r[l-3]) + "?" + string(r[l-1])}, true
	case lit(l-2) && lit(l-3):
		return Shard{End, string(r[l-3]) + string(r[l-2]) + "?"}, true
	default:
		return Shard{}, false
	}
}
