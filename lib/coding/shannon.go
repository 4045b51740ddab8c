package coding

import (
	"math"
	"strings"
)

// CodeTable maps every symbol of a message to its code, a string over {'0','1'}
type CodeTable map[byte]string

// CodeLength returns the Shannon code length ceil(-log2(p)) for a probability p in (0,1].
// A probability of 1 (single distinct symbol) would yield a zero length code,
// the result is therefore clamped to one bit.
func CodeLength(p float64) int {
	l := int(math.Ceil(-math.Log2(p)))
	if l < 1 {
		return 1
	}
	return l
}

// BuildCodeTable assigns a code to every symbol of the ordered list.
// total is the length of the message the symbols were counted in.
//
// The symbols are consumed in the given order: the code of a symbol is the binary
// expansion of the cumulative probability of all symbols before it, truncated to
// CodeLength(p) bits. Passing a list that is not in canonical order yields a
// different (still prefix-free) table.
func BuildCodeTable(symbols []Symbol, total int) CodeTable {
	codes := make(CodeTable, len(symbols))
	if total <= 0 {
		return codes
	}

	acc := 0.0
	for _, s := range symbols {
		p := float64(s.Count) / float64(total)
		codes[s.Char] = expand(acc, CodeLength(p))
		acc += p
	}
	return codes
}

// expand returns the first n bits of the binary expansion of c in [0,1)
func expand(c float64, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		c *= 2
		if c >= 1.0 {
			sb.WriteByte('1')
			c -= 1.0
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// IsPrefixFree reports whether no code of the table is a prefix of another code
func (c CodeTable) IsPrefixFree() bool {
	codes := make([]string, 0, len(c))
	for _, code := range c {
		codes = append(codes, code)
	}
	for i, a := range codes {
		for j, b := range codes {
			if i != j && strings.HasPrefix(b, a) {
				return false
			}
		}
	}
	return true
}

// KraftSum returns the sum over all codes of 2^-len(code).
// Every prefix-free table has a sum of at most 1.
func (c CodeTable) KraftSum() float64 {
	sum := 0.0
	for _, code := range c {
		sum += math.Ldexp(1, -len(code))
	}
	return sum
}
