package coding

import "sort"

// Symbol is a distinct byte of a message together with its occurrence count
type Symbol struct {
	Char  byte `json:"symbol"`
	Count int  `json:"frequency"`
}

// FrequencyTable maps every distinct byte of a message to its occurrence count
type FrequencyTable map[byte]int

// CountFrequencies counts the occurrences of every byte in msg.
// An empty message yields an empty table.
func CountFrequencies(msg []byte) FrequencyTable {
	freq := make(FrequencyTable)
	for _, c := range msg {
		freq[c]++
	}
	return freq
}

// Total returns the sum of all counts, which equals the length of the counted message
func (f FrequencyTable) Total() int {
	total := 0
	for _, n := range f {
		total += n
	}
	return total
}

// Ordered returns the entries of the table in canonical order:
// descending frequency, ties broken by descending byte value.
// Since bytes are unique keys this is a total order and the result is deterministic.
func (f FrequencyTable) Ordered() []Symbol {
	symbols := make([]Symbol, 0, len(f))
	for c, n := range f {
		symbols = append(symbols, Symbol{Char: c, Count: n})
	}
	sort.Slice(symbols, func(i, j int) bool {
		return canonicalLess(symbols[i], symbols[j])
	})
	return symbols
}

// canonicalLess reports whether a sorts before b
func canonicalLess(a, b Symbol) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return a.Char > b.Char
}
