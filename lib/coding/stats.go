package coding

import (
	"math"
)

// Stats describes how close a code comes to the entropy of its message
type Stats struct {
	Entropy       float64 `json:"entropy"`        // bits per symbol of the source
	AverageLength float64 `json:"average_length"` // bits per symbol of the code
	Efficiency    float64 `json:"efficiency"`     // Entropy / AverageLength
	Redundancy    float64 `json:"redundancy"`     // AverageLength - Entropy
	KraftSum      float64 `json:"kraft_sum"`
	PrefixFree    bool    `json:"prefix_free"`
}

// NewStats computes the statistics of an analyzed message.
// An empty message has no symbols and yields zero statistics.
func NewStats(r Result) Stats {
	total := len(r.Message)
	if total == 0 {
		return Stats{}
	}

	var entropy float64
	for _, sym := range r.Symbols {
		p := float64(sym.Count) / float64(total)
		entropy += p * math.Log2(1/p)
	}
	avg := float64(EncodedLength(r.Symbols, r.Codes)) / float64(total)

	return Stats{
		Entropy:       entropy,
		AverageLength: avg,
		Efficiency:    entropy / avg,
		Redundancy:    avg - entropy,
		KraftSum:      r.Codes.KraftSum(),
		PrefixFree:    r.Codes.IsPrefixFree(),
	}
}
