package coding

// Result holds everything computed for one message
type Result struct {
	// Message is the original message
	Message []byte
	// Symbols is the frequency table in canonical order
	Symbols []Symbol
	// Codes is the code of every symbol
	Codes CodeTable
	// Encoded is the encoded message as bit string
	Encoded string
}

// Analyze counts, orders, builds the code table and encodes msg.
// An empty message yields a result without symbols and an empty encoding.
func Analyze(msg []byte) Result {
	freq := CountFrequencies(msg)
	symbols := freq.Ordered()
	codes := BuildCodeTable(symbols, freq.Total())

	return Result{
		Message: msg,
		Symbols: symbols,
		Codes:   codes,
		Encoded: Encode(msg, codes),
	}
}

// Bits returns the length of the encoded message in bits
func (r Result) Bits() int {
	return len(r.Encoded)
}
