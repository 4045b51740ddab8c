package coding

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/icza/bitio"
)

// Encode concatenates the code of every byte of msg in message order.
// The table must have been built from the frequencies of msg, a missing
// byte is a programming error and panics.
func Encode(msg []byte, codes CodeTable) string {
	var sb strings.Builder
	for _, c := range msg {
		code, ok := codes[c]
		if !ok {
			panic(fmt.Sprintf("coding: no code for symbol %q", c))
		}
		sb.WriteString(code)
	}
	return sb.String()
}

// EncodedLength returns the length in bits of the encoded message,
// the sum over all symbols of count * code length
func EncodedLength(symbols []Symbol, codes CodeTable) int {
	n := 0
	for _, s := range symbols {
		n += s.Count * len(codes[s.Char])
	}
	return n
}

// Pack packs a bit string most significant bit first into bytes.
// The last byte is padded with zero bits.
func Pack(bits string) ([]byte, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '0':
			if err := w.WriteBool(false); err != nil {
				return nil, err
			}
		case '1':
			if err := w.WriteBool(true); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("invalid bit %q at position %d", bits[i], i)
		}
	}
	// Close flushes the cached bits, the buffer itself stays open
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
