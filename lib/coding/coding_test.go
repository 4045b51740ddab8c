package coding

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testMessages is a set of messages covering common and degenerate distributions
var testMessages = []string{
	"a",
	"ab",
	"aaabbc",
	"zzzz",
	"hello world",
	"the quick brown fox jumps over the lazy dog",
	"abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789",
	"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaab",
	"\x00\x01\x02\xff\xfe\x00",
}

func TestScenarioDistinctFrequencies(t *testing.T) {
	res := Analyze([]byte("aaabbc"))

	require.Equal(t, []Symbol{{'a', 3}, {'b', 2}, {'c', 1}}, res.Symbols)
	require.Equal(t, CodeTable{'a': "0", 'b': "10", 'c': "110"}, res.Codes)
	require.Equal(t, "0001010110", res.Encoded)
}

func TestScenarioSingleSymbol(t *testing.T) {
	res := Analyze([]byte("zzzz"))

	require.Equal(t, []Symbol{{'z', 4}}, res.Symbols)
	require.Equal(t, CodeTable{'z': "0"}, res.Codes)
	require.Equal(t, "0000", res.Encoded)
}

func TestScenarioEmptyMessage(t *testing.T) {
	res := Analyze([]byte{})

	require.Empty(t, res.Symbols)
	require.Empty(t, res.Codes)
	require.Equal(t, "", res.Encoded)
	require.Equal(t, 0, res.Bits())
}

func TestCodeLength(t *testing.T) {
	require.Equal(t, 1, CodeLength(1.0), "probability 1 is clamped to one bit")
	require.Equal(t, 1, CodeLength(0.5))
	require.Equal(t, 2, CodeLength(1.0/3))
	require.Equal(t, 2, CodeLength(0.25))
	require.Equal(t, 3, CodeLength(1.0/6))
	require.Equal(t, 10, CodeLength(1.0/1000))
}

func TestOrderingTieBreak(t *testing.T) {
	// all frequencies equal -> descending byte value
	symbols := CountFrequencies([]byte("abcabc")).Ordered()
	require.Equal(t, []Symbol{{'c', 2}, {'b', 2}, {'a', 2}}, symbols)

	// mixed
	symbols = CountFrequencies([]byte("xyyzzAA")).Ordered()
	require.Equal(t, []Symbol{{'z', 2}, {'y', 2}, {'A', 2}, {'x', 1}}, symbols)
}

func TestOrderingHighBytes(t *testing.T) {
	// bytes compare as unsigned values, 0x80 and above sort before ASCII on ties
	msg := []byte{'a', 0x80, 0x00, 0xff, 0xff, 0x00, 0x80, 'a'}
	symbols := CountFrequencies(msg).Ordered()
	require.Equal(t, []Symbol{{0xff, 2}, {0x80, 2}, {'a', 2}, {0x00, 2}}, symbols)

	res := Analyze(msg)
	require.Equal(t, CodeTable{0xff: "00", 0x80: "01", 'a': "10", 0x00: "11"}, res.Codes)

	// frequency still wins over byte value
	symbols = CountFrequencies([]byte{0xfe, 'z', 'z'}).Ordered()
	require.Equal(t, []Symbol{{'z', 2}, {0xfe, 1}}, symbols)
}

func TestOrderDeterminesCodes(t *testing.T) {
	symbols := CountFrequencies([]byte("ab")).Ordered()
	require.Equal(t, CodeTable{'b': "0", 'a': "1"}, BuildCodeTable(symbols, 2))

	// reversing the order yields a different but valid table
	reversed := []Symbol{symbols[1], symbols[0]}
	codes := BuildCodeTable(reversed, 2)
	require.Equal(t, CodeTable{'a': "0", 'b': "1"}, codes)
	require.True(t, codes.IsPrefixFree())
}

func TestDeterministic(t *testing.T) {
	for _, msg := range testMessages {
		first := Analyze([]byte(msg))
		for i := 0; i < 10; i++ {
			require.Equal(t, first, Analyze([]byte(msg)), "message %q", msg)
		}
	}
}

func TestTableProperties(t *testing.T) {
	check := func(t *testing.T, msg []byte) {
		res := Analyze(msg)
		freq := CountFrequencies(msg)

		require.Equal(t, len(msg), freq.Total())
		require.Len(t, res.Codes, len(freq))
		require.True(t, res.Codes.IsPrefixFree(), "codes %v are not prefix free", res.Codes)
		require.LessOrEqual(t, res.Codes.KraftSum(), 1.0)
		require.Equal(t, EncodedLength(res.Symbols, res.Codes), res.Bits())
		for _, code := range res.Codes {
			require.NotEmpty(t, code)
			require.Equal(t, "", strings.Trim(code, "01"))
		}
	}

	for _, msg := range testMessages {
		t.Run(msg, func(t *testing.T) { check(t, []byte(msg)) })
	}

	t.Run("random", func(t *testing.T) {
		rnd := rand.New(rand.NewSource(42))
		for i := 0; i < 200; i++ {
			msg := make([]byte, 1+rnd.Intn(2000))
			alphabet := 1 + rnd.Intn(256)
			for j := range msg {
				// skewed distribution
				msg[j] = byte(rnd.Intn(1+rnd.Intn(alphabet)) % 256)
			}
			check(t, msg)
		}
	})
}

func TestPrefixFreeDetection(t *testing.T) {
	require.True(t, CodeTable{'a': "0", 'b': "10", 'c': "11"}.IsPrefixFree())
	require.False(t, CodeTable{'a': "1", 'b': "10"}.IsPrefixFree())
	require.InDelta(t, 1.0, CodeTable{'a': "0", 'b': "10", 'c': "11"}.KraftSum(), 1e-12)
}

func TestEncodeMissingSymbolPanics(t *testing.T) {
	require.Panics(t, func() {
		Encode([]byte("ab"), CodeTable{'a': "0"})
	})
}

func TestPack(t *testing.T) {
	packed, err := Pack("0001010110")
	require.NoError(t, err)
	require.Equal(t, []byte{0b00010101, 0b10000000}, packed)

	packed, err = Pack("")
	require.NoError(t, err)
	require.Empty(t, packed)

	packed, err = Pack("11111111")
	require.NoError(t, err)
	require.Equal(t, []byte{0xff}, packed)

	_, err = Pack("01x")
	require.Error(t, err)
}

func TestStats(t *testing.T) {
	t.Run("ScenarioA", func(t *testing.T) {
		s := NewStats(Analyze([]byte("aaabbc")))
		require.InDelta(t, 1.459148, s.Entropy, 1e-6)
		require.InDelta(t, 5.0/3.0, s.AverageLength, 1e-9)
		require.InDelta(t, s.Entropy/s.AverageLength, s.Efficiency, 1e-9)
		require.InDelta(t, 0.875, s.KraftSum, 1e-9)
		require.Greater(t, s.Redundancy, 0.0)
		require.True(t, s.PrefixFree)
	})

	t.Run("SingleSymbol", func(t *testing.T) {
		s := NewStats(Analyze([]byte("zzzz")))
		require.Equal(t, Stats{AverageLength: 1, Redundancy: 1, KraftSum: 0.5, PrefixFree: true}, s)
	})

	t.Run("Empty", func(t *testing.T) {
		require.Equal(t, Stats{}, NewStats(Analyze(nil)))
	})

	t.Run("AverageLengthBound", func(t *testing.T) {
		// a Shannon code is never more than one bit per symbol above the entropy
		for _, msg := range []string{"hello world", "abracadabra", "mississippi"} {
			s := NewStats(Analyze([]byte(msg)))
			require.GreaterOrEqual(t, s.AverageLength, s.Entropy, msg)
			require.Less(t, s.AverageLength, s.Entropy+1, msg)
		}
	})
}
