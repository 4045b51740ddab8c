package serializer

import (
	"encoding/json"
	"github.com/ValentinKolb/sfc/lib/coding"
	"github.com/stretchr/testify/require"
	"testing"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func() IRPCSerializer{
	"text": NewTextSerializer,
	"json": NewJSONSerializer,
}

// TestTextReport tests the exact layout of the text report
func TestTextReport(t *testing.T) {
	report, err := NewTextSerializer().Serialize(coding.Analyze([]byte("aaabbc")))
	require.NoError(t, err)

	expected := "Message: aaabbc\n" +
		"\n" +
		"Alphabet:\n" +
		"Symbol: a, Frequency: 3, Shannon code: 0\n" +
		"Symbol: b, Frequency: 2, Shannon code: 10\n" +
		"Symbol: c, Frequency: 1, Shannon code: 110\n" +
		"\n" +
		"Encoded message: 0001010110\n" +
		"\n"
	require.Equal(t, expected, string(report))
}

// TestTextReportEmptyMessage tests that an empty message yields a report without symbols
func TestTextReportEmptyMessage(t *testing.T) {
	report, err := NewTextSerializer().Serialize(coding.Analyze([]byte{}))
	require.NoError(t, err)
	require.Equal(t, "Message: \n\nAlphabet:\n\nEncoded message: \n\n", string(report))
}

// TestJSONReport tests the content of the json report
func TestJSONReport(t *testing.T) {
	data, err := NewJSONSerializer().Serialize(coding.Analyze([]byte("zzzz")))
	require.NoError(t, err)

	var report JSONReport
	require.NoError(t, json.Unmarshal(data, &report))
	require.Equal(t, JSONReport{
		Message:     "zzzz",
		Alphabet:    []JSONAlphabet{{Symbol: "z", Frequency: 4, Code: "0"}},
		Encoded:     "0000",
		Bits:        4,
		PackedBytes: 1,
		Stats:       coding.Stats{AverageLength: 1, Redundancy: 1, KraftSum: 0.5, PrefixFree: true},
	}, report)
}

// TestSerializersAreDeterministic tests that equal results yield equal payloads
func TestSerializersAreDeterministic(t *testing.T) {
	messages := []string{"", "a", "hello world", "the quick brown fox jumps over the lazy dog"}

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			s := factory()
			require.Equal(t, name, s.Name())

			for _, msg := range messages {
				first, err := s.Serialize(coding.Analyze([]byte(msg)))
				require.NoError(t, err)
				second, err := s.Serialize(coding.Analyze([]byte(msg)))
				require.NoError(t, err)
				require.Equal(t, first, second, "message %q", msg)
			}
		})
	}
}
