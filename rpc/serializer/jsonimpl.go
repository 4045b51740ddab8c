package serializer

import (
	"encoding/json"
	"github.com/ValentinKolb/sfc/lib/coding"
)

// NewJSONSerializer creates a new serializer using json encoding
func NewJSONSerializer() IRPCSerializer {
	return &jsonSerializerImpl{}
}

// jsonSerializerImpl implements the IRPCSerializer interface using json encoding
type jsonSerializerImpl struct {
}

// JSONReport is the document produced by the json serializer
type JSONReport struct {
	Message     string         `json:"message"`
	Alphabet    []JSONAlphabet `json:"alphabet"`
	Encoded     string         `json:"encoded"`
	Bits        int            `json:"bits"`
	PackedBytes int            `json:"packed_bytes"`
	Stats       coding.Stats   `json:"stats"`
}

// JSONAlphabet is one symbol entry of a JSONReport
type JSONAlphabet struct {
	Symbol    string `json:"symbol"`
	Frequency int    `json:"frequency"`
	Code      string `json:"code"`
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (j jsonSerializerImpl) Serialize(res coding.Result) ([]byte, error) {
	packed, err := coding.Pack(res.Encoded)
	if err != nil {
		return nil, err
	}

	report := JSONReport{
		Message:     string(res.Message),
		Alphabet:    make([]JSONAlphabet, 0, len(res.Symbols)),
		Encoded:     res.Encoded,
		Bits:        res.Bits(),
		PackedBytes: len(packed),
		Stats:       coding.NewStats(res),
	}
	for _, sym := range res.Symbols {
		report.Alphabet = append(report.Alphabet, JSONAlphabet{
			Symbol:    string([]byte{sym.Char}),
			Frequency: sym.Count,
			Code:      res.Codes[sym.Char],
		})
	}

	return json.Marshal(report)
}

func (j jsonSerializerImpl) Name() string {
	return "json"
}
