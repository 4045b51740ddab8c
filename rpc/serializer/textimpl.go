package serializer

import (
	"bytes"
	"fmt"
	"github.com/ValentinKolb/sfc/lib/coding"
)

// NewTextSerializer creates a new serializer producing the human readable report
func NewTextSerializer() IRPCSerializer {
	return &textSerializerImpl{}
}

// textSerializerImpl implements IRPCSerializer with the plain text report:
//
//	Message: <message>
//
//	Alphabet:
//	Symbol: <c>, Frequency: <n>, Shannon code: <bits>
//
//	Encoded message: <bits>
type textSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (s textSerializerImpl) Serialize(res coding.Result) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("Message: ")
	buf.Write(res.Message)
	buf.WriteString("\n\n")

	buf.WriteString("Alphabet:\n")
	for _, sym := range res.Symbols {
		buf.WriteString("Symbol: ")
		buf.WriteByte(sym.Char)
		fmt.Fprintf(&buf, ", Frequency: %d, Shannon code: %s\n", sym.Count, res.Codes[sym.Char])
	}
	buf.WriteString("\n")

	buf.WriteString("Encoded message: ")
	buf.WriteString(res.Encoded)
	buf.WriteString("\n\n")

	return buf.Bytes(), nil
}

func (s textSerializerImpl) Name() string {
	return "text"
}
