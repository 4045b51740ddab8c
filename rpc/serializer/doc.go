// Package serializer renders the result of encoding one message into the response
// payload. It defines a common interface and one implementation per output format.
//
// Key Components:
//
//   - IRPCSerializer: Core interface that all serializer implementations must satisfy.
//
//   - textSerializerImpl: the human readable report listing the message, every symbol
//     with frequency and code in canonical order, and the encoded bit string.
//
//   - jsonSerializerImpl: the same content as JSON document, plus the length of the
//     encoded message in bits and in packed bytes.
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	s := serializer.NewTextSerializer()
//	report, err := s.Serialize(coding.Analyze(message))
package serializer
