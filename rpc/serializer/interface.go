package serializer

import "github.com/ValentinKolb/sfc/lib/coding"

// IRPCSerializer is the interface for all report serializers
type IRPCSerializer interface {
	// Serialize renders the result of one message into the response payload
	// The output must only depend on the result
	Serialize(res coding.Result) ([]byte, error)
	// Name returns the name of the format (e.g. "text", "json")
	Name() string
}
