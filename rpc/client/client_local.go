package client

import (
	"github.com/ValentinKolb/sfc/lib/coding"
	"github.com/ValentinKolb/sfc/rpc/serializer"
)

// NewLocalEncoder creates a client that computes the report in-process without any network
func NewLocalEncoder(serializer serializer.IRPCSerializer) IEncoderClient {
	return &localEncoder{serializer: serializer}
}

type localEncoder struct {
	serializer serializer.IRPCSerializer
}

// --------------------------------------------------------------------------
// Interface Methods (docu see IEncoderClient)
// --------------------------------------------------------------------------

func (e *localEncoder) Encode(msg []byte) ([]byte, error) {
	own := make([]byte, len(msg))
	copy(own, msg)
	return e.serializer.Serialize(coding.Analyze(own))
}

func (e *localEncoder) Close() error {
	return nil
}
