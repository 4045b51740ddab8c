package client

import (
	"github.com/ValentinKolb/sfc/rpc/common"
	"github.com/ValentinKolb/sfc/rpc/transport"
)

// NewRPCEncoder creates a new client sending messages to a remote server
// The function takes a config and a transport as parameters
// It returns an IEncoderClient and an error
func NewRPCEncoder(
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
) (IEncoderClient, error) {

	// Connect the transport
	err := transport.Connect(config)
	if err != nil {
		return nil, err
	}

	return &rpcEncoder{
		config:    config,
		transport: transport,
	}, nil
}

type rpcEncoder struct {
	config    common.ClientConfig
	transport transport.IRPCClientTransport
}

// --------------------------------------------------------------------------
// Interface Methods (docu see IEncoderClient)
// --------------------------------------------------------------------------

func (e *rpcEncoder) Encode(msg []byte) ([]byte, error) {
	return e.transport.Send(msg)
}

func (e *rpcEncoder) Close() error {
	return e.transport.Close()
}
