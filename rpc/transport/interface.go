package transport

import (
	"github.com/ValentinKolb/sfc/rpc/common"
	"net"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc is a function type that handles incoming requests
// This function is called by a server transport layer once a complete request was read
// It takes the request payload and returns the response payload
type ServerHandleFunc func(req []byte) (resp []byte)

// IRPCServerTransport is the interface for the RPC transport layer
type IRPCServerTransport interface {
	// RegisterHandler registers a handler for the transport layer
	// This handler should be called when a request is received
	RegisterHandler(handler ServerHandleFunc)
	// RegisterMetrics registers the metrics the transport records to, nil disables recording
	RegisterMetrics(metrics *common.ServerMetrics)
	// Listen starts the transport layer and serves incoming requests
	// It blocks until Close is called or the listener fails
	Listen(config common.ServerConfig) error
	// Addr returns the address the transport listens on, nil before Listen
	Addr() net.Addr
	// Close stops accepting connections and waits for all in-flight connections
	Close() error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface for the RPC client transport
type IRPCClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error
	// Send sends a request to the server and returns the response
	// Every call is a complete exchange on its own connection
	Send(req []byte) (resp []byte, err error)
	// Close closes the transport
	Close() error
}
