// Package transport defines the interfaces and abstractions for RPC communication
// of the encoding service. It provides a common contract that all transport
// implementations must fulfill, enabling protocol-agnostic communication.
//
// The package focuses on:
//   - Defining clear interfaces for client and server transport layers
//   - Enabling multiple transport implementations (TCP, Unix sockets, HTTP)
//
// Key Components:
//
//   - IRPCClientTransport: Interface for client-side transport implementations that
//     perform one request/response exchange per Send.
//
//   - IRPCServerTransport: Interface for server-side transport implementations that
//     receive requests and hand them to the registered handler.
//
//   - ServerHandleFunc: Function type for request handling callbacks.
package transport
