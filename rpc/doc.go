// Package rpc provides the network layer of the Shannon-Fano encoding service.
//
// The package is organized into several subpackages:
//
//   - common: Configuration structures, framing constants, errors, logging and metrics.
//
//   - transport: Network communication abstractions with pluggable implementations
//     (TCP, Unix sockets, HTTP). The base transport contains the connection dispatcher.
//
//   - serializer: Rendering of the encoding report (text, JSON).
//
//   - client: Remote and in-process encoder clients and the batch runner.
//
//   - server: The RPC server tying transport, coding and serializer together.
package rpc
