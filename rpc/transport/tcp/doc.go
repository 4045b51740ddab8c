// Package tcp implements the TCP socket based transport of the encoding service.
// It provides concrete implementations of the base package's connector interfaces.
//
// This package builds on the base package's transport functionality, inheriting its
// framing, connection dispatching and reclamation. See the base package documentation
// for details on the underlying mechanisms.
//
// Key Components:
//
//   - clientConnector: TCP-specific implementation of base.IClientConnector
//
//   - serverConnector: TCP-specific implementation of base.IServerConnector
//
// Both connectors apply the configured socket options (TCP_NODELAY, keep-alive,
// linger and socket buffer sizes) to every connection.
package tcp
