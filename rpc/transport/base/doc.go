// Package base provides a foundation for the framed transport layers of the encoding
// service, implementing the connection dispatcher and the client exchange independent
// of the specific network protocol (TCP, Unix sockets). Protocol specific behaviour is
// plugged in through connectors.
//
// The package focuses on:
//   - Length prefixed framing (4 byte signed big endian length, then payload)
//   - One request/response exchange per connection
//   - Per-connection isolation and asynchronous reclamation of finished connections
//
// Key Components:
//
//   - IClientConnector/IServerConnector: Interfaces for protocol-specific operations
//     that allow extending the base transport with different network protocols.
//
//   - serverTransport: the connection dispatcher. The accept loop registers every
//     connection in a concurrent registry and hands it to its own goroutine, it never
//     waits for a connection to finish. A connection moves through the states
//     accepted, reading, processing, writing and closed. Any failure ends only that
//     connection.
//
//   - reaper: collects closed connections in the background. Notifications coalesce,
//     so each pass sweeps the whole registry and reclaims every finished connection.
//
//   - clientTransport: dials a fresh connection per request (round robin over the
//     endpoints), writes the request frame, reads the response frame.
//
// Hardening:
//
//	Declared frame lengths are checked against the configured maximum before the
//	payload buffer is allocated, negative lengths are rejected. Optional deadlines
//	bound every read and write.
//
// Thread Safety:
//
//	All public methods are thread-safe. Listen must be called only once per transport.
package base
