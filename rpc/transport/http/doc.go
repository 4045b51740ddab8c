// Package http implements an HTTP-based transport layer for the encoding service.
// It is an alternative to the framed TCP and Unix transports: the message is posted
// as request body to /encode and the report is returned as response body. HTTP
// already delimits messages, so no length prefix is used.
//
// The package focuses on:
//   - Client-side HTTP transport for sending messages to servers
//   - Server-side HTTP transport built on a chi router
//   - Round-robin load balancing across multiple server endpoints
//
// Key Components:
//
//   - httpClientTransport: Implements IRPCClientTransport, selecting endpoints round
//     robin and bounding the response size by the configured maximum payload.
//
//   - httpServerTransport: Implements IRPCServerTransport, bounding the request body
//     by the configured maximum payload before reading it.
//
// Thread Safety:
//
//	The client transport is thread-safe and can be used concurrently. It uses
//	atomic operations for the round-robin counter to ensure thread safety when
//	selecting server endpoints.
package http
