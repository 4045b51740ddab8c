// Package common provides core data structures and utilities shared across
// the encoding service. It defines configuration structures, protocol
// constants, logging and metrics used by the other packages.
//
// The package focuses on:
//   - Wire protocol constants and errors of the length prefixed framing
//   - Configuration structures for client and server components
//   - Custom logging implementation integrated with the dragonboat logger registry
//   - Server metrics backed by VictoriaMetrics
//
// Key Components:
//
//   - ServerConfig / ClientConfig: configuration of the server and the client,
//     including the required maximum payload size, timeouts and socket options.
//     Both provide Validate and a human readable String.
//
//   - ErrFrameTooLarge, ErrNegativeLength, ErrMaxPayloadRequired: sentinel errors
//     of the framing protocol, to be checked with errors.Is.
//
//   - Logger: Custom logging implementation registered as dragonboat logger
//     factory, giving every package a named logger with consistent formatting.
//
//   - ServerMetrics: counters and histograms of the connection dispatcher.
package common
