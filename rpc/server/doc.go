// Package server implements the RPC server of the encoding service. It connects a
// transport to the coding pipeline: every request payload is analyzed with the coding
// package and rendered with the configured serializer into the response payload.
//
// The package focuses on:
//   - Wiring transport, coding and serializer together
//   - Logging and metrics setup
//   - An optional admin HTTP endpoint with /metrics (Prometheus format) and /healthz
//   - Graceful shutdown
//
// Usage Example:
//
//	config := common.ServerConfig{
//	  MaxPayloadBytes: 1 << 20,
//	  LogLevel:        "info",
//	  Transport:       common.ServerTransportConfig{Endpoint: "0.0.0.0:8080"},
//	}
//
//	s := server.NewRPCServer(
//	  config,
//	  tcp.NewTCPServerTransport(),
//	  serializer.NewTextSerializer(),
//	)
//	s.CloseOnSignal()
//
//	if err := s.Serve(); err != nil {
//	  log.Fatalf("Server error: %v", err)
//	}
//
// Thread Safety:
//
//	The handler keeps no state between requests, requests on different connections
//	are processed independently and concurrently. Serve must be called only once.
package server
