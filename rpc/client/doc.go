// Package client implements the clients of the encoding service.
//
// Key Components:
//
//   - NewRPCEncoder: sends every message over the configured transport to a remote
//     server and returns the report of the server.
//
//   - NewLocalEncoder: computes the report in-process with the coding package, no
//     server is needed.
//
//   - EncodeAll: encodes a batch of messages concurrently and returns the results in
//     input order.
//
// Usage Example:
//
//	enc, err := client.NewRPCEncoder(common.ClientConfig{
//	  MaxPayloadBytes:  1 << 20,
//	  MaxResponseBytes: 16 << 20,
//	  TimeoutSecond:    5,
//	  Transport:        common.ClientTransportConfig{Endpoints: []string{"localhost:8080"}},
//	}, tcp.NewTCPClientTransport())
//	if err != nil {
//	  log.Fatal(err)
//	}
//	defer enc.Close()
//
//	for _, res := range client.EncodeAll(enc, []string{"aaabbc", "zzzz"}, 4) {
//	  fmt.Print(string(res.Report))
//	}
//
// Thread Safety:
//
//	All clients are safe for concurrent use. Every request uses its own connection.
package client
