// Package unix implements the Unix domain socket transport of the encoding service.
// It uses the same framing and connection dispatcher as the TCP transport, see the
// base package. The endpoint is the path of the socket file, an existing file at that
// path is removed before listening.
package unix
