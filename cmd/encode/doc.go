// Package encode implements the client commands of sfc: encoding messages with a remote
// server or in-process, and load testing a server.
package encode
