// Package cmd implements the command-line interface of sfc, the Shannon-Fano coding
// service. It provides commands for running the server and for sending messages to it.
//
// The package is organized into several subpackages:
//
//   - serve: Command for starting and configuring the sfc server
//   - encode: Commands for encoding messages (remote or local) and for load testing a server
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See sfc -help for a list of all commands.
package cmd
