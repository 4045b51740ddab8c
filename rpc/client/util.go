package client

import (
	"github.com/lni/dragonboat/v4/logger"
)

var (
	Logger = logger.GetLogger("client")
)

// IEncoderClient produces the report for a single message
type IEncoderClient interface {
	// Encode returns the report for msg
	// The message is copied before Encode returns, the caller may reuse its buffer
	Encode(msg []byte) ([]byte, error)

	// Close releases all resources of the client
	Close() error
}
