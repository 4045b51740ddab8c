package base

import (
	"github.com/google/uuid"
	"net"
	"sync/atomic"
	"time"
)

// ConnState is the state of a single connection
type ConnState uint32

const (
	StateAccepted   ConnState = iota // Connection accepted, not yet handled
	StateReading                     // Reading the request frame
	StateProcessing                  // Running the handler
	StateWriting                     // Writing the response frame
	StateClosed                      // Connection closed, waiting to be reaped
)

// String returns the string representation of a ConnState
func (s ConnState) String() string {
	switch s {
	case StateAccepted:
		return "accepted"
	case StateReading:
		return "reading"
	case StateProcessing:
		return "processing"
	case StateWriting:
		return "writing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// connContext is the execution context of one connection
// Everything but the state is owned by the goroutine handling the connection
type connContext struct {
	id      uuid.UUID
	conn    net.Conn
	remote  string
	started time.Time
	state   atomic.Uint32
	err     error
}

func newConnContext(conn net.Conn) *connContext {
	remote := "unknown"
	if addr := conn.RemoteAddr(); addr != nil {
		remote = addr.String()
	}
	return &connContext{
		id:      uuid.New(),
		conn:    conn,
		remote:  remote,
		started: time.Now(),
	}
}

// State returns the current state of the connection
//
// Thread-safety: This method is thread-safe.
func (c *connContext) State() ConnState {
	return ConnState(c.state.Load())
}

func (c *connContext) setState(s ConnState) {
	c.state.Store(uint32(s))
}
