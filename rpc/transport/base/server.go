package base

import (
	"errors"
	"fmt"
	"github.com/ValentinKolb/sfc/rpc/common"
	"github.com/ValentinKolb/sfc/rpc/transport"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IServerConnector defines the interface for transport-specific server operations
type IServerConnector interface {
	// Listen creates a listener and returns it
	Listen(config common.ServerConfig) (net.Listener, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an accepted connection
	UpgradeConnection(conn net.Conn, config common.ServerConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverTransport implements the connection dispatcher independent of the transport medium
type serverTransport struct {
	connector IServerConnector
	handler   transport.ServerHandleFunc
	metrics   *common.ServerMetrics
	config    common.ServerConfig

	listener   net.Listener
	listenerMu sync.Mutex

	contexts *xsync.MapOf[uuid.UUID, *connContext] // every connection that has not been reaped yet
	reaper   *reaper
	inflight sync.WaitGroup
	closed   atomic.Bool
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// ShutdownGracePeriod bounds how long Close waits for connections that are
// processing or writing before their sockets are closed
var ShutdownGracePeriod = 10 * time.Second

// NewBaseServerTransport creates a new base server transport with the specified connector
func NewBaseServerTransport(connector IServerConnector) transport.IRPCServerTransport {
	contexts := xsync.NewMapOf[uuid.UUID, *connContext]()
	t := &serverTransport{
		connector: connector,
		contexts:  contexts,
	}
	t.reaper = newReaper(contexts, t.onReap)
	return t
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *serverTransport) RegisterMetrics(metrics *common.ServerMetrics) {
	t.metrics = metrics
}

func (t *serverTransport) Addr() net.Addr {
	t.listenerMu.Lock()
	defer t.listenerMu.Unlock()

	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

func (t *serverTransport) Listen(config common.ServerConfig) error {
	if t.handler == nil {
		return fmt.Errorf("no handler registered")
	}
	if err := config.Validate(); err != nil {
		return err
	}
	t.config = config

	// Create listener using the connector
	listener, err := t.connector.Listen(config)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	t.listenerMu.Lock()
	if t.closed.Load() {
		t.listenerMu.Unlock()
		listener.Close()
		return nil
	}
	t.listener = listener
	t.listenerMu.Unlock()

	// Start reclaiming finished connections
	go t.reaper.run()

	Logger.Infof("Starting %s server on %s", t.connector.GetName(), listener.Addr())

	// Accept connections, the loop never waits for a connection to be processed
	backoff := 5 * time.Millisecond
	for {
		conn, err := listener.Accept()
		if err != nil {
			if t.closed.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}

			// Transient accept errors (e.g. too many open files), retry after a short pause
			Logger.Errorf("Accept error: %v", err)
			time.Sleep(backoff)
			if backoff < time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = 5 * time.Millisecond

		if err := t.connector.UpgradeConnection(conn, t.config); err != nil {
			Logger.Warningf("Failed to upgrade connection from %s: %v", conn.RemoteAddr(), err)
		}

		// Register the connection before it is handed off so the reaper always finds it
		t.listenerMu.Lock()
		if t.closed.Load() {
			t.listenerMu.Unlock()
			conn.Close()
			return nil
		}
		cc := newConnContext(conn)
		t.contexts.Store(cc.id, cc)
		t.inflight.Add(1)
		t.listenerMu.Unlock()

		t.metrics.ConnectionAccepted()
		go t.handleConnection(cc)
	}
}

func (t *serverTransport) Close() error {
	if t.closed.Swap(true) {
		return nil
	}

	// Stop accepting new connections
	t.listenerMu.Lock()
	var err error
	if t.listener != nil {
		err = t.listener.Close()
	}
	started := t.listener != nil
	t.listenerMu.Unlock()

	// Connections still waiting for their request are ended right away
	t.contexts.Range(func(_ uuid.UUID, cc *connContext) bool {
		if s := cc.State(); s == StateAccepted || s == StateReading {
			_ = cc.conn.SetReadDeadline(time.Now())
		}
		return true
	})

	// Wait for all in-flight connections before the final reclamation pass
	drained := make(chan struct{})
	go func() {
		t.inflight.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(ShutdownGracePeriod):
		Logger.Warningf("Connections still busy after %s, closing them", ShutdownGracePeriod)
		t.contexts.Range(func(_ uuid.UUID, cc *connContext) bool {
			if cc.State() != StateClosed {
				_ = cc.conn.Close()
			}
			return true
		})
		<-drained
	}
	if started {
		t.reaper.stop()
	}

	Logger.Infof("%s server stopped, %d connections accepted, %d reaped",
		t.connector.GetName(), t.metrics.Accepted(), t.metrics.Reaped())
	return err
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// handleConnection runs one complete exchange on its own goroutine
// Any failure ends only this connection, a panic is recovered and logged
func (t *serverTransport) handleConnection(cc *connContext) {
	defer func() {
		if r := recover(); r != nil {
			cc.err = fmt.Errorf("panic: %v", r)
		}
		cc.conn.Close()
		if cc.err != nil {
			t.metrics.ConnectionFailed()
			Logger.Errorf("Connection %s from %s failed in state %s: %v", cc.id, cc.remote, cc.State(), cc.err)
		}
		cc.setState(StateClosed)
		t.reaper.notify()
		t.inflight.Done()
	}()

	timeout := time.Duration(t.config.TimeoutSecond) * time.Second

	// Read the request
	cc.setState(StateReading)
	if timeout > 0 {
		if err := cc.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			cc.err = fmt.Errorf("failed to set read deadline: %w", err)
			return
		}
	}
	// Close may have run between the state change and the deadline above
	if t.closed.Load() {
		Logger.Debugf("Connection %s dropped, server is shutting down", cc.id)
		return
	}
	req, err := readFrame(cc.conn, t.config.MaxPayloadBytes)
	if err == io.EOF {
		Logger.Debugf("Connection %s closed by client before sending a request", cc.id)
		return
	}
	if err != nil && t.closed.Load() {
		Logger.Debugf("Connection %s dropped while reading, server is shutting down: %v", cc.id, err)
		return
	}
	if err != nil {
		if errors.Is(err, common.ErrFrameTooLarge) || errors.Is(err, common.ErrNegativeLength) {
			t.metrics.FrameRejected()
		}
		cc.err = fmt.Errorf("error reading request: %w", err)
		return
	}

	// Process the request
	cc.setState(StateProcessing)
	start := time.Now()
	resp := t.handler(req)
	took := time.Since(start)
	Logger.Debugf("Processed request of %d bytes from %s took %s", len(req), cc.remote, took)

	// Write the response
	cc.setState(StateWriting)
	if timeout > 0 {
		if err := cc.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
			cc.err = fmt.Errorf("failed to set write deadline: %w", err)
			return
		}
	}
	if err := writeFrame(cc.conn, resp); err != nil {
		cc.err = fmt.Errorf("error writing response: %w", err)
		return
	}

	t.metrics.RequestProcessed(len(req), len(resp), took)
}

// onReap is called by the reaper for every reclaimed connection
func (t *serverTransport) onReap(cc *connContext) {
	t.metrics.ConnectionReaped(cc.started)
	Logger.Debugf("Reaped connection %s from %s after %s", cc.id, cc.remote, time.Since(cc.started))
}
