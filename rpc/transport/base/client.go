package base

import (
	"errors"
	"fmt"
	"github.com/ValentinKolb/sfc/rpc/common"
	"github.com/ValentinKolb/sfc/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"math/rand"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

var Logger = logger.GetLogger("transport/rpc")

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IClientConnector defines the interface for transport-specific connection operations
type IClientConnector interface {
	// Connect establishes a single connection to the endpoint
	Connect(endpoint string) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an established connection
	UpgradeConnection(conn net.Conn, config common.ClientConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// clientTransport implements the core client transport functionality
// independent of the specific transport medium (unix, tcp, etc.)
// Every Send opens its own connection, performs one exchange and closes it again.
type clientTransport struct {
	connector    IClientConnector
	config       common.ClientConfig
	configMu     sync.RWMutex
	connected    bool
	nextEndpoint uint64 // Atomic counter for Round Robin
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseClientTransport creates a new base client transport with the specified connector
func NewBaseClientTransport(connector IClientConnector) transport.IRPCClientTransport {
	return &clientTransport{
		connector: connector,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect(config common.ClientConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	t.configMu.Lock()
	defer t.configMu.Unlock()

	t.config = config
	t.connected = true

	Logger.Infof("Using %s transport with %d endpoints", t.connector.GetName(), len(config.Transport.Endpoints))
	return nil
}

func (t *clientTransport) Send(req []byte) ([]byte, error) {
	t.configMu.RLock()
	config := t.config
	connected := t.connected
	t.configMu.RUnlock()

	if !connected {
		return nil, fmt.Errorf("transport is not connected")
	}
	if len(req) > config.MaxPayloadBytes {
		return nil, fmt.Errorf("%w: request of %d bytes, limit is %d", common.ErrFrameTooLarge, len(req), config.MaxPayloadBytes)
	}

	// Retry logic with exponential backoff
	var lastErr error

	// We always try at least once, and up to maxRetries times
	maxRetries := config.Transport.RetryCount
	if maxRetries < 1 {
		maxRetries = 1
	}

	// Initial backoff duration in milliseconds
	backoffMs := 50

	for i := 0; i < maxRetries; i++ {
		endpoint := t.nextEndpointFor(config)

		data, err := t.exchange(endpoint, config, req)
		if err == nil {
			return data, nil
		}

		lastErr = err
		Logger.Debugf("Request attempt %d/%d to %s failed: %v", i+1, maxRetries, endpoint, err)

		// Oversized responses will not shrink on retry
		if errors.Is(err, common.ErrFrameTooLarge) || errors.Is(err, common.ErrNegativeLength) {
			break
		}

		if i < maxRetries-1 {
			// Exponential backoff with a small random jitter (+-10%)
			jitter := float64(backoffMs) * (0.9 + 0.2*rand.Float64())
			time.Sleep(time.Duration(jitter) * time.Millisecond)
			backoffMs *= 2
		}
	}

	if maxRetries == 1 {
		return nil, lastErr
	}
	return nil, fmt.Errorf("failed to send request after %d attempts: %w", maxRetries, lastErr)
}

func (t *clientTransport) Close() error {
	t.configMu.Lock()
	defer t.configMu.Unlock()

	t.connected = false
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// nextEndpointFor selects the next endpoint via Round Robin
func (t *clientTransport) nextEndpointFor(config common.ClientConfig) string {
	endpoints := config.Transport.Endpoints
	if len(endpoints) == 1 {
		return endpoints[0]
	}
	index := atomic.AddUint64(&t.nextEndpoint, 1) % uint64(len(endpoints))
	return endpoints[index]
}

// exchange performs one complete request/response exchange on a fresh connection
func (t *clientTransport) exchange(endpoint string, config common.ClientConfig, req []byte) ([]byte, error) {
	conn, err := t.connector.Connect(endpoint)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) {
			return nil, fmt.Errorf("failed to resolve %s: %w", endpoint, err)
		}
		return nil, fmt.Errorf("failed to connect to %s: %w", endpoint, err)
	}
	defer conn.Close()

	// Upgrade the connection with protocol-specific settings
	if err := t.connector.UpgradeConnection(conn, config); err != nil {
		return nil, fmt.Errorf("failed to upgrade connection to %s: %w", endpoint, err)
	}

	// One deadline covers the whole exchange
	if config.TimeoutSecond > 0 {
		timeout := time.Duration(config.TimeoutSecond) * time.Second
		if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
			return nil, fmt.Errorf("failed to set deadline: %w", err)
		}
	}

	if err := writeFrame(conn, req); err != nil {
		return nil, fmt.Errorf("error writing request: %w", err)
	}

	resp, err := readFrame(conn, config.MaxResponseBytes)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}
	return resp, nil
}
