package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Socket configuration (shared by server and client)
// --------------------------------------------------------------------------

// SocketConf holds socket buffer settings, zero means OS default
type SocketConf struct {
	WriteBufferSize int
	ReadBufferSize  int
}

// TCPConf holds TCP specific settings
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
	// TCPLingerSec < 0 keeps the OS default
	TCPLingerSec int
}

// --------------------------------------------------------------------------
// RPC server configuration struct
// --------------------------------------------------------------------------

// ServerTransportConfig holds the settings of the server transport layer
type ServerTransportConfig struct {
	// Endpoint is the address to listen on (host:port, socket path, ...)
	Endpoint string
	SocketConf
	TCPConf
}

// ServerConfig holds all configuration parameters of the encoding server
type ServerConfig struct {
	// MaxPayloadBytes is the largest request payload the server accepts.
	// There is no default, it must be configured explicitly.
	MaxPayloadBytes int

	// TimeoutSecond bounds every read and write on a connection, 0 disables it
	TimeoutSecond int64

	// MetricsEndpoint is the address of the admin HTTP server, empty disables it
	MetricsEndpoint string

	// Transport settings
	Transport ServerTransportConfig

	// Logging configuration
	LogLevel string
}

// Validate checks the configuration for missing or invalid values
func (c *ServerConfig) Validate() error {
	if err := validateMaxPayload(c.MaxPayloadBytes); err != nil {
		return err
	}
	if c.Transport.Endpoint == "" {
		return fmt.Errorf("no endpoint configured")
	}
	if c.TimeoutSecond < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// RPC settings
	addSection("RPC Server")
	addField("Endpoint", c.Transport.Endpoint)
	addField("Max Payload", fmt.Sprintf("%d bytes", c.MaxPayloadBytes))
	addField("Timeout", formatTimeout(c.TimeoutSecond))

	// Socket settings
	addSection("Socket")
	addField("TCP No Delay", fmt.Sprintf("%t", c.Transport.TCPNoDelay))
	addField("TCP Keep Alive", fmt.Sprintf("%d sec", c.Transport.TCPKeepAliveSec))
	addField("Read Buffer", fmt.Sprintf("%d bytes", c.Transport.ReadBufferSize))
	addField("Write Buffer", fmt.Sprintf("%d bytes", c.Transport.WriteBufferSize))

	// Metrics
	addSection("Metrics")
	if c.MetricsEndpoint == "" {
		addField("Endpoint", "disabled")
	} else {
		addField("Endpoint", c.MetricsEndpoint)
	}

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

// ClientTransportConfig holds the settings of the client transport layer
type ClientTransportConfig struct {
	// Endpoints are used round robin, one connection per request
	Endpoints  []string
	RetryCount int
	SocketConf
	TCPConf
}

// ClientConfig holds all configuration parameters of the encoding client
type ClientConfig struct {
	// MaxPayloadBytes is the largest request payload the client sends
	MaxPayloadBytes int
	// MaxResponseBytes is the largest response payload the client accepts.
	// A report is always larger than its message, there is no default.
	MaxResponseBytes int
	TimeoutSecond    int
	Transport        ClientTransportConfig
}

// Validate checks the configuration for missing or invalid values
func (c *ClientConfig) Validate() error {
	if err := validateMaxPayload(c.MaxPayloadBytes); err != nil {
		return err
	}
	if c.MaxResponseBytes <= 0 {
		return ErrMaxResponseRequired
	}
	if c.MaxResponseBytes > MaxFramePayload {
		return fmt.Errorf("max response %d exceeds the protocol limit of %d bytes", c.MaxResponseBytes, MaxFramePayload)
	}
	if len(c.Transport.Endpoints) == 0 {
		return fmt.Errorf("no endpoints provided")
	}
	return nil
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Timeout", formatTimeout(int64(c.TimeoutSecond)))
	addField("Max Payload", fmt.Sprintf("%d bytes", c.MaxPayloadBytes))
	addField("Max Response", fmt.Sprintf("%d bytes", c.MaxResponseBytes))
	addField("Retry Count", strconv.Itoa(int(math.Max(1, float64(c.Transport.RetryCount)))))

	// Endpoints
	addSection("Endpoints")
	for i, endpoint := range c.Transport.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func validateMaxPayload(n int) error {
	if n <= 0 {
		return ErrMaxPayloadRequired
	}
	if n > MaxFramePayload {
		return fmt.Errorf("max payload %d exceeds the protocol limit of %d bytes", n, MaxFramePayload)
	}
	return nil
}

func formatTimeout(sec int64) string {
	if sec <= 0 {
		return "none"
	}
	return fmt.Sprintf("%d sec", sec)
}
