package http

import (
	"bytes"
	"fmt"
	"github.com/ValentinKolb/sfc/rpc/common"
	"github.com/ValentinKolb/sfc/rpc/transport"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"
)

func NewHttpClientTransport() transport.IRPCClientTransport {
	return &httpClientTransport{}
}

type httpClientTransport struct {
	serverURLs  []*url.URL
	client      *http.Client
	counter     uint32
	retryCount  int
	maxPayload  int
	maxResponse int
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (transport *httpClientTransport) Connect(config common.ClientConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	// Parse each server URL
	parsedURLs := make([]*url.URL, len(config.Transport.Endpoints))
	for i, server := range config.Transport.Endpoints {
		if !strings.Contains(server, "://") {
			server = "http://" + server
		}
		parsedURL, err := url.Parse(server)
		if err != nil {
			return err
		}
		parsedURLs[i] = parsedURL
	}

	// Create client with default transport
	transport.client = &http.Client{
		Timeout: time.Duration(config.TimeoutSecond) * time.Second,
	}
	transport.serverURLs = parsedURLs
	transport.counter = 0
	transport.retryCount = config.Transport.RetryCount
	transport.maxPayload = config.MaxPayloadBytes
	transport.maxResponse = config.MaxResponseBytes

	return nil
}

func (transport *httpClientTransport) Send(req []byte) (resp []byte, err error) {
	// Check if the transport is initialized
	if transport.client == nil {
		return nil, fmt.Errorf("http transport not initialized")
	}
	if len(req) > transport.maxPayload {
		return nil, fmt.Errorf("%w: request of %d bytes, limit is %d", common.ErrFrameTooLarge, len(req), transport.maxPayload)
	}

	// We always try at least once, and up to retryCount times
	retries := transport.retryCount
	if retries < 1 {
		retries = 1
	}

	// Initial backoff duration in milliseconds
	backoffMs := 50

	var httpResponse *http.Response
	for i := 0; i < retries; i++ {
		requestURL := transport.nextEndpoint()

		httpResponse, err = transport.client.Post(requestURL, "text/plain", bytes.NewReader(req))
		if err == nil {
			break
		}
		Logger.Debugf("Request attempt %d/%d to %s failed: %v", i+1, retries, requestURL, err)

		if i < retries-1 {
			// Exponential backoff with a small random jitter (+-10%)
			jitter := float64(backoffMs) * (0.9 + 0.2*rand.Float64())
			time.Sleep(time.Duration(jitter) * time.Millisecond)
			backoffMs *= 2
		}
	}
	if err != nil {
		if retries == 1 {
			return nil, err
		}
		return nil, fmt.Errorf("failed to send request after %d attempts: %w", retries, err)
	}
	defer httpResponse.Body.Close()

	// Check if the response status code is OK
	if httpResponse.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http error: %s", httpResponse.Status)
	}

	// Read the response body, one byte more than allowed to detect oversized responses
	body, err := io.ReadAll(io.LimitReader(httpResponse.Body, int64(transport.maxResponse)+1))
	if err != nil {
		return nil, err
	}
	if len(body) > transport.maxResponse {
		return nil, fmt.Errorf("%w: limit is %d", common.ErrFrameTooLarge, transport.maxResponse)
	}
	return body, nil
}

func (transport *httpClientTransport) Close() error {
	if transport.client != nil {
		transport.client.CloseIdleConnections()
	}

	transport.client = nil
	transport.serverURLs = nil

	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// nextEndpoint selects the request URL of the next server via Round Robin
func (transport *httpClientTransport) nextEndpoint() string {
	idx := atomic.AddUint32(&transport.counter, 1) % uint32(len(transport.serverURLs))
	return transport.serverURLs[idx].JoinPath(EncodePath).String()
}
