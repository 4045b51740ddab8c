package http

import (
	"bytes"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/ValentinKolb/sfc/rpc/common"
	"github.com/ValentinKolb/sfc/rpc/transport"
	"github.com/stretchr/testify/require"
)

const testMaxPayload = 64

func upperHandler(req []byte) []byte { return bytes.ToUpper(req) }

func startHTTPServer(t *testing.T, handler transport.ServerHandleFunc) string {
	t.Helper()

	srv := NewHttpServerTransport()
	srv.RegisterHandler(handler)
	srv.RegisterMetrics(common.NewServerMetrics())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(common.ServerConfig{
			MaxPayloadBytes: testMaxPayload,
			Transport:       common.ServerTransportConfig{Endpoint: "127.0.0.1:0"},
		})
	}()
	require.Eventually(t, func() bool { return srv.Addr() != nil }, 2*time.Second, 5*time.Millisecond)

	t.Cleanup(func() {
		require.NoError(t, srv.Close())
		require.NoError(t, <-errCh)
	})
	return srv.Addr().String()
}

func newHTTPClient(t *testing.T, maxResponse, retries int, endpoints ...string) transport.IRPCClientTransport {
	t.Helper()
	c := NewHttpClientTransport()
	require.NoError(t, c.Connect(common.ClientConfig{
		MaxPayloadBytes:  testMaxPayload,
		MaxResponseBytes: maxResponse,
		TimeoutSecond:    5,
		Transport:        common.ClientTransportConfig{Endpoints: endpoints, RetryCount: retries},
	}))
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestHTTPTransport(t *testing.T) {
	addr := startHTTPServer(t, upperHandler)

	t.Run("RoundTrip", func(t *testing.T) {
		c := newHTTPClient(t, testMaxPayload, 1, addr)
		resp, err := c.Send([]byte("hello"))
		require.NoError(t, err)
		require.Equal(t, "HELLO", string(resp))
	})

	t.Run("EmptyBody", func(t *testing.T) {
		c := newHTTPClient(t, testMaxPayload, 1, "http://"+addr)
		resp, err := c.Send([]byte{})
		require.NoError(t, err)
		require.Empty(t, resp)
	})

	t.Run("RequestTooLarge", func(t *testing.T) {
		resp, err := http.Post("http://"+addr+EncodePath, "text/plain", strings.NewReader(strings.Repeat("x", testMaxPayload+1)))
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

		c := newHTTPClient(t, testMaxPayload, 1, addr)
		_, err = c.Send([]byte(strings.Repeat("x", testMaxPayload+1)))
		require.ErrorIs(t, err, common.ErrFrameTooLarge)
	})

	t.Run("ResponseTooLarge", func(t *testing.T) {
		c := newHTTPClient(t, 4, 3, addr)
		_, err := c.Send([]byte("hello"))
		require.ErrorIs(t, err, common.ErrFrameTooLarge)
	})

	t.Run("WrongMethod", func(t *testing.T) {
		resp, err := http.Get("http://" + addr + EncodePath)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

// TestHTTPResponseLargerThanRequestLimit tests that the response bound is separate from the request bound
func TestHTTPResponseLargerThanRequestLimit(t *testing.T) {
	addr := startHTTPServer(t, func(req []byte) []byte { return bytes.Repeat(req, 10) })
	c := newHTTPClient(t, 10*testMaxPayload, 1, addr)

	req := []byte(strings.Repeat("ab", testMaxPayload/2))
	resp, err := c.Send(req)
	require.NoError(t, err)
	require.Equal(t, bytes.Repeat(req, 10), resp)
}

// TestHTTPRetryRotatesEndpoints tests that a retry goes to the next endpoint
func TestHTTPRetryRotatesEndpoints(t *testing.T) {
	live := startHTTPServer(t, upperHandler)

	// reserve a port and close it again so nothing listens there
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	dead := l.Addr().String()
	require.NoError(t, l.Close())

	// the first request starts at the second endpoint
	c := newHTTPClient(t, testMaxPayload, 2, live, dead)
	for i := 0; i < 4; i++ {
		resp, err := c.Send([]byte("hi"))
		require.NoError(t, err)
		require.Equal(t, "HI", string(resp))
	}

	// without retries every second request hits the dead endpoint
	single := newHTTPClient(t, testMaxPayload, 1, live, dead)
	_, err = single.Send([]byte("hi"))
	require.Error(t, err)
}

func TestHTTPClientNotConnected(t *testing.T) {
	_, err := NewHttpClientTransport().Send([]byte("x"))
	require.Error(t, err)
}
