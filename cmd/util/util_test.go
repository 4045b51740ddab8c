package util

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestWrapString(t *testing.T) {
	text := strings.Repeat("word ", 30)
	for _, line := range strings.Split(WrapString(text), "\n") {
		require.LessOrEqual(t, len(line), Wrap)
	}
	require.Equal(t, "short text", WrapString("  short   text "))
}

func TestConfigFromViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("max-payload", 4096)
	viper.Set("max-response", 65536)
	viper.Set("timeout", 3)
	viper.Set("transport-endpoints", "a:1,b:2")
	viper.Set("transport-read-buffer", 2)
	viper.Set("endpoint", "127.0.0.1:9000")

	c := GetClientConfig()
	require.Equal(t, 4096, c.MaxPayloadBytes)
	require.Equal(t, 65536, c.MaxResponseBytes)
	require.Equal(t, []string{"a:1", "b:2"}, c.Transport.Endpoints)
	require.Equal(t, 2048, c.Transport.ReadBufferSize)
	require.NoError(t, c.Validate())

	s := GetServerConfig()
	require.Equal(t, int64(3), s.TimeoutSecond)
	require.Equal(t, "127.0.0.1:9000", s.Transport.Endpoint)
	require.NoError(t, s.Validate())
}

func TestFactories(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	for _, name := range []string{"text", "json"} {
		viper.Set("serializer", name)
		s, err := GetSerializer()
		require.NoError(t, err)
		require.Equal(t, name, s.Name())
	}
	viper.Set("serializer", "gob")
	_, err := GetSerializer()
	require.Error(t, err)

	for _, name := range []string{"tcp", "unix", "http"} {
		viper.Set("transport", name)
		_, err := GetTransport()
		require.NoError(t, err)
		_, err = GetServerTransport()
		require.NoError(t, err)
	}
	viper.Set("transport", "udp")
	_, err = GetTransport()
	require.Error(t, err)
}
