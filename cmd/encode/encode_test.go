package encode

import (
	"bytes"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ValentinKolb/sfc/rpc/client"
	"github.com/ValentinKolb/sfc/rpc/serializer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestReadMessages(t *testing.T) {
	t.Run("SkipsEmptyLines", func(t *testing.T) {
		msgs, err := readMessages(strings.NewReader("aaabbc\n\nzzzz\r\n\n"), 1024)
		require.NoError(t, err)
		require.Equal(t, []string{"aaabbc", "zzzz"}, msgs)
	})

	t.Run("NoTrailingNewline", func(t *testing.T) {
		msgs, err := readMessages(strings.NewReader("abc"), 1024)
		require.NoError(t, err)
		require.Equal(t, []string{"abc"}, msgs)
	})

	t.Run("LineTooLong", func(t *testing.T) {
		_, err := readMessages(strings.NewReader(strings.Repeat("x", 100)+"\n"), 16)
		require.Error(t, err)
	})
}

func TestRunLocal(t *testing.T) {
	encoder = client.NewLocalEncoder(serializer.NewTextSerializer())
	viper.Set("local", true)
	t.Cleanup(func() {
		encoder = nil
		viper.Reset()
	})

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("zzzz\n\naaabbc\n"))

	require.NoError(t, run(cmd, nil))

	report := out.String()
	require.Less(t, strings.Index(report, "Message: zzzz"), strings.Index(report, "Message: aaabbc"))
	require.Contains(t, report, "Encoded message: 0001010110\n")
}

func TestBenchmark(t *testing.T) {
	var calls atomic.Int64
	encode := func(msg []byte) ([]byte, error) {
		if calls.Add(1)%10 == 0 {
			return nil, errors.New("failed")
		}
		time.Sleep(100 * time.Microsecond)
		return msg, nil
	}

	res := benchmark(encode, benchMessage(32), 100, 4)
	require.Equal(t, int64(100), calls.Load())
	require.Equal(t, int64(100), res.Requests)
	require.Equal(t, int64(10), res.Errors)
	require.Greater(t, res.Mean, time.Duration(0))
	require.LessOrEqual(t, res.P50, res.P99)
	require.LessOrEqual(t, res.P99, res.Max)
	require.Greater(t, res.Throughput, 0.0)
}

func TestBenchMessage(t *testing.T) {
	require.Len(t, benchMessage(128), 128)
	require.Equal(t, benchMessage(64), benchMessage(64))
}
