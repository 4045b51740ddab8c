package client

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ValentinKolb/sfc/rpc/serializer"
	"github.com/stretchr/testify/require"
)

// delayedEncoder answers with the upper-cased message after a random delay
type delayedEncoder struct {
	inflight atomic.Int32
	peak     atomic.Int32
}

func (e *delayedEncoder) Encode(msg []byte) ([]byte, error) {
	n := e.inflight.Add(1)
	defer e.inflight.Add(-1)
	for {
		p := e.peak.Load()
		if n <= p || e.peak.CompareAndSwap(p, n) {
			break
		}
	}

	time.Sleep(time.Duration(rand.Intn(3)) * time.Millisecond)
	if string(msg) == "fail" {
		return nil, errors.New("failed")
	}
	return []byte(strings.ToUpper(string(msg))), nil
}

func (e *delayedEncoder) Close() error { return nil }

func TestEncodeAll(t *testing.T) {
	t.Run("Order", func(t *testing.T) {
		messages := make([]string, 100)
		for i := range messages {
			messages[i] = fmt.Sprintf("message-%d", i)
		}

		enc := &delayedEncoder{}
		results := EncodeAll(enc, messages, 8)
		require.Len(t, results, len(messages))

		for i, res := range results {
			require.NoError(t, res.Err)
			require.Equal(t, i, res.Index)
			require.Equal(t, messages[i], res.Message)
			require.Equal(t, strings.ToUpper(messages[i]), string(res.Report))
		}
		require.LessOrEqual(t, enc.peak.Load(), int32(8))
	})

	t.Run("Errors", func(t *testing.T) {
		results := EncodeAll(&delayedEncoder{}, []string{"ok", "fail", "ok"}, 2)
		require.NoError(t, results[0].Err)
		require.Error(t, results[1].Err)
		require.NoError(t, results[2].Err)
	})

	t.Run("Empty", func(t *testing.T) {
		require.Empty(t, EncodeAll(&delayedEncoder{}, nil, 4))
	})
}

func TestLocalEncoder(t *testing.T) {
	enc := NewLocalEncoder(serializer.NewTextSerializer())
	defer enc.Close()

	msg := []byte("aaabbc")
	report, err := enc.Encode(msg)
	require.NoError(t, err)
	msg[0] = 'x'

	require.Contains(t, string(report), "Message: aaabbc\n")
	require.Contains(t, string(report), "Encoded message: 0001010110\n")

	results := EncodeAll(enc, []string{"zzzz", "abcabc"}, 0)
	require.Contains(t, string(results[0].Report), "Symbol: z, Frequency: 4, Shannon code: 0\n")
	require.Contains(t, string(results[1].Report), "Message: abcabc\n")
}
