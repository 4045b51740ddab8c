package client

import (
	"fmt"
	"runtime"
	"sync"
)

// BatchResult holds the outcome for one message of a batch
type BatchResult struct {
	Index   int
	Message string
	Report  []byte
	Err     error
}

// EncodeAll encodes all messages concurrently with at most parallel requests in flight
// (parallel <= 0 uses GOMAXPROCS). The returned slice has one entry per message in
// input order, independent of the order in which the requests complete.
func EncodeAll(enc IEncoderClient, messages []string, parallel int) []BatchResult {
	if parallel <= 0 {
		parallel = runtime.GOMAXPROCS(0)
	}

	results := make([]BatchResult, len(messages))
	sem := make(chan struct{}, parallel)

	var wg sync.WaitGroup
	for i, msg := range messages {
		wg.Add(1)
		sem <- struct{}{}

		// every worker owns its input, the slot at index i is written by this worker only
		go func(i int, msg []byte) {
			defer func() {
				if r := recover(); r != nil {
					results[i].Err = fmt.Errorf("panic: %v", r)
				}
				<-sem
				wg.Done()
			}()

			results[i].Index = i
			results[i].Message = string(msg)
			results[i].Report, results[i].Err = enc.Encode(msg)
			if results[i].Err != nil {
				Logger.Debugf("Encoding message %d failed: %v", i, results[i].Err)
			}
		}(i, []byte(msg))
	}
	wg.Wait()

	return results
}
