package encode

import (
	"encoding/csv"
	"fmt"
	"github.com/ValentinKolb/sfc/cmd/util"
	"github.com/ValentinKolb/sfc/rpc/client"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"math/rand"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

var (
	benchCmd = &cobra.Command{
		Use:     "bench",
		Short:   "Performance testing tool for sfc servers",
		Long:    "Sends the same message many times from concurrent workers and reports the latency distribution and the throughput",
		RunE:    runBench,
		PreRunE: processBenchConfig,
	}
	benchRequests    = 1000
	benchThreads     = 10
	benchMessageSize = 64
)

func init() {
	// add flags
	key := "requests"
	benchCmd.Flags().Int(key, 1000, util.WrapString("Total number of requests to send"))
	key = "threads"
	benchCmd.Flags().Int(key, 10, util.WrapString("Number of concurrent workers"))
	key = "message-size"
	benchCmd.Flags().Int(key, 64, util.WrapString("Size of the random message in bytes"))
	key = "csv"
	benchCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processBenchConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	benchRequests = viper.GetInt("requests")
	benchThreads = viper.GetInt("threads")
	benchMessageSize = viper.GetInt("message-size")

	if benchRequests <= 0 || benchThreads <= 0 || benchMessageSize < 0 {
		return fmt.Errorf("requests and threads must be positive, message-size must not be negative")
	}
	return nil
}

// benchResult is the summary of one benchmark run
type benchResult struct {
	Requests   int64
	Errors     int64
	Mean       time.Duration
	P50        time.Duration
	P99        time.Duration
	Max        time.Duration
	Throughput float64
}

func runBench(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Performance testing tool for sfc servers")

	// Print configuration
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration:")
	if viper.GetBool("local") {
		fmt.Fprintln(out, "local encoder")
	} else {
		fmt.Fprintln(out, util.GetClientConfig().String())
	}
	fmt.Fprintf(out, "Requests: %d, Threads: %d, Message size: %d bytes\n", benchRequests, benchThreads, benchMessageSize)
	fmt.Fprintln(out)

	res := benchmark(encoder.Encode, benchMessage(benchMessageSize), benchRequests, benchThreads)
	printBenchResult(cmd, res)

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Fprintf(out, "\nExporting results to CSV: %s\n", csvPath)
		if err := writeBenchCSV(csvPath, res); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Fprintln(out, "Export complete")
	}

	if res.Errors == res.Requests {
		return fmt.Errorf("all %d requests failed", res.Requests)
	}
	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// benchMessage creates a random printable message with a skewed symbol distribution
func benchMessage(size int) []byte {
	const alphabet = "eeeeeeeetttttaaaooiinnsshrdlcumwfgypbvkjxqz"
	rng := rand.New(rand.NewSource(1))
	msg := make([]byte, size)
	for i := range msg {
		msg[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return msg
}

// benchmark sends msg requests times from threads workers and measures every request
func benchmark(encode func([]byte) ([]byte, error), msg []byte, requests, threads int) benchResult {
	timer := gometrics.NewCustomTimer(
		gometrics.NewHistogram(gometrics.NewUniformSample(min(requests, 100_000))),
		gometrics.NewMeter(),
	)
	defer timer.Stop()

	var next, errs atomic.Int64
	var wg sync.WaitGroup

	start := time.Now()
	for w := 0; w < threads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			own := make([]byte, len(msg))
			copy(own, msg)

			for next.Add(1) <= int64(requests) {
				t := time.Now()
				if _, err := encode(own); err != nil {
					errs.Add(1)
					client.Logger.Debugf("bench request failed: %v", err)
					continue
				}
				timer.UpdateSince(t)
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	snapshot := timer.Snapshot()
	ps := snapshot.Percentiles([]float64{0.5, 0.99})
	return benchResult{
		Requests:   int64(requests),
		Errors:     errs.Load(),
		Mean:       time.Duration(snapshot.Mean()),
		P50:        time.Duration(ps[0]),
		P99:        time.Duration(ps[1]),
		Max:        time.Duration(snapshot.Max()),
		Throughput: float64(snapshot.Count()) / max(elapsed.Seconds(), 1e-9),
	}
}

// printBenchResult prints the result of a benchmark in a formatted way
func printBenchResult(cmd *cobra.Command, r benchResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-12s%d (%d failed)\n", "requests", r.Requests, r.Errors)
	fmt.Fprintf(out, "%-12s%s\n", "mean", r.Mean)
	fmt.Fprintf(out, "%-12s%s\n", "p50", r.P50)
	fmt.Fprintf(out, "%-12s%s\n", "p99", r.P99)
	fmt.Fprintf(out, "%-12s%s\n", "max", r.Max)
	fmt.Fprintf(out, "%-12s%.0f ops/sec\n", "throughput", r.Throughput)
}

// writeBenchCSV writes the benchmark result to a CSV file
func writeBenchCSV(csvPath string, r benchResult) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	rows := [][]string{
		{
			"Requests", "Errors", "MeanNs", "P50Ns", "P99Ns", "MaxNs", "OpsPerSec",
			"Threads", "MessageSize", "Serializer", "Transport", "Local",
		},
		{
			strconv.FormatInt(r.Requests, 10),
			strconv.FormatInt(r.Errors, 10),
			strconv.FormatInt(int64(r.Mean), 10),
			strconv.FormatInt(int64(r.P50), 10),
			strconv.FormatInt(int64(r.P99), 10),
			strconv.FormatInt(int64(r.Max), 10),
			fmt.Sprintf("%.0f", r.Throughput),
			strconv.Itoa(benchThreads),
			strconv.Itoa(benchMessageSize),
			viper.GetString("serializer"),
			viper.GetString("transport"),
			strconv.FormatBool(viper.GetBool("local")),
		},
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %v", err)
	}
	return nil
}
