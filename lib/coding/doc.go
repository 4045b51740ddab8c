// Package coding implements Shannon-Fano coding of a single message.
//
// The package focuses on:
//   - Counting byte frequencies of a message
//   - Building a canonical, prefix-free code table from those frequencies
//   - Encoding the message into a bit string and packing it into bytes
//
// Key Components:
//
//   - FrequencyTable: occurrence count per distinct byte of a message. Its Ordered
//     method yields the canonical symbol order (descending frequency, ties broken by
//     descending byte value). This order is load-bearing: the code construction
//     consumes it as the accumulation order of the cumulative probability.
//
//   - CodeTable: byte to code mapping built by BuildCodeTable. Each code is the
//     binary expansion of the symbol's cumulative probability, truncated to
//     ceil(-log2(p)) bits (at least one bit).
//
//   - Encode / Pack: concatenation of codes in message order, and its byte packed form.
//
//   - Analyze: runs the whole pipeline and returns a Result that owns every
//     intermediate structure. Nothing is cached or shared between calls.
//
// Usage Example:
//
//	res := coding.Analyze([]byte("aaabbc"))
//	fmt.Println(res.Encoded) // 0001010110
//
// Thread Safety:
//
//	All functions are pure and safe for concurrent use. The returned tables are
//	owned by the caller.
package coding
