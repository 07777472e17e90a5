// Package fse provides tabulated Asymmetric Numeral Systems (tANS) entropy
// coding: a block compressor/decompressor that encodes a sequence of
// discrete symbols against a quantized probability distribution.
//
// # Overview
//
// FSE (Finite State Entropy) computes an empirical distribution over an
// input block, normalizes it to a power-of-two total mass, and drives an
// ANS state machine over the symbols using that distribution. It is a
// building block for larger compressors (it backs the literal/length/
// distance coders in zstd and lz4), not a general-purpose archiver.
//
// # When to Use FSE
//
// FSE is a good fit when:
//   - you control both the compressor and decompressor and want a fast,
//     small-alphabet entropy stage (bytes, small integers)
//   - the distribution is block-static (no adaptive/streaming model)
//   - you need bit-exact, deterministic output across platforms
//
// # When NOT to Use FSE
//
// FSE is not suitable for:
//   - long-range match finding (pair it with an LZ-style front end, e.g.
//     zstd, for that)
//   - data whose distribution changes faster than block granularity
//   - arithmetic-coding-level compression ratios on skewed alphabets (see
//     range coding for that tradeoff)
//
// # Basic Usage
//
//	compressed, err := fse.Compress(src)
//	if err != nil {
//		// handle error
//	}
//	dst := make([]byte, len(src))
//	if _, err := fse.Decompress(dst, len(src), compressed); err != nil {
//		// handle error
//	}
//
//	// Tune tableLog/alphabet size, or enable the interleaved encoder:
//	compressed, err = fse.CompressWith(src, []fse.Option{
//		fse.WithTableLog(11),
//		fse.WithILP(true),
//	})
//
//	// Attach an observer to capture per-block stats without logging by default:
//	compressed, err = fse.CompressWith(src, []fse.Option{
//		fse.WithObserver(fse.NewLogrusObserver(nil)),
//	})
//
// # Performance Characteristics
//
// Compression and decompression are both single-pass over the block and
// single-threaded; table construction is O(2^tableLog + nbSymbols) and
// the hot loop is O(srcSize). Safe decompression (DecompressSafe) adds a
// bounds check per read; prefer Decompress once the producer is trusted.
package fse
