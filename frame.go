package fse

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// Block mode byte0 values (§4.9).
const (
	modeRaw    = 0
	modeSingle = 1
	// Normal-FSE mode is selected by the low two bits of byte0 equaling
	// frameNormal (2); byte0 itself is the header's first byte, shared
	// with the tableLog encoding, not a separate tag byte.
)

// Params configures a single compress call (§6, "compress_with").
type Params struct {
	NbSymbols int
	TableLog  int
	ILP       bool
	Observer  BlockObserver
}

// Option customizes Params.
type Option func(*Params)

// WithNbSymbols overrides the symbol alphabet cap (default MaxNbSymbols).
func WithNbSymbols(n int) Option {
	return func(p *Params) { p.NbSymbols = n }
}

// WithTableLog overrides the target tableLog (default MaxTableLog; 0
// still means "auto-select" if passed explicitly after this option).
func WithTableLog(log int) Option {
	return func(p *Params) { p.TableLog = log }
}

// WithILP enables the two-state interleaved encoder (§4.7).
func WithILP(enabled bool) Option {
	return func(p *Params) { p.ILP = enabled }
}

// WithObserver attaches a BlockObserver that receives one BlockStats call
// per compressed block. The default is NopObserver, so the library does
// no logging unless a caller opts in.
func WithObserver(obs BlockObserver) Option {
	return func(p *Params) { p.Observer = obs }
}

func defaultParams() Params {
	return Params{NbSymbols: MaxNbSymbols, TableLog: MaxTableLog, Observer: NopObserver{}}
}

// Compress encodes src with default parameters (tableLog=MaxTableLog,
// nbSymbols=MaxNbSymbols), falling back to a raw or single-symbol frame
// when that produces a smaller or equally safe result.
func Compress(src []byte) ([]byte, error) {
	return CompressWith(src, nil)
}

// CompressWith encodes src using the supplied options.
func CompressWith(src []byte, opts []Option) ([]byte, error) {
	if len(src) == 0 {
		return nil, wrapf(ErrBadParameter, "empty input")
	}

	p := defaultParams()
	for _, opt := range opts {
		opt(&p)
	}

	counts := make([]uint32, MaxNbSymbols)
	nbSymbols, err := count(counts, src, p.NbSymbols)
	if err != nil {
		return nil, err
	}
	counts = counts[:nbSymbols]
	total := len(src)

	tableLog, err := normalizeCount(counts, p.TableLog, total, nbSymbols)
	if err != nil {
		return nil, err
	}

	entropy := shannonEntropyBits(counts, total)

	if tableLog == 0 {
		// Single symbol dominates the whole block.
		out := append([]byte{modeSingle}, src[0])
		if len(out) >= len(src)-1 {
			out = append([]byte{modeRaw}, src...)
		}
		p.Observer.ObserveBlock(BlockStats{
			BlockID:      uuid.New(),
			SrcSize:      len(src),
			HeaderBytes:  0,
			PayloadBytes: len(out) - 1,
			NbSymbols:    nbSymbols,
			EntropyBits:  entropy,
		})
		return out, nil
	}

	header, err := writeHeader(counts, nbSymbols, tableLog)
	if err != nil {
		return nil, err
	}

	ct, err := buildCTable(counts, nbSymbols, tableLog)
	if err != nil {
		return nil, err
	}

	payload, finalBitPos, nbStates, err := encodeSymbols(ct, src, p.ILP)
	if err != nil {
		return nil, err
	}

	descriptor := (uint32(len(payload)) << 3) | uint32(finalBitPos) | (uint32(nbStates-1) << 30)

	out := make([]byte, 0, len(header)+4+len(payload))
	out = append(out, header...)
	var descBytes [4]byte
	binary.LittleEndian.PutUint32(descBytes[:], descriptor)
	out = append(out, descBytes[:]...)
	out = append(out, payload...)

	stats := BlockStats{
		BlockID:      uuid.New(),
		SrcSize:      len(src),
		HeaderBytes:  len(header) + 4,
		PayloadBytes: len(payload),
		TableLog:     tableLog,
		NbSymbols:    nbSymbols,
		EntropyBits:  entropy,
		ILP:          nbStates == 2,
	}

	if len(out) >= len(src)-1 {
		out = append([]byte{modeRaw}, src...)
		stats.HeaderBytes = 0
		stats.PayloadBytes = len(src)
	}

	p.Observer.ObserveBlock(stats)
	return out, nil
}

// DecodeOption customizes a decompress call.
type DecodeOption func(*BlockObserver)

// WithDecodeObserver attaches a BlockObserver that receives one BlockStats
// call for the block being decompressed.
func WithDecodeObserver(obs BlockObserver) DecodeOption {
	return func(o *BlockObserver) { *o = obs }
}

// Decompress reverses Compress/CompressWith. originalSize must be the
// exact length of the original input. Returns the number of bytes
// consumed from src.
func Decompress(dst []byte, originalSize int, src []byte, opts ...DecodeOption) (int, error) {
	return decompressFrame(dst, originalSize, src, false, 0, opts)
}

// DecompressSafe is Decompress with an additional bound on how much of
// src may be read; reads that would cross it return ErrTruncatedInput
// instead of risking an out-of-bounds access.
func DecompressSafe(dst []byte, originalSize int, src []byte, maxSrcSize int, opts ...DecodeOption) (int, error) {
	return decompressFrame(dst, originalSize, src, true, maxSrcSize, opts)
}

func decompressFrame(dst []byte, originalSize int, src []byte, safe bool, maxSrcSize int, opts []DecodeOption) (int, error) {
	var obs BlockObserver = NopObserver{}
	for _, opt := range opts {
		opt(&obs)
	}
	if safe && maxSrcSize > len(src) {
		maxSrcSize = len(src)
	}
	if len(src) == 0 || (safe && maxSrcSize == 0) {
		return 0, wrapf(ErrTruncatedInput, "empty source")
	}

	byte0 := src[0]
	switch byte0 {
	case modeRaw:
		need := 1 + originalSize
		if safe && need > maxSrcSize {
			return 0, wrapf(ErrTruncatedInput, "raw frame needs %d bytes, bound is %d", need, maxSrcSize)
		}
		if len(src) < need {
			return 0, wrapf(ErrTruncatedInput, "raw frame needs %d bytes, have %d", need, len(src))
		}
		if len(dst) != originalSize {
			return 0, wrapf(ErrBadParameter, "dst length %d does not match originalSize %d", len(dst), originalSize)
		}
		copy(dst, src[1:need])
		obs.ObserveBlock(BlockStats{BlockID: uuid.New(), SrcSize: originalSize, PayloadBytes: originalSize})
		return need, nil
	case modeSingle:
		if safe && 2 > maxSrcSize {
			return 0, wrapf(ErrTruncatedInput, "single-symbol frame needs 2 bytes, bound is %d", maxSrcSize)
		}
		if len(src) < 2 {
			return 0, wrapf(ErrTruncatedInput, "single-symbol frame needs 2 bytes, have %d", len(src))
		}
		if len(dst) != originalSize {
			return 0, wrapf(ErrBadParameter, "dst length %d does not match originalSize %d", len(dst), originalSize)
		}
		sym := src[1]
		for i := range dst {
			dst[i] = sym
		}
		obs.ObserveBlock(BlockStats{BlockID: uuid.New(), SrcSize: originalSize, NbSymbols: 1})
		return 2, nil
	}

	if byte0&3 != frameNormal {
		return 0, wrapf(ErrMalformedStream, "unrecognized block mode byte0=0x%02x", byte0)
	}

	counts, nbSymbols, tableLog, headerLen, err := readHeader(src)
	if err != nil {
		return 0, err
	}
	if safe && headerLen+4 > maxSrcSize {
		return 0, wrapf(ErrTruncatedInput, "header+descriptor needs %d bytes, bound is %d", headerLen+4, maxSrcSize)
	}
	if len(src) < headerLen+4 {
		return 0, wrapf(ErrTruncatedInput, "header+descriptor needs %d bytes, have %d", headerLen+4, len(src))
	}

	descriptor := binary.LittleEndian.Uint32(src[headerLen : headerLen+4])
	byteLen := int((descriptor >> 3) & (1<<27 - 1))
	finalBitPos := int(descriptor & 7)
	nbStates := int((descriptor>>30)&3) + 1

	payloadStart := headerLen + 4
	need := payloadStart + byteLen
	if safe && need > maxSrcSize {
		return 0, wrapf(ErrTruncatedInput, "payload needs %d bytes, bound is %d", need, maxSrcSize)
	}
	if len(src) < need {
		return 0, wrapf(ErrTruncatedInput, "payload needs %d bytes, have %d", need, len(src))
	}

	dt, err := buildDTable(counts, nbSymbols, tableLog)
	if err != nil {
		return 0, err
	}

	if len(dst) != originalSize {
		return 0, wrapf(ErrBadParameter, "dst length %d does not match originalSize %d", len(dst), originalSize)
	}

	maxPayload := maxSrcSize - payloadStart
	consumed, err := decodeSymbols(dt, dst, src[payloadStart:need], nbStates, originalSize, finalBitPos, safe, maxPayload)
	if err != nil {
		return 0, err
	}

	obs.ObserveBlock(BlockStats{
		BlockID:      uuid.New(),
		SrcSize:      originalSize,
		HeaderBytes:  headerLen + 4,
		PayloadBytes: byteLen,
		TableLog:     tableLog,
		NbSymbols:    nbSymbols,
		ILP:          nbStates == 2,
	})

	return payloadStart + consumed, nil
}
