package fse

// Core constants for the FSE tANS codec.
const (
	// MinTableLog is the smallest supported table precision.
	MinTableLog = 5
	// MaxTableLog is the largest supported table precision (2^12 = 4096 states).
	// Derived from a memory-usage tuning constant of 14, minus 2.
	MaxTableLog = 12
	// MaxTableSize is 1<<MaxTableLog, the largest supported state table size.
	MaxTableSize = 1 << MaxTableLog

	// MaxNbSymbols is the alphabet cap for the byte-symbol codec.
	MaxNbSymbols = 256

	// virtualLog is the bit width of the virtual-range used during
	// normalization (§4.2); chosen so step*total fits comfortably in 64 bits.
	virtualLog   = 30
	virtualRange = 1 << virtualLog
)

// frame mode tags, the low bits of byte 0 of a block.
const (
	frameRaw    = 0
	frameSingle = 1
	frameNormal = 2 // "…10" in the spec's byte0 table
)
