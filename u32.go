package fse

import (
	"encoding/binary"
	"math/bits"
)

// EncodeU32 and DecodeU32 are EncodeU16/DecodeU16's wider sibling (§6):
// the same bit-length-symbol-plus-residual layering, scaled to a 32-bit
// value with a bounded alphabet. The original length/distance coder this
// generalizes assumed values never exceeded 2^26 (FSED_MAXBITS_U32); this
// codec keeps that same domain bound explicit instead of silently
// truncating a value whose bit length doesn't fit the symbol alphabet.
const (
	u32MaxBits   = 26
	u32MaxSymbol = u32MaxBits + 1 // bit lengths 0..26 inclusive
	u32ValueCap  = 1 << u32MaxBits
)

func u32BitLength(v uint32) int {
	return bits.Len32(v)
}

// EncodeU32 compresses values, returning a self-delimiting block. Every
// value must be below 1<<26; a larger value's bit length wouldn't fit
// this codec's symbol alphabet.
func EncodeU32(values []uint32) ([]byte, error) {
	if len(values) == 0 {
		return nil, wrapf(ErrBadParameter, "empty input")
	}
	for i, v := range values {
		if v >= u32ValueCap {
			return nil, wrapf(ErrBadParameter, "value %d at index %d exceeds the 2^%d codec bound", v, i, u32MaxBits)
		}
	}

	symbols := make([]byte, len(values))
	for i, v := range values {
		symbols[i] = byte(u32BitLength(v))
	}

	fseBlock, err := CompressWith(symbols, []Option{WithNbSymbols(u32MaxSymbol)})
	if err != nil {
		return nil, err
	}

	bw := &bitWriter{}
	for _, v := range values {
		nb := u32BitLength(v)
		if nb > 1 {
			residualWidth := uint(nb - 1)
			mask := uint64(1)<<residualWidth - 1
			bw.addBits(uint64(v)&mask, residualWidth)
			bw.flush()
		}
	}
	finalBitPos := bw.close()

	out := make([]byte, 0, 8+len(fseBlock)+len(bw.buf))
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(values)))
	out = append(out, lenBuf[:]...)
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(fseBlock)))
	out = append(out, lenBuf[:]...)
	out = append(out, fseBlock...)
	out = append(out, byte(finalBitPos))
	out = append(out, bw.buf...)
	return out, nil
}

// DecodeU32 reverses EncodeU32, returning the decoded values.
func DecodeU32(src []byte) ([]uint32, error) {
	if len(src) < 9 {
		return nil, wrapf(ErrTruncatedInput, "u32 block too short: %d bytes", len(src))
	}
	nbValues := int(binary.LittleEndian.Uint32(src[0:4]))
	fseLen := int(binary.LittleEndian.Uint32(src[4:8]))
	if len(src) < 8+fseLen+1 {
		return nil, wrapf(ErrTruncatedInput, "u32 block truncated before residual stream")
	}

	symbols := make([]byte, nbValues)
	if _, err := Decompress(symbols, nbValues, src[8:8+fseLen]); err != nil {
		return nil, err
	}

	residuals := src[8+fseLen+1:]

	residualBits := 0
	for _, sym := range symbols {
		if int(sym) > 1 {
			residualBits += int(sym) - 1
		}
	}
	if needBytes := (residualBits + 7) / 8; len(residuals) < needBytes {
		return nil, wrapf(ErrTruncatedInput, "residual stream needs %d bytes, have %d", needBytes, len(residuals))
	}

	fr := fwdBitReader{buf: residuals}
	values := make([]uint32, nbValues)
	for i, sym := range symbols {
		nb := int(sym)
		switch {
		case nb == 0:
			values[i] = 0
		case nb == 1:
			values[i] = 1
		default:
			r := fr.readBits(uint(nb - 1))
			values[i] = uint32(1<<uint(nb-1)) | uint32(r)
		}
	}

	return values, nil
}
