package fse

import "encoding/binary"

// loadLE32 reads a little-endian 32-bit word starting at pos, zero-padding
// any bytes past the end of src. The header codec's read side walks a
// shrinking window near the end of its input and must not read out of
// bounds even though the wire format assumes a 4-byte-aligned word is
// always available.
func loadLE32(src []byte, pos int) uint32 {
	if pos < 0 || pos >= len(src) {
		return 0
	}
	end := pos + 4
	if end > len(src) {
		var buf [4]byte
		copy(buf[:], src[pos:])
		return binary.LittleEndian.Uint32(buf[:])
	}
	return binary.LittleEndian.Uint32(src[pos:end])
}

// writeHeader encodes normalized counts into the compact variable-bit-length
// representation described in §4.3, prefixed with the 2-bit "normal FSE"
// header ID and the 4-bit tableLog field. Returns the encoded bytes.
func writeHeader(counts []uint32, nbSymbols, tableLog int) ([]byte, error) {
	if tableLog < MinTableLog || tableLog > MaxTableLog {
		return nil, wrapf(ErrBadParameter, "tableLog %d out of range [%d,%d]", tableLog, MinTableLog, MaxTableLog)
	}

	tableSize := 1 << tableLog
	out := make([]byte, 0, tableSize/4+8)
	writeWord := func(word uint32) {
		out = append(out, byte(word), byte(word>>8))
	}

	bitStream := uint32(frameNormal)
	bitCount := 2
	bitStream |= uint32(tableLog-MinTableLog) << bitCount
	bitCount += 4

	remaining := tableSize
	threshold := tableSize
	nbBits := tableLog + 1
	charnum := 0
	previous0 := false

	for remaining > 0 {
		if previous0 {
			start := charnum
			for charnum < nbSymbols && counts[charnum] == 0 {
				charnum++
			}
			for charnum >= start+24 {
				start += 24
				bitStream |= 0xFFFF << uint(bitCount)
				writeWord(bitStream)
				bitStream >>= 16
			}
			for charnum >= start+3 {
				start += 3
				bitStream |= 3 << uint(bitCount)
				bitCount += 2
			}
			bitStream |= uint32(charnum-start) << uint(bitCount)
			bitCount += 2
			if bitCount > 16 {
				writeWord(bitStream)
				bitStream >>= 16
				bitCount -= 16
			}
		}
		{
			if charnum >= nbSymbols {
				return nil, wrapf(ErrInconsistentDistribution, "ran out of symbols at charnum=%d nbSymbols=%d", charnum, nbSymbols)
			}
			cnt := counts[charnum]
			charnum++
			maxv := 2*threshold - 1 - remaining
			remaining -= int(cnt)
			if int(cnt) >= threshold {
				cnt += uint32(maxv)
			}
			bitStream |= cnt << uint(bitCount)
			bitCount += nbBits
			if int(cnt) < maxv {
				bitCount--
			}
			previous0 = cnt == 0
			for remaining < threshold {
				nbBits--
				threshold >>= 1
			}
		}
		if bitCount > 16 {
			writeWord(bitStream)
			bitStream >>= 16
			bitCount -= 16
		}
	}

	if remaining < 0 {
		return nil, wrapf(ErrInconsistentDistribution, "header overspend: remaining=%d", remaining)
	}

	nbBytes := (bitCount + 7) / 8
	switch nbBytes {
	case 1:
		out = append(out, byte(bitStream))
	case 2:
		out = append(out, byte(bitStream), byte(bitStream>>8))
	}

	if charnum > nbSymbols {
		return nil, wrapf(ErrInconsistentDistribution, "too many symbols written: charnum=%d nbSymbols=%d", charnum, nbSymbols)
	}

	return out, nil
}

// readHeader decodes a block written by writeHeader, returning the
// normalized counts, the symbol count, the tableLog, and the number of
// bytes consumed from src.
func readHeader(src []byte) (counts []uint32, nbSymbols int, tableLog int, consumed int, err error) {
	bitStream := loadLE32(src, 0)
	bitStream >>= 2
	tableLog = int(bitStream&0xF) + MinTableLog
	bitStream >>= 4
	if tableLog < MinTableLog || tableLog > MaxTableLog {
		return nil, 0, 0, 0, wrapf(ErrInconsistentDistribution, "decoded tableLog %d out of range", tableLog)
	}

	remaining := 1 << tableLog
	threshold := remaining
	nbBits := tableLog + 1
	bitCount := 6
	charnum := 0
	previous0 := false

	ip := 0
	counts = make([]uint32, 0, MaxNbSymbols)
	grow := func(n int) {
		for len(counts) < n {
			counts = append(counts, 0)
		}
	}

	for remaining > 0 {
		if previous0 {
			n0 := charnum
			for bitStream&0xFFFF == 0xFFFF {
				n0 += 24
				ip += 2
				bitStream = loadLE32(src, ip) >> uint(bitCount)
			}
			for bitStream&3 == 3 {
				n0 += 3
				bitStream >>= 2
				bitCount += 2
			}
			n0 += int(bitStream & 3)
			bitCount += 2
			grow(n0)
			for charnum < n0 {
				counts[charnum] = 0
				charnum++
			}
			ip += bitCount >> 3
			bitCount &= 7
			bitStream = loadLE32(src, ip) >> uint(bitCount)
		}
		{
			maxv := uint32(2*threshold - 1 - remaining)
			var cnt uint32
			if bitStream&uint32(threshold-1) < maxv {
				cnt = bitStream & uint32(threshold-1)
				bitCount += nbBits - 1
			} else {
				cnt = bitStream & uint32(2*threshold-1)
				if cnt >= uint32(threshold) {
					cnt -= maxv
				}
				bitCount += nbBits
			}
			remaining -= int(cnt)
			grow(charnum + 1)
			counts[charnum] = cnt
			charnum++
			previous0 = cnt == 0
			for remaining < threshold {
				nbBits--
				threshold >>= 1
			}
			ip += bitCount >> 3
			bitCount &= 7
			bitStream = loadLE32(src, ip) >> uint(bitCount)
		}
		if charnum > MaxNbSymbols {
			// A well-formed header always satisfies remaining==0 within
			// MaxNbSymbols entries; past that, src is either truncated or
			// corrupt and is feeding us zero-padding forever (loadLE32
			// pads past its end), which would otherwise spin without ever
			// driving remaining to 0.
			return nil, 0, 0, 0, wrapf(ErrMalformedStream, "header decode exceeded MaxNbSymbols without terminating")
		}
	}

	nbSymbols = charnum
	if remaining < 0 {
		return nil, 0, 0, 0, wrapf(ErrInconsistentDistribution, "header decode overspend: remaining=%d", remaining)
	}

	if bitCount > 0 {
		ip++
	}
	return counts, nbSymbols, tableLog, ip, nil
}
