package fse

import "math/bits"

// highBit returns floor(log2(v)) for v >= 1.
func highBit(v uint32) uint32 {
	return uint32(bits.Len32(v) - 1)
}

// ceilLog2 returns ceil(log2(v)), treating v <= 1 as needing 0 bits (there
// is nothing to disambiguate with 0 or 1 possible value).
func ceilLog2(v int) int {
	if v <= 1 {
		return 0
	}
	return int(highBit(uint32(v-1))) + 1
}

// normalizeCount converts raw counts into normalized counts summing exactly
// to 2^tableLog, writing the result back into counts in place (§4.2).
//
// tableLog == 0 means "auto": start from MaxTableLog, then tighten. Returns
// the final tableLog, or 0 if the distribution collapses to a single
// symbol (the caller should emit a single-symbol frame instead), or an
// error if no valid tableLog can represent nbSymbols within MaxTableLog.
func normalizeCount(counts []uint32, tableLog int, total int, nbSymbols int) (int, error) {
	if total <= 0 {
		return 0, wrapf(ErrBadParameter, "total must be positive, got %d", total)
	}
	if nbSymbols <= 0 {
		return 0, wrapf(ErrBadParameter, "nbSymbols must be positive, got %d", nbSymbols)
	}

	if tableLog == 0 {
		tableLog = MaxTableLog
	}
	if srcLog := ceilLog2(total); srcLog < tableLog {
		tableLog = srcLog
	}
	if minLog := ceilLog2(nbSymbols); minLog > tableLog {
		tableLog = minLog
	}
	if tableLog < MinTableLog {
		tableLog = MinTableLog
	}
	if tableLog > MaxTableLog {
		return 0, wrapf(ErrBadParameter, "tableLog %d exceeds MaxTableLog %d", tableLog, MaxTableLog)
	}

	vTotal := uint64(total)

	// Pre-shift: keep the virtual-range arithmetic within 32 bits when the
	// source total is huge relative to tableLog.
	maxLog := virtualLog - tableLog
	if srcLog := ceilLog2(total); srcLog > maxLog {
		shift := uint(srcLog - maxLog)
		base := uint32(1)<<shift - 1
		vTotal = 0
		for s := 0; s < nbSymbols; s++ {
			counts[s] = (counts[s] + base) >> shift
			vTotal += uint64(counts[s])
		}
	}

	// Underflow protection: ensure every nonzero count survives rescaling
	// with weight >= 1 by adding a fixed-point bias before the main pass.
	normalized := make([]uint64, nbSymbols)
	for s := range normalized {
		normalized[s] = uint64(counts[s])
	}
	if uint64(total) > uint64(1)<<uint(tableLog) {
		minBase := vTotal
		add := (minBase * uint64(nbSymbols)) >> uint(tableLog)
		for add != 0 {
			minBase += add
			add = (add * uint64(nbSymbols)) >> uint(tableLog)
		}
		minBase >>= uint(tableLog)
		for s := 0; s < nbSymbols; s++ {
			if counts[s] > 0 {
				normalized[s] = uint64(counts[s]) + minBase
				vTotal += minBase
			}
		}
	}

	scale := uint(virtualLog - tableLog)
	vStep := uint64(1) << scale
	step := uint64(virtualRange) / vTotal
	errTerm := uint64(virtualRange) - step*vTotal

	cumulativeRest := int64((vStep + errTerm) >> 1)
	if errTerm > vStep {
		cumulativeRest = int64(errTerm)
	}

	for s := 0; s < nbSymbols; s++ {
		if normalized[s] == vTotal {
			// Only one symbol carries any weight: single-symbol frame.
			return 0, nil
		}
		if counts[s] > 0 {
			size := (normalized[s] * step) >> scale
			rest := int64(normalized[s]*step) - int64(size*vStep)
			cumulativeRest += rest
			size += uint64(cumulativeRest) >> scale
			cumulativeRest &= int64(vStep) - 1
			counts[s] = uint32(size)
		} else {
			counts[s] = 0
		}
	}

	return tableLog, nil
}
