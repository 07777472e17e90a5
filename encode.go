package fse

// encodeSymbols runs the ANS encoder hot loop over src using ct (§4.7),
// optionally interleaving nbStates independent states to expose
// instruction-level parallelism. Every state starts at the table's base
// value (tableSize) rather than an out-of-range embedded symbol: that
// keeps the very first transform step well-defined even for a small
// tableLog paired with a large symbol value, while still landing the
// last input symbol's cost in that first step for free.
//
// Returns the payload bytes and the final bit position of the last byte
// (0 if the payload ends byte-aligned).
func encodeSymbols(ct *CTable, src []byte, ilp bool) (payload []byte, finalBitPos, nbStates int, err error) {
	n := len(src)
	if n == 0 {
		return nil, 0, 0, wrapf(ErrBadParameter, "empty input")
	}

	nbStates = 1
	if ilp && n >= 2 {
		nbStates = 2
	}

	tableSize := 1 << ct.TableLog
	states := make([]int, nbStates)
	for j := range states {
		states[j] = tableSize
	}

	bw := &bitWriter{}
	for i := n - 1; i >= 0; i-- {
		j := i % nbStates
		s := src[i]
		x := ct.xform[s]
		nbBits := uint(x.minBitsOut)
		if uint32(states[j]) > uint32(x.maxState) {
			nbBits++
		}
		bw.addBits(uint64(states[j]), nbBits)
		states[j] = int(ct.nextState[(states[j]>>nbBits)+int(x.deltaFindState)])
		bw.flush()
	}

	for j := 0; j < nbStates; j++ {
		bw.addBits(uint64(states[j]-tableSize), uint(ct.TableLog))
		bw.flush()
	}

	finalBitPos = bw.close()
	return bw.buf, finalBitPos, nbStates, nil
}
