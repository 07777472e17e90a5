package fse

import "encoding/binary"

// transform holds the per-symbol encode parameters derived from the spread
// permutation (§4.5): how many bits to flush before transitioning out of a
// given state, and where the next state lives.
type transform struct {
	deltaFindState int32
	maxState       uint16
	minBitsOut     uint8
}

// CTable is the encoder's read-only state table, built once from a
// normalized distribution and then reused across any number of encode
// calls against that distribution.
type CTable struct {
	TableLog  int
	NbSymbols int
	nextState []uint16
	xform     []transform
}

// buildCTable constructs a CTable from normalized counts summing to
// 1<<tableLog (§4.5). counts must have exactly nbSymbols entries.
func buildCTable(counts []uint32, nbSymbols, tableLog int) (*CTable, error) {
	spread, err := spreadSymbols(counts, tableLog)
	if err != nil {
		return nil, err
	}
	tableSize := 1 << tableLog

	cursor := make([]uint32, nbSymbols)
	cum := uint32(0)
	for s := 0; s < nbSymbols; s++ {
		cursor[s] = cum
		cum += counts[s]
	}

	nextState := make([]uint16, tableSize)
	for i := 0; i < tableSize; i++ {
		s := spread[i]
		nextState[cursor[s]] = uint16(tableSize + i)
		cursor[s]++
	}

	xform := make([]transform, nbSymbols)
	total := uint32(0)
	for s := 0; s < nbSymbols; s++ {
		n := counts[s]
		switch {
		case n == 0:
			// untouched: symbol cannot appear.
		case n == 1:
			xform[s] = transform{
				minBitsOut:     uint8(tableLog),
				deltaFindState: int32(total) - 1,
				maxState:       uint16(2*tableSize - 1),
			}
			total++
		default:
			minBitsOut := uint32(tableLog-1) - highBit(n-1)
			xform[s] = transform{
				minBitsOut:     uint8(minBitsOut),
				deltaFindState: int32(total) - int32(n),
				maxState:       uint16((n << (minBitsOut + 1)) - 1),
			}
			total += n
		}
	}

	return &CTable{
		TableLog:  tableLog,
		NbSymbols: nbSymbols,
		nextState: nextState,
		xform:     xform,
	}, nil
}

// ctableWireVersion tags the binary layout of MarshalBinary so a future
// change to the record shape can be detected on read.
const ctableWireVersion = 1

// MarshalBinary packs the CTable into a single blob: a version word, the
// two header integers, the nextState array, and the per-symbol transform
// records — adapting the teacher's flat-blob serialization so a CTable
// can be cached or shipped alongside compressed data instead of being
// rebuilt on every encode against a shared distribution.
func (t *CTable) MarshalBinary() ([]byte, error) {
	tableSize := 1 << t.TableLog
	size := 4 + 2 + 2 + tableSize*2 + t.NbSymbols*8
	out := make([]byte, size)

	binary.LittleEndian.PutUint32(out[0:4], ctableWireVersion)
	binary.LittleEndian.PutUint16(out[4:6], uint16(t.TableLog))
	binary.LittleEndian.PutUint16(out[6:8], uint16(t.NbSymbols))

	off := 8
	for _, ns := range t.nextState {
		binary.LittleEndian.PutUint16(out[off:off+2], ns)
		off += 2
	}
	for _, x := range t.xform {
		binary.LittleEndian.PutUint32(out[off:off+4], uint32(x.deltaFindState))
		binary.LittleEndian.PutUint16(out[off+4:off+6], x.maxState)
		out[off+6] = x.minBitsOut
		off += 8
	}
	return out, nil
}

// UnmarshalBinary reverses MarshalBinary.
func (t *CTable) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return wrapf(ErrMalformedStream, "ctable blob too short: %d bytes", len(data))
	}
	version := binary.LittleEndian.Uint32(data[0:4])
	if version != ctableWireVersion {
		return wrapf(ErrMalformedStream, "unsupported ctable wire version %d", version)
	}
	tableLog := int(binary.LittleEndian.Uint16(data[4:6]))
	nbSymbols := int(binary.LittleEndian.Uint16(data[6:8]))
	if tableLog < MinTableLog || tableLog > MaxTableLog {
		return wrapf(ErrMalformedStream, "ctable tableLog %d out of range", tableLog)
	}
	tableSize := 1 << tableLog
	want := 8 + tableSize*2 + nbSymbols*8
	if len(data) < want {
		return wrapf(ErrMalformedStream, "ctable blob truncated: have %d want %d", len(data), want)
	}

	off := 8
	nextState := make([]uint16, tableSize)
	for i := range nextState {
		nextState[i] = binary.LittleEndian.Uint16(data[off : off+2])
		off += 2
	}
	xform := make([]transform, nbSymbols)
	for i := range xform {
		xform[i] = transform{
			deltaFindState: int32(binary.LittleEndian.Uint32(data[off : off+4])),
			maxState:       binary.LittleEndian.Uint16(data[off+4 : off+6]),
			minBitsOut:     data[off+6],
		}
		off += 8
	}

	t.TableLog = tableLog
	t.NbSymbols = nbSymbols
	t.nextState = nextState
	t.xform = xform
	return nil
}
