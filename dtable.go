package fse

import "encoding/binary"

// dEntry is a single decoder table slot (§4.6): which symbol this state
// decodes to, how many bits to read to find the next state's offset, and
// the base state that offset is added to.
type dEntry struct {
	newState uint16
	symbol   byte
	nbBits   uint8
}

// DTable is the decoder's read-only state table, built once from a
// normalized distribution and then reused across any number of decode
// calls against that distribution.
type DTable struct {
	TableLog int
	entries  []dEntry
}

// buildDTable constructs a DTable from normalized counts summing to
// 1<<tableLog (§4.6). counts must have exactly nbSymbols entries.
func buildDTable(counts []uint32, nbSymbols, tableLog int) (*DTable, error) {
	spread, err := spreadSymbols(counts, tableLog)
	if err != nil {
		return nil, err
	}
	tableSize := 1 << tableLog

	symbolNext := make([]uint32, nbSymbols)
	copy(symbolNext, counts)

	entries := make([]dEntry, tableSize)
	for i := 0; i < tableSize; i++ {
		s := spread[i]
		counter := symbolNext[s]
		nbBits := uint32(tableLog) - highBit(counter)
		entries[i] = dEntry{
			symbol:   s,
			nbBits:   uint8(nbBits),
			newState: uint16((counter << nbBits) - uint32(tableSize)),
		}
		symbolNext[s]++
	}

	return &DTable{TableLog: tableLog, entries: entries}, nil
}

const dtableWireVersion = 1

// MarshalBinary packs the DTable into a flat blob, mirroring CTable's
// caching idiom so a decoder-side distribution can be shared without
// rebuilding the table.
func (t *DTable) MarshalBinary() ([]byte, error) {
	out := make([]byte, 4+2+len(t.entries)*4)
	binary.LittleEndian.PutUint32(out[0:4], dtableWireVersion)
	binary.LittleEndian.PutUint16(out[4:6], uint16(t.TableLog))

	off := 6
	for _, e := range t.entries {
		binary.LittleEndian.PutUint16(out[off:off+2], e.newState)
		out[off+2] = e.symbol
		out[off+3] = e.nbBits
		off += 4
	}
	return out, nil
}

// UnmarshalBinary reverses MarshalBinary.
func (t *DTable) UnmarshalBinary(data []byte) error {
	if len(data) < 6 {
		return wrapf(ErrMalformedStream, "dtable blob too short: %d bytes", len(data))
	}
	version := binary.LittleEndian.Uint32(data[0:4])
	if version != dtableWireVersion {
		return wrapf(ErrMalformedStream, "unsupported dtable wire version %d", version)
	}
	tableLog := int(binary.LittleEndian.Uint16(data[4:6]))
	if tableLog < MinTableLog || tableLog > MaxTableLog {
		return wrapf(ErrMalformedStream, "dtable tableLog %d out of range", tableLog)
	}
	tableSize := 1 << tableLog
	want := 6 + tableSize*4
	if len(data) < want {
		return wrapf(ErrMalformedStream, "dtable blob truncated: have %d want %d", len(data), want)
	}

	entries := make([]dEntry, tableSize)
	off := 6
	for i := range entries {
		entries[i] = dEntry{
			newState: binary.LittleEndian.Uint16(data[off : off+2]),
			symbol:   data[off+2],
			nbBits:   data[off+3],
		}
		off += 4
	}

	t.TableLog = tableLog
	t.entries = entries
	return nil
}
