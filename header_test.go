package fse

import "testing"

func TestHeaderRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		counts []uint32
		log    int
	}{
		{"small-log", []uint32{10, 8, 6, 4, 2, 2}, 5},
		{"with-zero-run", []uint32{20, 0, 0, 0, 0, 0, 0, 0, 6, 6}, 5},
		{"max-log-few-symbols", fillCounts(12, 3), 12},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			encoded, err := writeHeader(c.counts, len(c.counts), c.log)
			if err != nil {
				t.Fatalf("writeHeader: %v", err)
			}
			padded := append(append([]byte{}, encoded...), make([]byte, 4)...)
			gotCounts, gotNbSymbols, gotLog, consumed, err := readHeader(padded)
			if err != nil {
				t.Fatalf("readHeader: %v", err)
			}
			if gotLog != c.log {
				t.Fatalf("tableLog = %d, want %d", gotLog, c.log)
			}
			if gotNbSymbols != len(c.counts) {
				t.Fatalf("nbSymbols = %d, want %d", gotNbSymbols, len(c.counts))
			}
			if consumed != len(encoded) {
				t.Fatalf("consumed = %d, want %d", consumed, len(encoded))
			}
			for i, want := range c.counts {
				if gotCounts[i] != want {
					t.Fatalf("counts[%d] = %d, want %d", i, gotCounts[i], want)
				}
			}
		})
	}
}

func fillCounts(tableLog int, nbSymbols int) []uint32 {
	tableSize := 1 << tableLog
	counts := make([]uint32, nbSymbols)
	base := uint32(tableSize / nbSymbols)
	remainder := uint32(tableSize) - base*uint32(nbSymbols)
	for i := range counts {
		counts[i] = base
	}
	counts[0] += remainder
	return counts
}
