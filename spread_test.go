package fse

import "testing"

func TestSpreadSymbolsBijection(t *testing.T) {
	tableLog := 5
	tableSize := 1 << tableLog
	counts := []uint32{10, 8, 6, 4, 2, 2}
	if sum(counts) != tableSize {
		t.Fatalf("test setup: counts must sum to tableSize, got %d want %d", sum(counts), tableSize)
	}

	table, err := spreadSymbols(counts, tableLog)
	if err != nil {
		t.Fatalf("spreadSymbols: %v", err)
	}
	if len(table) != tableSize {
		t.Fatalf("len(table) = %d, want %d", len(table), tableSize)
	}

	seen := make([]uint32, len(counts))
	for _, s := range table {
		seen[s]++
	}
	for s, want := range counts {
		if seen[s] != want {
			t.Fatalf("symbol %d appears %d times, want %d", s, seen[s], want)
		}
	}
}

func TestSpreadSymbolsInvalidCountsRejected(t *testing.T) {
	tableLog := 5
	counts := []uint32{1, 1, 1} // sums to 3, not 32
	if _, err := spreadSymbols(counts, tableLog); err == nil {
		t.Fatalf("expected error when counts don't sum to the table size")
	}
}
