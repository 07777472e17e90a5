package fse

import "testing"

func TestCountBasic(t *testing.T) {
	src := []byte("abracadabra")
	counts := make([]uint32, MaxNbSymbols)
	n, err := count(counts, src, 0)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	want := map[byte]uint32{'a': 5, 'b': 2, 'r': 2, 'c': 1, 'd': 1}
	maxSym := byte(0)
	for s, c := range want {
		if s > maxSym {
			maxSym = s
		}
		if counts[s] != c {
			t.Fatalf("count[%c] = %d, want %d", s, counts[s], c)
		}
	}
	if n != int(maxSym)+1 {
		t.Fatalf("nbSymbols = %d, want %d", n, maxSym+1)
	}
}

func TestCountEmptyFails(t *testing.T) {
	counts := make([]uint32, MaxNbSymbols)
	if _, err := count(counts, nil, 0); err == nil {
		t.Fatalf("expected error on empty input")
	}
}

func TestCountCapExceeded(t *testing.T) {
	counts := make([]uint32, MaxNbSymbols)
	if _, err := count(counts, []byte{0}, MaxNbSymbols+1); err == nil {
		t.Fatalf("expected error when maxNbSymbols exceeds cap")
	}
}

func TestCountTrailingZerosTrimmed(t *testing.T) {
	src := []byte{0, 0, 1, 1, 2}
	counts := make([]uint32, MaxNbSymbols)
	n, err := count(counts, src, 10)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("nbSymbols = %d, want 3", n)
	}
}
