package fse

import "testing"

func TestEncodeDecodeU32RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 1, 2, 3, 4, 7, 8, 15, 16, 255, 256, 1000, 65535, 65536, 1 << 20, (1 << 26) - 1, 0, 0, 1, 2, 2}

	out, err := EncodeU32(values)
	if err != nil {
		t.Fatalf("EncodeU32: %v", err)
	}

	got, err := DecodeU32(out)
	if err != nil {
		t.Fatalf("DecodeU32: %v", err)
	}
	if len(got) != len(values) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(values))
	}
	for i := range values {
		if got[i] != values[i] {
			t.Fatalf("value %d: got %d, want %d", i, got[i], values[i])
		}
	}
}

func TestEncodeDecodeU32LargeRandomSkewed(t *testing.T) {
	rng := newXorshift32(13579)
	values := make([]uint32, 5000)
	for i := range values {
		v := rng.next()
		if v%10 == 0 {
			values[i] = v % (1 << 26)
		} else {
			values[i] = v % 64
		}
	}

	out, err := EncodeU32(values)
	if err != nil {
		t.Fatalf("EncodeU32: %v", err)
	}
	got, err := DecodeU32(out)
	if err != nil {
		t.Fatalf("DecodeU32: %v", err)
	}
	for i := range values {
		if got[i] != values[i] {
			t.Fatalf("value %d: got %d, want %d", i, got[i], values[i])
		}
	}
}

func TestEncodeU32RejectsEmptyInput(t *testing.T) {
	if _, err := EncodeU32(nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestEncodeU32RejectsOutOfRangeValue(t *testing.T) {
	values := []uint32{1, 2, 1 << 26}
	if _, err := EncodeU32(values); err == nil {
		t.Fatalf("expected error for a value at the 2^26 bound")
	}
}

func TestDecodeU32RejectsTruncatedBlock(t *testing.T) {
	values := []uint32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	out, err := EncodeU32(values)
	if err != nil {
		t.Fatalf("EncodeU32: %v", err)
	}
	if _, err := DecodeU32(out[:4]); err == nil {
		t.Fatalf("expected error decoding a block truncated before the length header completes")
	}
	if len(out) > 9 {
		if _, err := DecodeU32(out[:9]); err == nil {
			t.Fatalf("expected error decoding a block truncated inside the FSE sub-block")
		}
	}
}

func TestU32BitLengthMatchesExpected(t *testing.T) {
	cases := map[uint32]int{0: 0, 1: 1, 2: 2, 3: 2, 4: 3, 255: 8, 256: 9, (1 << 26) - 1: 26}
	for v, want := range cases {
		if got := u32BitLength(v); got != want {
			t.Fatalf("u32BitLength(%d) = %d, want %d", v, got, want)
		}
	}
}
