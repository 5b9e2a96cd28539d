package chaincfg

import "testing"

func TestCompactToBigBigToCompactRoundTrip(t *testing.T) {
	tests := []uint32{
		0x1d00ffff,
		0x207fffff,
		0x1b0404cb,
	}

	for _, bits := range tests {
		n := CompactToBig(bits)
		got := BigToCompact(n)
		if got != bits {
			t.Errorf("BigToCompact(CompactToBig(%#x)) = %#x, want %#x", bits, got, bits)
		}
	}
}

func TestCompactToBigZero(t *testing.T) {
	n := CompactToBig(0)
	if n.Sign() != 0 {
		t.Fatalf("CompactToBig(0) = %v, want 0", n)
	}
}
