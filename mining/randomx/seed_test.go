package randomx

import "testing"

func TestSeedHeightBelowLag(t *testing.T) {
	for _, h := range []uint64{0, 1, 63, 64} {
		if got := SeedHeight(h); got != 0 {
			t.Errorf("SeedHeight(%d) = %d, want 0", h, got)
		}
	}
}

func TestSeedHeightAtEpochBoundaries(t *testing.T) {
	tests := []struct {
		height uint64
		want   uint64
	}{
		{EpochLag + 1, 0},
		{EpochLag + EpochLength, 0},
		{EpochLag + EpochLength + 1, EpochLength},
		{EpochLag + 2*EpochLength, EpochLength},
		{EpochLag + 2*EpochLength + 1, 2 * EpochLength},
	}

	for _, tt := range tests {
		if got := SeedHeight(tt.height); got != tt.want {
			t.Errorf("SeedHeight(%d) = %d, want %d", tt.height, got, tt.want)
		}
	}
}

func TestSeedHeightIsMonotonicNonDecreasing(t *testing.T) {
	var prev uint64
	for h := uint64(0); h < uint64(5*EpochLength); h += 17 {
		got := SeedHeight(h)
		if got < prev {
			t.Fatalf("SeedHeight regressed at height %d: %d < %d", h, got, prev)
		}
		prev = got
	}
}

func TestStubOracleHashDependsOnSeedAndInput(t *testing.T) {
	o := newHashOracle()
	defer o.Close()

	var seedA, seedB [32]byte
	seedB[0] = 1

	if err := o.Initialize(seedA, LightMode); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	h1 := o.Hash([]byte("header-one"))
	h2 := o.Hash([]byte("header-two"))
	if h1 == h2 {
		t.Fatal("expected different inputs to hash differently")
	}

	if !o.HasSeed(seedA) {
		t.Fatal("expected HasSeed to report true for the just-initialized seed")
	}
	if o.HasSeed(seedB) {
		t.Fatal("expected HasSeed to report false for a different seed")
	}

	if err := o.Initialize(seedB, LightMode); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	h3 := o.Hash([]byte("header-one"))
	if h3 == h1 {
		t.Fatal("expected the same input to hash differently under a different seed")
	}
}
