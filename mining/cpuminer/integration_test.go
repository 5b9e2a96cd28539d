package cpuminer

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/botcoin-project/botcoind/mining/randomx"
)

// seedForSeedHeight derives a synthetic, uniquely-identifiable seed hash
// from a seed height, so a test can tell which seed a published context
// carries without needing a real chain to look block hashes up in.
func seedForSeedHeight(seedHeight uint64) [32]byte {
	var seed [32]byte
	binary.LittleEndian.PutUint64(seed[:8], seedHeight)
	return seed
}

// TestSeedRotatesAtCandidateHeightNotTipHeight advances the fake tip across
// the h = k*EpochLength+64 / +65 boundary, where SeedHeight jumps from one
// epoch's seed to the next. It asserts the seed carried by each published
// MiningContext matches SeedHeight of the context's own Height field (the
// candidate the coordinator is about to mine), not the height of the tip it
// was built on top of.
func TestSeedRotatesAtCandidateHeightNotTipHeight(t *testing.T) {
	const epochBoundary = randomx.EpochLength + randomx.EpochLag // 2112: last block on the old seed

	cfg, templates, tip := testConfig(1, 0 /* unreachable target */, &fakeSubmitter{}, newFakeGate(true))
	cfg.SeedForHeight = func(height int32) ([32]byte, error) {
		return seedForSeedHeight(randomx.SeedHeight(uint64(height))), nil
	}

	templates.setHeight(epochBoundary)
	tip.height.Store(epochBoundary - 1)

	coord := newCoordinator(&cfg, &stats{})
	coord.start()
	defer coord.stop()

	select {
	case <-coord.ready:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for first template")
	}

	first := coord.snapshot()
	if first.Height != epochBoundary {
		t.Fatalf("first context height = %d, want %d", first.Height, epochBoundary)
	}
	wantFirstSeed := seedForSeedHeight(randomx.SeedHeight(uint64(epochBoundary)))
	if first.SeedHash != wantFirstSeed {
		t.Fatalf("first context seed = %x, want %x (seed height %d)",
			first.SeedHash, wantFirstSeed, randomx.SeedHeight(uint64(epochBoundary)))
	}

	// Advance the tip by one block so the next candidate lands exactly on
	// the epoch's rotation edge (h = k*EpochLength+65), and prod the
	// coordinator instead of waiting for its poll interval.
	firstJobID := first.JobID
	templates.setHeight(epochBoundary + 1)
	tip.height.Store(epochBoundary)
	coord.notifyTipChanged()

	deadline := time.After(2 * time.Second)
	for coord.currentJobID() == firstJobID {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for the post-boundary template")
		case <-time.After(5 * time.Millisecond):
		}
	}

	second := coord.snapshot()
	if second.Height != epochBoundary+1 {
		t.Fatalf("second context height = %d, want %d", second.Height, epochBoundary+1)
	}
	wantSecondSeed := seedForSeedHeight(randomx.SeedHeight(uint64(epochBoundary + 1)))
	if second.SeedHash != wantSecondSeed {
		t.Fatalf("second context seed = %x, want %x (seed height %d)",
			second.SeedHash, wantSecondSeed, randomx.SeedHeight(uint64(epochBoundary+1)))
	}
	if second.SeedHash == first.SeedHash {
		t.Fatal("seed did not rotate across the epoch boundary")
	}
}

// TestGatedCoordinatorWakesOnTipChange keeps the gate closed long enough for
// backoff to grow, then flips it open at the same moment as a tip
// notification. If the gated select only watched quit and the backoff
// timer, the coordinator wouldn't reconsider the gate until that timer
// (>= baseBackoff, ~1s) expired; observing the resulting template well
// before then proves the tip case woke it immediately. The backoff level
// itself is not observed.
func TestGatedCoordinatorWakesOnTipChange(t *testing.T) {
	gate := newFakeGate(false)
	cfg, _, tip := testConfig(1, 0x207fffff, &fakeSubmitter{}, gate)
	coord := newCoordinator(&cfg, &stats{})
	coord.start()
	defer coord.stop()

	// Let the first gated iteration begin its backoff sleep, so backoffLevel
	// has climbed above 0 by the time the tip notification arrives.
	time.Sleep(20 * time.Millisecond)

	gate.should.Store(true)
	tip.height.Store(1)
	coord.notifyTipChanged()

	select {
	case <-coord.ready:
	case <-time.After(baseBackoff / 2):
		t.Fatal("gated coordinator did not react to the tip notification before its backoff timer would have")
	}
}
