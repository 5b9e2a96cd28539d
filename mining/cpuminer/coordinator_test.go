package cpuminer

import (
	"math/rand"
	"testing"
	"time"
)

func TestBackoffDurationGrowsWithLevel(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	var prevMax time.Duration
	for level := 0; level <= maxBackoffLevel+2; level++ {
		d := backoffDuration(level, rng)
		if d < baseBackoff {
			t.Fatalf("level %d: backoffDuration = %v, want >= base %v", level, d, baseBackoff)
		}
		// The jitter-free floor for this level should never shrink as the
		// level grows, since it caps out at maxBackoffLevel.
		floor := baseBackoff << uint(min(level, maxBackoffLevel))
		if d < floor {
			t.Fatalf("level %d: backoffDuration = %v, want >= floor %v", level, d, floor)
		}
		if floor < prevMax {
			t.Fatalf("level %d: floor %v regressed below previous floor %v", level, floor, prevMax)
		}
		prevMax = floor
	}
}

func TestBackoffDurationCapsAtMaxLevel(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	capped := baseBackoff << uint(maxBackoffLevel)
	for _, level := range []int{maxBackoffLevel, maxBackoffLevel + 1, maxBackoffLevel + 10} {
		d := backoffDuration(level, rng)
		// Jitter is bounded to 25% of the base duration for that level, so
		// no level past the cap should ever produce more than 1.25x it.
		if d > capped+capped/4 {
			t.Fatalf("level %d: backoffDuration = %v, want <= %v", level, d, capped+capped/4)
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
