package cpuminer

import (
	"sync/atomic"
	"time"
)

// stats holds the counters exposed to callers polling the miner's progress.
// Every field is accessed exclusively through atomic operations so workers
// can update them without contending with each other or with a caller
// reading a snapshot for HashRate.
type stats struct {
	hashCount     atomic.Uint64
	blocksFound   atomic.Uint64
	staleBlocks   atomic.Uint64
	templateCount atomic.Uint64
	startTime     atomic.Int64 // unix nanoseconds; zero means not started
}

func (s *stats) reset() {
	s.hashCount.Store(0)
	s.blocksFound.Store(0)
	s.staleBlocks.Store(0)
	s.templateCount.Store(0)
	s.startTime.Store(time.Now().UnixNano())
}

func (s *stats) addHashes(n uint64) {
	s.hashCount.Add(n)
}

func (s *stats) recordBlockFound() {
	s.blocksFound.Add(1)
}

func (s *stats) recordStaleBlock() {
	s.staleBlocks.Add(1)
}

func (s *stats) recordTemplate() {
	s.templateCount.Add(1)
}

// hashRate returns the mean hashes-per-second since the miner started, or
// zero if it hasn't started or no time has elapsed yet.
func (s *stats) hashRate() float64 {
	start := s.startTime.Load()
	if start == 0 {
		return 0
	}
	elapsed := time.Since(time.Unix(0, start)).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.hashCount.Load()) / elapsed
}
