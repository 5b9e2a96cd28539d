package randomx

import "sync"

// Mode selects between RandomX's two memory profiles. Fast mode builds the
// full ~2 GiB dataset and is what a miner wants; light mode only allocates
// the ~256 MiB cache and is meant for the rare case where hashing has to
// happen somewhere memory-constrained.
type Mode int

const (
	// FastMode builds the full dataset for high hashrate mining.
	FastMode Mode = iota

	// LightMode allocates only the cache, trading hashrate for a much
	// smaller memory footprint.
	LightMode
)

// HashOracle computes RandomX digests against a currently-loaded seed. A
// single oracle is owned by exactly one worker goroutine; RandomX VMs are
// not safe to share across goroutines, so the mining engine gives each
// worker its own instance rather than pooling them.
type HashOracle interface {
	// Initialize (re)builds the cache/dataset for seed, discarding
	// whatever the oracle previously held. This is the expensive
	// operation RandomX is designed around; callers should only invoke
	// it when the seed has actually changed.
	Initialize(seed [32]byte, mode Mode) error

	// HasSeed reports whether the oracle is already initialized for the
	// given seed, so a caller can skip a redundant Initialize.
	HasSeed(seed [32]byte) bool

	// Hash computes the RandomX digest of data under the currently
	// loaded seed. Initialize must have been called at least once
	// beforehand.
	Hash(data []byte) [32]byte

	// Close releases any native memory the oracle holds.
	Close()
}

// NewHashOracle returns the RandomX implementation compiled into this
// binary: a real cgo-backed oracle when built with cgo enabled (which
// requires a linkable RandomX library), or a Blake2b-based stand-in that is
// not the RandomX function when built without cgo. Selecting between them
// happens at compile time via the cgo build tag so a cgo-free binary never
// pays for or requires the native dependency.
func NewHashOracle() HashOracle {
	return newHashOracle()
}

// oracleState is shared bookkeeping both the cgo and stub oracles embed so
// HasSeed behaves identically regardless of backend.
type oracleState struct {
	mu   sync.Mutex
	seed [32]byte
	init bool
}

func (s *oracleState) HasSeed(seed [32]byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.init && s.seed == seed
}

func (s *oracleState) setSeed(seed [32]byte) {
	s.mu.Lock()
	s.seed = seed
	s.init = true
	s.mu.Unlock()
}
