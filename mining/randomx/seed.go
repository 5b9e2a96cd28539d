// Package randomx wraps the RandomX proof-of-work function behind a small
// oracle interface the mining engine can hash headers against without
// caring whether the underlying VM is a real dataset-backed implementation
// or a stand-in used when the native library isn't linked in.
package randomx

// EpochLength is the number of blocks a single RandomX seed remains active
// for before the next seed rotation.
const EpochLength = 2048

// EpochLag is the number of blocks a new seed is computed ahead of when it
// actually takes effect, giving miners time to build the dataset for it
// before they need it.
const EpochLag = 64

// ArgonSalt differentiates this chain's RandomX cache initialization from
// Monero's, so hashpower built for one cannot be pointed at the other.
const ArgonSalt = "BotcoinX\x01"

// SeedHeight returns the height of the block whose hash should be used as
// the RandomX seed for a block at the given height. The seed rotates every
// EpochLength blocks and is computed EpochLag blocks in advance of when it
// takes effect, so the seed itself never depends on blocks close enough to
// the tip to be reorganized away.
func SeedHeight(height uint64) uint64 {
	if height <= EpochLag {
		return 0
	}
	return ((height - EpochLag - 1) / EpochLength) * EpochLength
}
