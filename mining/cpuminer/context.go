package cpuminer

import "github.com/botcoin-project/botcoind/wire"

// MiningContext is an immutable snapshot of the work available to grind
// nonces against. The coordinator builds a new one every time the template
// or seed changes and publishes it for workers to pick up; nothing in a
// published MiningContext is ever mutated in place, so workers can read one
// without holding a lock beyond the moment they copy the pointer out.
type MiningContext struct {
	// Block is the candidate block workers search for a valid nonce in.
	// Workers copy its header before patching a nonce into it; they never
	// mutate the shared instance.
	Block *wire.MsgBlock

	// SeedHash is the RandomX seed active for this block's height.
	SeedHash [32]byte

	// Bits is the compact difficulty target the header must hash under.
	Bits uint32

	// JobID uniquely identifies this snapshot. Workers compare it against
	// the last id they observed to detect that a new context has been
	// published without needing to inspect its contents.
	JobID uint64

	// Height is the height the resulting block would occupy if accepted.
	Height int32
}
