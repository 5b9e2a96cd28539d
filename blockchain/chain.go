package blockchain

import (
	"fmt"
	"sync"
	"time"

	"github.com/botcoin-project/botcoind/chaincfg"
	"github.com/botcoin-project/botcoind/chaincfg/chainhash"
	"github.com/botcoin-project/botcoind/log"
	"github.com/botcoin-project/botcoind/wire"
)

// ProcessResult describes the outcome of handing a solved block to
// ProcessBlock.
type ProcessResult int

const (
	// Accepted means the block extended the current best chain and is now
	// the tip.
	Accepted ProcessResult = iota

	// Duplicate means a block with this hash was already accepted; this is
	// not an error, just a no-op.
	Duplicate

	// Rejected means the block did not connect to the current tip, most
	// commonly because a competing block was accepted first.
	Rejected
)

// String implements fmt.Stringer.
func (r ProcessResult) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case Duplicate:
		return "duplicate"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// BlockChain provides functions for working with the bitcoin block chain.
// This implementation intentionally omits reorganization, checkpoint
// handling, and full consensus validation: proof-of-work is checked and
// stripped by the caller before a block ever reaches ProcessBlock, per the
// mining engine's submission contract, so this type's only remaining job is
// to track a single best chain and reject blocks that fork away from it.
type BlockChain struct {
	chainParams *chaincfg.Params

	// chainLock protects everything below it.
	chainLock sync.RWMutex

	bestChain *chainView
	index     map[chainhash.Hash]*blockNode

	// peerCount and initialSync back IsCurrent/ShouldMine's gating signal.
	// A real node derives these from its p2p layer; this one exposes them
	// as plain setters for whatever transport component owns that state.
	peerCount   int32
	initialSync bool
}

// New creates a BlockChain seeded with a genesis node for the given
// parameters. No genesis block is validated or stored; only its hash,
// height, and bits are tracked since nothing downstream needs the full
// block for an empty chain.
func New(params *chaincfg.Params) *BlockChain {
	genesis := &blockNode{
		hash:      params.GenesisHash,
		height:    0,
		bits:      params.PowLimitBits,
		timestamp: time.Unix(0, 0),
	}

	view := &chainView{nodes: []*blockNode{genesis}}
	index := map[chainhash.Hash]*blockNode{genesis.hash: genesis}

	return &BlockChain{
		chainParams: params,
		bestChain:   view,
		index:       index,
		initialSync: true,
	}
}

// BlockHashByHeight returns the hash of the block at the given height in the
// main chain.
//
// This function is safe for concurrent access.
func (b *BlockChain) BlockHashByHeight(blockHeight int32) (*chainhash.Hash, error) {
	b.chainLock.RLock()
	defer b.chainLock.RUnlock()

	node := b.bestChain.nodeByHeight(blockHeight)
	if node == nil {
		str := fmt.Sprintf("no block at height %d exists", blockHeight)
		return nil, errNotInMainChain(str)

	}

	return &node.hash, nil
}

// Tip returns the hash, height, and bits of the current best chain tip.
//
// This function is safe for concurrent access.
func (b *BlockChain) Tip() (hash chainhash.Hash, height int32, bits uint32) {
	b.chainLock.RLock()
	defer b.chainLock.RUnlock()

	node := b.bestChain.tip()
	if node == nil {
		return chainhash.Hash{}, -1, 0
	}
	return node.hash, node.height, node.bits
}

// SetInitialSyncDone marks the chain as caught up with the rest of the
// network. Until this is called IsCurrent reports false and mining stays
// gated.
func (b *BlockChain) SetInitialSyncDone(done bool) {
	b.chainLock.Lock()
	b.initialSync = !done
	b.chainLock.Unlock()
}

// SetPeerCount records the current number of connected peers so callers can
// factor peer connectivity into their mining gate alongside IsCurrent.
func (b *BlockChain) SetPeerCount(n int32) {
	b.chainLock.Lock()
	b.peerCount = n
	b.chainLock.Unlock()
}

// IsCurrent reports whether the chain believes itself synced to the tip of
// the network.
func (b *BlockChain) IsCurrent() bool {
	b.chainLock.RLock()
	defer b.chainLock.RUnlock()
	return !b.initialSync
}

// PeerCount returns the most recently recorded connected peer count.
func (b *BlockChain) PeerCount() int32 {
	b.chainLock.RLock()
	defer b.chainLock.RUnlock()
	return b.peerCount
}

// ProcessBlock is the only entry point through which a solved block reaches
// the chain. Proof-of-work is not re-checked here: by the time a block
// arrives it has already been validated against the RandomX oracle by
// whichever worker found it, and this function trusts that result the same
// way a full node trusts a template mined under a min_pow_checked submission.
//
// This function is safe for concurrent access.
func (b *BlockChain) ProcessBlock(block *wire.MsgBlock) (ProcessResult, error) {
	hash := block.BlockHash()

	b.chainLock.Lock()
	defer b.chainLock.Unlock()

	if _, ok := b.index[hash]; ok {
		log.BcdbLog.Debugf("duplicate block %s", hash)
		return Duplicate, nil
	}

	tip := b.bestChain.tip()
	if tip == nil {
		return Rejected, errNotInMainChain("chain has no tip to extend")
	}

	if block.Header.PrevBlock != tip.hash {
		log.BcdbLog.Debugf("rejected block %s: does not connect to tip %s", hash, tip.hash)
		return Rejected, nil
	}

	node := &blockNode{
		hash:      hash,
		parent:    tip.hash,
		height:    tip.height + 1,
		bits:      block.Header.Bits,
		timestamp: block.Header.Timestamp,
	}

	b.bestChain.extend(node)
	b.index[hash] = node

	log.BcdbLog.Infof("connected block %s at height %d", hash, node.height)
	return Accepted, nil
}
