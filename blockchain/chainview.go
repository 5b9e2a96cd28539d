package blockchain

import (
	"time"

	"github.com/botcoin-project/botcoind/chaincfg/chainhash"
)

// blockNode represents a block within the block chain that is used to aid in
// selecting the best chain to be the main chain. Only the fields the mining
// engine's template generator and tip watcher need are tracked; a full
// validating node would additionally carry work totals, status bits, and
// vote/ticket data here.
type blockNode struct {
	hash      chainhash.Hash
	parent    chainhash.Hash
	height    int32
	bits      uint32
	timestamp time.Time
}

// chainView provides a flat view of a specific branch of the block chain from
// its tip back to the genesis block. It supports lookups by height and hash,
// the tip, and appending; it has no functions for comparing chains.
//
// For example, assume a block chain with a side chain as depicted below:
//   genesis -> 1 -> 2 -> 3 -> 4  -> 5 ->  6  -> 7  -> 8
//                         \-> 4a -> 5a -> 6a
//
// The chain view for the branch ending in 6a consists of:
//   genesis -> 1 -> 2 -> 3 -> 4a -> 5a -> 6a
type chainView struct {
	nodes []*blockNode
}

// nodeByHeight returns the block node at the specified height.  Nil will be
// returned if the height does not exist.
//
// This function MUST be called with BlockChain.chainLock held (for reads).
func (c *chainView) nodeByHeight(height int32) *blockNode {
	if height < 0 || height >= int32(len(c.nodes)) {
		return nil
	}

	return c.nodes[height]
}

// tip returns the block node at the tip of the chain, or nil if the chain is
// empty.
//
// This function MUST be called with BlockChain.chainLock held (for reads).
func (c *chainView) tip() *blockNode {
	if len(c.nodes) == 0 {
		return nil
	}
	return c.nodes[len(c.nodes)-1]
}

// nodeByHash returns the block node with the given hash, or nil if it isn't
// part of this view.
//
// This function MUST be called with BlockChain.chainLock held (for reads).
func (c *chainView) nodeByHash(hash chainhash.Hash) *blockNode {
	for _, n := range c.nodes {
		if n.hash == hash {
			return n
		}
	}
	return nil
}

// extend appends a new node to the tip of the view.
//
// This function MUST be called with BlockChain.chainLock held (for writes).
func (c *chainView) extend(node *blockNode) {
	c.nodes = append(c.nodes, node)
}
