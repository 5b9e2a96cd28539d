package blockchain

import (
	"crypto/sha256"

	"github.com/botcoin-project/botcoind/chaincfg/chainhash"
	"github.com/botcoin-project/botcoind/wire"
)

// hashMerkleBranches takes two hashes, treated as the left and right side of
// a small subtree, and returns the parent hash: the double sha256 of their
// concatenation. This is repeated up the tree by CalcMerkleRoot.
func hashMerkleBranches(left, right *chainhash.Hash) chainhash.Hash {
	var buf [chainhash.HashSize * 2]byte
	copy(buf[:chainhash.HashSize], left[:])
	copy(buf[chainhash.HashSize:], right[:])
	first := sha256.Sum256(buf[:])
	second := sha256.Sum256(first[:])
	return chainhash.Hash(second)
}

// CalcMerkleRoot creates a merkle tree from the slice of transactions and
// returns the resulting root hash of the tree. When a level of the tree has
// an odd number of nodes, the last node is duplicated to pair with itself,
// matching the convention used throughout the bitcoin family of chains.
//
// An empty transaction slice returns the zero hash; a template must always
// carry at least a coinbase transaction before its merkle root is computed.
func CalcMerkleRoot(transactions []*wire.MsgTx) chainhash.Hash {
	if len(transactions) == 0 {
		return chainhash.Hash{}
	}

	level := make([]chainhash.Hash, len(transactions))
	for i, tx := range transactions {
		level[i] = tx.TxHash()
	}

	for len(level) > 1 {
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}
		next := make([]chainhash.Hash, len(level)/2)
		for i := range next {
			next[i] = hashMerkleBranches(&level[i*2], &level[i*2+1])
		}
		level = next
	}

	return level[0]
}
