// Package mining defines the shared types used to build a block template:
// pooled transaction descriptors, the template itself, and the proof-of-work
// check applied to a solved header, along with the template generator that
// assembles templates from them. The engine that actually grinds nonces
// against a template lives in mining/cpuminer.
package mining

import (
	"time"

	"github.com/botcoin-project/botcoind/acbcutil"
	"github.com/botcoin-project/botcoind/wire"
)

// TxDesc is a descriptor about a transaction in a transaction source along
// with additional metadata.
type TxDesc struct {
	// Tx is the transaction associated with the entry.
	Tx *acbcutil.Tx

	// Added is the time when the entry was added to the source pool.
	Added time.Time

	// Height is the block height when the entry was added to the source
	// pool.
	Height int32

	// Fee is the total fee the transaction associated with the entry pays,
	// in the smallest currency unit.
	Fee int64

	// FeePerKB is the fee the transaction pays in the smallest currency
	// unit per 1000 bytes.
	FeePerKB int64
}

// TxSource represents a source of transactions to consider for inclusion in
// new blocks. A block template generator asks this interface for the
// transactions available at the moment a template is created; it does not
// hold a reference to the pool's internals.
type TxSource interface {
	// MiningDescs returns a slice of mining descriptors for all the
	// transactions in the source pool.
	MiningDescs() []*TxDesc

	// HaveTransaction returns whether the source already has the given
	// transaction.
	HaveTransaction(hash *acbcutil.Tx) bool
}

// BlockTemplate houses a block that has yet to be solved along with
// additional metadata related to the fees paid by each transaction in the
// block.
type BlockTemplate struct {
	// Block is the block template itself: a candidate block with an
	// unsolved header and a full transaction list, coinbase included.
	Block *wire.MsgBlock

	// Fees contains the amount of fees each transaction in the generated
	// template pays, in the same order the transactions appear in Block.
	Fees []int64

	// Height is the height the resulting block will occupy once accepted.
	Height int32

	// ValidPayAddress indicates whether or not the coinbase transaction
	// used a valid payment address.
	ValidPayAddress bool
}
