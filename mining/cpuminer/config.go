package cpuminer

import (
	"time"

	"github.com/botcoin-project/botcoind/chaincfg/chainhash"
	"github.com/botcoin-project/botcoind/mining"
	"github.com/botcoin-project/botcoind/wire"
)

// TemplateSource builds new block templates on demand. The node's block
// template generator implements this so the coordinator never has to know
// about the mempool or chain state directly -- it only ever asks for a
// template and gets back something ready to have its nonce searched.
type TemplateSource interface {
	// CreateNewBlock assembles a new candidate block paying the coinbase
	// to coinbaseScript.
	CreateNewBlock(coinbaseScript []byte) (*mining.BlockTemplate, error)
}

// ChainTipProvider exposes just enough chain state for the coordinator to
// decide when a template has gone stale and needs replacing.
type ChainTipProvider interface {
	// Tip returns the hash and height of the current best chain tip.
	Tip() (hash chainhash.Hash, height int32)
}

// BlockSubmitter hands a solved block to the rest of the node. It returns
// whether the block was accepted as the new tip; a false result with a nil
// error means the block was valid but arrived too late to extend the chain
// (a stale share, in mining terms), not a failure worth logging loudly.
type BlockSubmitter interface {
	SubmitBlock(block *wire.MsgBlock) (accepted bool, err error)
}

// GatingProvider reports whether the engine should currently be mining at
// all -- it returns false most commonly during initial sync or while the
// node has too few peers to expect a block it finds to propagate. While it
// returns false the coordinator backs off and builds no new templates;
// workers are not stopped and keep grinding the last published context, if
// any.
type GatingProvider interface {
	ShouldMine() bool
}

// Config bundles everything the CPU miner needs from the rest of the node.
// All of the function-shaped fields exist so tests can supply fakes without
// standing up a real chain, mempool, or template generator.
type Config struct {
	// NumWorkers is the number of worker goroutines to run. It must be
	// at least 1.
	NumWorkers uint32

	// CoinbaseScript pays the reward for any block this engine finds.
	// It must be non-empty.
	CoinbaseScript []byte

	// FastMode selects the full ~2 GiB RandomX dataset over the ~256 MiB
	// cache-only mode. Fast mode is what an operator wants for real
	// mining; light mode exists for constrained environments.
	FastMode bool

	// Templates provides new block templates on demand.
	Templates TemplateSource

	// ChainTip provides the current chain tip and its height.
	ChainTip ChainTipProvider

	// Submitter hands solved blocks to the rest of the node.
	Submitter BlockSubmitter

	// Gate reports whether mining should currently proceed.
	Gate GatingProvider

	// SeedForHeight returns the RandomX seed hash that should be active
	// for a candidate block occupying height (the block being mined, not
	// the current tip it extends).
	SeedForHeight func(height int32) ([32]byte, error)

	// TemplateRefreshInterval bounds how long the coordinator will keep
	// mining against a template before rebuilding it even if the tip
	// hasn't moved, so accumulated mempool fees eventually get pulled in.
	// Zero disables the timer.
	TemplateRefreshInterval time.Duration
}
