// Package node wires together the chain, mempool, and block template
// generator, and adapts them to the small interfaces the mining engine in
// mining/cpuminer expects. It stands in for the transport, peer, and RPC
// layers a full node would otherwise use to drive those same components.
package node

import (
	"sync"
	"time"

	"github.com/botcoin-project/botcoind/acbcutil"
	"github.com/botcoin-project/botcoind/blockchain"
	"github.com/botcoin-project/botcoind/chaincfg"
	"github.com/botcoin-project/botcoind/chaincfg/chainhash"
	"github.com/botcoin-project/botcoind/log"
	"github.com/botcoin-project/botcoind/mempool"
	"github.com/botcoin-project/botcoind/mining"
	"github.com/botcoin-project/botcoind/mining/cpuminer"
	"github.com/botcoin-project/botcoind/mining/randomx"
	"github.com/botcoin-project/botcoind/wire"
)

// MinPeersForMining is the minimum number of connected peers required
// before the node considers itself ready to mine.
const MinPeersForMining = 1

// feeEstimatorMaxRollback and feeEstimatorMinBlocks tune how much history
// the mempool's fee estimator keeps and how long it stays silent on
// startup before it will offer an estimate.
const (
	feeEstimatorMaxRollback = 1008
	feeEstimatorMinBlocks   = 1
)

// Node owns the chain, mempool, and block template generator, and
// implements every interface mining/cpuminer.Config needs from the rest of
// the system: TemplateSource, ChainTipProvider, BlockSubmitter, and
// GatingProvider.
type Node struct {
	params    *chaincfg.Params
	chain     *blockchain.BlockChain
	txPool    *mempool.TxPool
	generator *mining.BlockTemplateGenerator

	minerMu sync.Mutex
	miner   *cpuminer.CPUMiner
}

// New creates a Node for params with an empty mempool and a freshly seeded
// chain.
func New(params *chaincfg.Params) *Node {
	chain := blockchain.New(params)

	feeEstimator := mempool.NewFeeEstimator(feeEstimatorMaxRollback, feeEstimatorMinBlocks)
	txPool := mempool.New(mempool.Config{
		Policy:       mempool.Policy{MinRelayTxFee: mempool.DefaultMinRelayTxFee},
		FeeEstimator: feeEstimator,
	})

	generator := mining.NewBlockTemplateGenerator(params, chain, txPool)

	return &Node{
		params:    params,
		chain:     chain,
		txPool:    txPool,
		generator: generator,
	}
}

// SetMiner registers the CPU miner this node should notify when the tip
// changes. It must be called once, before the miner is started.
func (n *Node) SetMiner(miner *cpuminer.CPUMiner) {
	n.minerMu.Lock()
	n.miner = miner
	n.minerMu.Unlock()
}

// NewMinerConfig builds a cpuminer.Config wired to this node's chain,
// mempool, and template generator.
func (n *Node) NewMinerConfig(numWorkers uint32, coinbaseScript []byte, fastMode bool, refreshInterval time.Duration) cpuminer.Config {
	return cpuminer.Config{
		NumWorkers:              numWorkers,
		CoinbaseScript:          coinbaseScript,
		FastMode:                fastMode,
		Templates:               n,
		ChainTip:                n,
		Submitter:               n,
		Gate:                    n,
		SeedForHeight:           n.SeedForHeight,
		TemplateRefreshInterval: refreshInterval,
	}
}

// SetPeerCount records the node's current peer count for ShouldMine's
// gating decision. A p2p layer would call this on every connect/disconnect.
func (n *Node) SetPeerCount(count int32) {
	n.chain.SetPeerCount(count)
}

// SetInitialSyncDone marks the chain as caught up so ShouldMine stops
// gating on initial sync.
func (n *Node) SetInitialSyncDone(done bool) {
	n.chain.SetInitialSyncDone(done)
}

// CreateNewBlock implements cpuminer.TemplateSource.
func (n *Node) CreateNewBlock(coinbaseScript []byte) (*mining.BlockTemplate, error) {
	return n.generator.CreateNewBlock(coinbaseScript)
}

// Tip implements cpuminer.ChainTipProvider.
func (n *Node) Tip() (chainhash.Hash, int32) {
	hash, height, _ := n.chain.Tip()
	return hash, height
}

// ShouldMine implements cpuminer.GatingProvider: mining only proceeds once
// the chain believes itself synced and the node has at least
// MinPeersForMining connected peers.
func (n *Node) ShouldMine() bool {
	return n.chain.IsCurrent() && n.chain.PeerCount() >= MinPeersForMining
}

// SeedForHeight returns the RandomX seed hash active for a candidate block
// occupying height, derived from the hash of the block at that epoch's seed
// height. Callers must pass the candidate's own height, not the tip it
// extends, or blocks at an epoch's rotation edge get the outgoing seed.
func (n *Node) SeedForHeight(height int32) ([32]byte, error) {
	seedHeight := randomx.SeedHeight(uint64(height))
	hash, err := n.chain.BlockHashByHeight(int32(seedHeight))
	if err != nil {
		return [32]byte{}, err
	}
	return [32]byte(*hash), nil
}

// SubmitBlock implements cpuminer.BlockSubmitter: it hands the block to the
// chain, and on acceptance drops the block's non-coinbase transactions from
// the mempool and wakes the miner to build a template on the new tip.
func (n *Node) SubmitBlock(block *wire.MsgBlock) (bool, error) {
	result, err := n.chain.ProcessBlock(block)
	if err != nil {
		return false, err
	}
	if result != blockchain.Accepted {
		return false, nil
	}

	_, height, _ := n.chain.Tip()

	abBlock := acbcutil.NewBlock(block)
	abBlock.SetHeight(height)

	txs := abBlock.Transactions()
	minedTxs := make([]*acbcutil.Tx, 0, len(txs))
	if len(txs) > 1 {
		minedTxs = append(minedTxs, txs[1:]...)
	}
	n.txPool.RegisterMinedBlock(height, minedTxs)

	log.NodeLog.Infof("accepted block %s at height %d (%d tx)", abBlock.Hash(), abBlock.Height(), len(minedTxs))

	n.OnTipChanged()
	return true, nil
}

// OnTipChanged notifies the registered miner that the chain tip moved, so
// its coordinator rebuilds a template immediately rather than waiting for
// its next poll. It is safe to call whether or not a miner is registered or
// running.
func (n *Node) OnTipChanged() {
	n.minerMu.Lock()
	miner := n.miner
	n.minerMu.Unlock()

	if miner != nil {
		miner.NotifyTipChanged()
	}

	log.NodeLog.Debugf("tip changed")
}
