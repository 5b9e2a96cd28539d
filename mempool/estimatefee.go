package mempool

import (
	"github.com/botcoin-project/botcoind/chaincfg/chainhash"
	"sync"
)

const (
	// estimateFeeDepth is the maximum number of blocks before a transaction
	// is confirmed that we want to track.
	estimateFeeDepth = 25
)

// SatoshiPerByte is number with units of satoshis per byte.
type SatoshiPerByte float64

// observedTransaction represents an observed transaction and some
// additional data required for the fee estimation algorithm.
type observedTransaction struct {
	// A transaction hash.
	hash chainhash.Hash

	// The fee per byte of the transaction in satoshis.
	feeRate SatoshiPerByte

	// The block height when it was observed.
	observed int32

	// The height of the block in which it was mined.
	// If the transaction has not yet been mined, it is zero.
	mined int32
}

// registeredBlock lists the transactions a registered block mined which had
// been previously observed by the FeeEstimator. RegisterBlock is not given
// the block's hash, so hash is left as the zero hash.
type registeredBlock struct {
	hash         chainhash.Hash
	transactions []*observedTransaction
}

// FeeEstimator manages the data necessary to create
// fee estimations. It is safe for concurrent access.
type FeeEstimator struct {
	maxRollback uint32
	binSize     int32

	// The maximum number of replacements that can be made in a single
	// bin per block. Nothing in this package sets or enforces it.
	maxReplacements int32

	// The minimum number of blocks that can be registered with the fee
	// estimator before it will provide answers.
	minRegisteredBlocks uint32

	// The last known height.
	lastKnownHeight int32

	// The number of blocks that have been registered.
	numBlocksRegistered uint32

	mtx      sync.RWMutex
	observed map[chainhash.Hash]*observedTransaction
	bin      [estimateFeeDepth][]*observedTransaction

	// The cached estimates.
	cached []SatoshiPerByte

	// Records of the most recently registered blocks, oldest first, capped
	// at maxRollback entries. Nothing reads them back to revert a
	// registration.
	dropped []*registeredBlock
}

// NewFeeEstimator creates a FeeEstimator that keeps records of at most
// maxRollback registered blocks and which will not produce estimates until
// minRegisteredBlocks blocks have been registered.
func NewFeeEstimator(maxRollback, minRegisteredBlocks uint32) *FeeEstimator {
	return &FeeEstimator{
		maxRollback:         maxRollback,
		minRegisteredBlocks: minRegisteredBlocks,
		lastKnownHeight:     -1,
		observed:            make(map[chainhash.Hash]*observedTransaction),
	}
}

// ObserveTransaction records a transaction as newly observed by the mempool,
// placing it in bin zero until a block that mines it is registered.
func (ef *FeeEstimator) ObserveTransaction(t *observedTransaction) {
	ef.mtx.Lock()
	defer ef.mtx.Unlock()

	if _, exists := ef.observed[t.hash]; exists {
		return
	}

	ef.observed[t.hash] = t
	ef.bin[0] = append(ef.bin[0], t)
	ef.cached = nil
}

// RegisterBlock informs the estimator that a block containing minedHashes
// has been connected at height. Each still-unconfirmed observation advances
// one bin per registered block, so a transaction confirmed after waiting n
// blocks stays in bin n-1; transactions that were never observed are ignored
// since this estimator only has an opinion about traffic it saw arrive.
func (ef *FeeEstimator) RegisterBlock(height int32, minedHashes []chainhash.Hash) {
	ef.mtx.Lock()
	defer ef.mtx.Unlock()

	block := &registeredBlock{}
	for _, hash := range minedHashes {
		obs, ok := ef.observed[hash]
		if !ok {
			continue
		}
		obs.mined = height
		block.transactions = append(block.transactions, obs)
	}
	block.hash = chainhash.Hash{}

	// Age every still-unconfirmed observation by one bin, dropping
	// whatever falls off the end of the tracked depth. Confirmed
	// observations, including those this block just mined, keep their bin.
	var aged [estimateFeeDepth][]*observedTransaction
	for i, bin := range ef.bin {
		for _, obs := range bin {
			if obs.mined != 0 {
				aged[i] = append(aged[i], obs)
			} else if i+1 < estimateFeeDepth {
				aged[i+1] = append(aged[i+1], obs)
			}
		}
	}
	ef.bin = aged

	for _, obs := range block.transactions {
		delete(ef.observed, obs.hash)
	}

	ef.dropped = append(ef.dropped, block)
	if uint32(len(ef.dropped)) > ef.maxRollback {
		ef.dropped = ef.dropped[1:]
	}

	ef.lastKnownHeight = height
	ef.numBlocksRegistered++
	ef.cached = nil
}

// EstimateFee returns the mean fee rate, in satoshis per byte, observed for
// transactions that confirmed within numBlocks blocks of being seen. It
// returns zero until minRegisteredBlocks blocks have been registered.
func (ef *FeeEstimator) EstimateFee(numBlocks uint32) SatoshiPerByte {
	ef.mtx.RLock()
	defer ef.mtx.RUnlock()

	if ef.numBlocksRegistered < ef.minRegisteredBlocks {
		return 0
	}
	if numBlocks == 0 || numBlocks > estimateFeeDepth {
		numBlocks = estimateFeeDepth
	}

	var total SatoshiPerByte
	var count int
	for i := uint32(0); i < numBlocks; i++ {
		for _, obs := range ef.bin[i] {
			if obs.mined == 0 {
				continue
			}
			total += obs.feeRate
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / SatoshiPerByte(count)
}
