package mempool

import (
	"sync"
	"time"

	"github.com/botcoin-project/botcoind/acbcutil"
	"github.com/botcoin-project/botcoind/chaincfg/chainhash"
	"github.com/botcoin-project/botcoind/log"
	"github.com/botcoin-project/botcoind/mining"
)

const (
	// DefaultBlockPrioritySize is the default size in bytes for high-
	// priority / low-fee transactions.  This pool does not consult it when
	// admitting transactions, and the template generator does not either.
	DefaultBlockPrioritySize = 50000

	// orphanExpireScanInterval sets the initial nextExpireScan time.  This
	// pool keeps no orphan pool and runs no expiry scans.
	orphanExpireScanInterval = time.Minute * 5
)

// TxDesc is a descriptor containing a transaction in the mempool along with
// additional metadata.
type TxDesc struct {
	mining.TxDesc

	// StartingPriority is the priority of the transaction when it was added
	// to the pool.
	StartingPriority float64
}

// Config is the collection of collaborators and policy knobs the pool needs
// that come from outside the package.
type Config struct {
	// Policy houses the tunable policy parameters governing which
	// transactions are considered free versus penalized.
	Policy Policy

	// FeeEstimator, if non-nil, is fed every transaction added to the pool
	// and every block registered through RegisterMinedBlock so it can build
	// fee-rate histograms for future estimates. RemoveTransaction does not
	// feed it. It is optional so tests can run without it.
	FeeEstimator *FeeEstimator
}

// Policy houses the policy (configuration parameters) for the mempool. The
// pool stores it but does not apply it when admitting transactions.
type Policy struct {
	// MinRelayTxFee defines the minimum transaction fee in the smallest
	// currency unit per kilobyte for a transaction to be treated as free
	// for relay and mining purposes.
	MinRelayTxFee acbcutil.Amount
}

// TxPool is used as a source of transactions that need to be mined into
// blocks. It is safe for concurrent access from multiple goroutines, such as
// the peers accepting new transactions and the template generator reading a
// snapshot for a candidate block.
type TxPool struct {
	// The following variable is protected by mtx.
	lastUpdated int64 // last time pool was updated, in Unix seconds.

	mtx  sync.RWMutex
	cfg  Config
	pool map[chainhash.Hash]*TxDesc

	// nextExpireScan is set when the pool is created.  Nothing in this
	// pool reads it, since it keeps no orphans to scan.
	nextExpireScan time.Time
}

// New returns a new empty memory pool for transactions.
func New(cfg Config) *TxPool {
	return &TxPool{
		cfg:            cfg,
		pool:           make(map[chainhash.Hash]*TxDesc),
		nextExpireScan: time.Now().Add(orphanExpireScanInterval),
	}
}

// LastUpdated returns the last time the pool was updated.
func (mp *TxPool) LastUpdated() time.Time {
	return time.Unix(mp.lastUpdatedUnix(), 0)
}

func (mp *TxPool) lastUpdatedUnix() int64 {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()
	return mp.lastUpdated
}

// HaveTransaction returns whether the pool already has the passed
// transaction, implementing the mining.TxSource interface.
func (mp *TxPool) HaveTransaction(tx *acbcutil.Tx) bool {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()
	_, exists := mp.pool[*tx.Hash()]
	return exists
}

// addTransaction adds the passed transaction, along with its fee-related
// bookkeeping, to the memory pool.
//
// This function MUST be called with the mempool lock held (for writes).
func (mp *TxPool) addTransaction(tx *acbcutil.Tx, height int32, fee int64) *TxDesc {
	serializedLen := 0 // stays zero if serialization fails, leaving FeePerKB zero
	if b, err := tx.MsgTx().Bytes(); err == nil {
		serializedLen = len(b)
	}

	var feePerKB int64
	if serializedLen > 0 {
		feePerKB = fee * 1000 / int64(serializedLen)
	}

	txD := &TxDesc{
		TxDesc: mining.TxDesc{
			Tx:       tx,
			Added:    time.Now(),
			Height:   height,
			Fee:      fee,
			FeePerKB: feePerKB,
		},
	}

	mp.pool[*tx.Hash()] = txD
	mp.lastUpdated = time.Now().Unix()
	return txD
}

// AddTransaction inserts a transaction into the pool along with the fee it
// pays, in the smallest currency unit, and its observation height. It skips
// the full script/consensus validation a relaying peer would perform since
// nothing downstream of the template generator needs it.
func (mp *TxPool) AddTransaction(tx *acbcutil.Tx, height int32, fee int64) *TxDesc {
	mp.mtx.Lock()
	txD := mp.addTransaction(tx, height, fee)
	mp.mtx.Unlock()

	if mp.cfg.FeeEstimator != nil {
		mp.cfg.FeeEstimator.ObserveTransaction(&observedTransaction{
			hash:     *tx.Hash(),
			feeRate:  SatoshiPerByte(float64(txD.FeePerKB) / 1000),
			observed: height,
		})
	}

	log.TxmpLog.Debugf("accepted transaction %s (pool size %d)", tx.Hash(), mp.Count())
	return txD
}

// RemoveTransaction removes the passed transaction from the mempool. Callers
// use this once a transaction has been mined into an accepted block.
func (mp *TxPool) RemoveTransaction(tx *acbcutil.Tx) {
	mp.mtx.Lock()
	defer mp.mtx.Unlock()

	hash := *tx.Hash()
	if _, exists := mp.pool[hash]; exists {
		delete(mp.pool, hash)
		mp.lastUpdated = time.Now().Unix()
		log.TxmpLog.Debugf("removed transaction %s", hash)
	}
}

// RegisterMinedBlock removes the given transactions from the pool because
// they were just mined into a block at height, and feeds their hashes to the
// fee estimator so it can age its histograms and stop tracking them as
// unconfirmed.
func (mp *TxPool) RegisterMinedBlock(height int32, txs []*acbcutil.Tx) {
	hashes := make([]chainhash.Hash, 0, len(txs))
	mp.mtx.Lock()
	for _, tx := range txs {
		hash := *tx.Hash()
		hashes = append(hashes, hash)
		if _, exists := mp.pool[hash]; exists {
			delete(mp.pool, hash)
			mp.lastUpdated = time.Now().Unix()
		}
	}
	mp.mtx.Unlock()

	if mp.cfg.FeeEstimator != nil {
		mp.cfg.FeeEstimator.RegisterBlock(height, hashes)
	}

	log.TxmpLog.Debugf("removed %d mined transaction(s) at height %d", len(hashes), height)
}

// MiningDescs returns a slice of mining descriptors for all the transactions
// in the pool, implementing the mining.TxSource interface. The template
// generator calls this once per template build and does not retain the
// pool's internal map.
func (mp *TxPool) MiningDescs() []*mining.TxDesc {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()

	descs := make([]*mining.TxDesc, 0, len(mp.pool))
	for _, desc := range mp.pool {
		descCopy := desc.TxDesc
		descs = append(descs, &descCopy)
	}
	return descs
}

// Count returns the number of transactions currently in the pool.
func (mp *TxPool) Count() int {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()
	return len(mp.pool)
}
