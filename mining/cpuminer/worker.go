package cpuminer

import (
	"bytes"
	"sync"
	"time"

	"github.com/botcoin-project/botcoind/mining"
	"github.com/botcoin-project/botcoind/mining/randomx"
	"github.com/botcoin-project/botcoind/wire"
)

const (
	// stalenessCheckInterval is how many nonce attempts a worker grinds
	// before checking whether its context is still current.
	stalenessCheckInterval = 1000

	// staleCheckStride is how often, in nonce attempts, a worker checks
	// for a job change mid-batch so it can abandon a stale template
	// early instead of grinding it to the end of the batch.
	staleCheckStride = 100

	// hashBatchSize is how many hashes a worker accumulates locally
	// before flushing them into the shared stats counter, so the atomic
	// add doesn't happen on every single hash.
	hashBatchSize = 10000
)

// worker grinds nonces against whatever MiningContext the coordinator has
// most recently published. Worker id of total workers only ever tries
// nonces id, id+total, id+2*total, ... so no two workers can ever test the
// same nonce, and no coordination between workers is needed beyond reading
// the shared job id.
type worker struct {
	id     uint32
	total  uint32
	coord  *coordinator
	oracle randomx.HashOracle
	stats  *stats
	fast   bool
	submit BlockSubmitter
	quit   <-chan struct{}
}

func newWorker(id, total uint32, coord *coordinator, st *stats, submit BlockSubmitter, fast bool, quit <-chan struct{}) *worker {
	return &worker{
		id:     id,
		total:  total,
		coord:  coord,
		oracle: randomx.NewHashOracle(),
		stats:  st,
		fast:   fast,
		submit: submit,
		quit:   quit,
	}
}

// run is the worker's hot loop. It exits when quit is closed.
func (w *worker) run(wg *sync.WaitGroup) {
	defer wg.Done()
	defer w.oracle.Close()

	var lastJobID uint64
	var working *MiningContext
	var headerBytes []byte
	var pendingHashes uint64
	var nonce uint32

	for {
		select {
		case <-w.quit:
			return
		default:
		}

		if lastJobID == 0 || w.coord.currentJobID() != lastJobID || working == nil {
			working = w.coord.snapshot()
			if working == nil {
				continue
			}

			mode := randomx.LightMode
			if w.fast {
				mode = randomx.FastMode
			}
			if !w.oracle.HasSeed(working.SeedHash) {
				if err := w.oracle.Initialize(working.SeedHash, mode); err != nil {
					minrLog.Errorf("worker %d: failed to initialize RandomX oracle: %v", w.id, err)
					select {
					case <-w.quit:
						return
					case <-time.After(time.Second):
					}
					continue
				}
			}

			var buf bytes.Buffer
			buf.Grow(80)
			_ = working.Block.Header.BtcEncode(&buf)
			headerBytes = buf.Bytes()
			lastJobID = working.JobID
			nonce = w.id
		}

		jobAtStart := lastJobID
		stale := false
		for i := 0; i < stalenessCheckInterval; i++ {
			select {
			case <-w.quit:
				w.flush(&pendingHashes)
				return
			default:
			}

			wire.PutNonce(headerBytes, nonce)
			digest := w.oracle.Hash(headerBytes)
			pendingHashes++
			if pendingHashes >= hashBatchSize {
				w.flush(&pendingHashes)
			}

			if mining.CheckProofOfWork(digest, working.Bits) {
				w.flush(&pendingHashes)
				w.submitSolution(working, nonce)
				lastJobID = 0
				stale = true
				break
			}

			nonce += w.total

			if i%staleCheckStride == 0 && w.coord.currentJobID() != jobAtStart {
				stale = true
				break
			}
		}
		w.flush(&pendingHashes)
		if stale {
			continue
		}
	}
}

// submitSolution builds the solved block by patching nonce into a shallow
// copy of the working template and hands it off for submission.
func (w *worker) submitSolution(working *MiningContext, nonce uint32) {
	solved := working.Block.ShallowCopy()
	solved.Header.Nonce = nonce

	accepted, err := w.submit.SubmitBlock(&solved)
	if err != nil {
		minrLog.Errorf("worker %d: failed to submit solved block: %v", w.id, err)
		return
	}
	if accepted {
		w.stats.recordBlockFound()
		minrLog.Infof("worker %d found block at height %d", w.id, working.Height)
	} else {
		w.stats.recordStaleBlock()
		minrLog.Debugf("worker %d found a stale block at height %d", w.id, working.Height)
	}
}

func (w *worker) flush(pending *uint64) {
	if *pending == 0 {
		return
	}
	w.stats.addHashes(*pending)
	*pending = 0
}
