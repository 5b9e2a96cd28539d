// Package cpuminer implements an in-process proof-of-work mining engine: a
// coordinator goroutine that keeps a candidate block template up to date and
// a pool of worker goroutines that grind RandomX nonces against it using a
// lock-free stride pattern.
package cpuminer

import (
	"sync"
	"time"
)

// firstTemplateTimeout bounds how long Start waits for the coordinator to
// publish its first template before spawning workers anyway. It is a var,
// not a const, so tests exercising a miner that never gets unstuck don't
// have to wait the full 30 seconds out.
var firstTemplateTimeout = 30 * time.Second

// CPUMiner provides facilities for solving blocks (mining) using the CPU in
// a concurrency-safe manner. It consists of a coordinator goroutine that
// keeps a candidate block template current and a pool of worker goroutines
// that search for a winning nonce against the coordinator's most recently
// published MiningContext.
type CPUMiner struct {
	mu sync.Mutex

	cfg     Config
	started bool

	coord *coordinator
	stats *stats

	workerWg sync.WaitGroup
	quit     chan struct{}
}

// New returns a CPU miner configured per cfg. The miner is not started
// until Start is called.
func New(cfg Config) *CPUMiner {
	return &CPUMiner{
		cfg:   cfg,
		stats: &stats{},
	}
}

// Start validates the configuration, spins up the coordinator, waits
// briefly for its first template, and then launches the configured number
// of worker goroutines. It returns ErrAlreadyRunning if called while the
// miner is already running.
func (m *CPUMiner) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyRunning
	}
	if m.cfg.NumWorkers == 0 {
		return ErrNoWorkers
	}
	if len(m.cfg.CoinbaseScript) == 0 {
		return ErrEmptyCoinbaseScript
	}

	m.stats.reset()
	m.quit = make(chan struct{})

	m.coord = newCoordinator(&m.cfg, m.stats)
	m.coord.start()

	select {
	case <-m.coord.ready:
	case <-time.After(firstTemplateTimeout):
		minrLog.Warnf("cpuminer: no template published within %s, starting workers to idle until one is", firstTemplateTimeout)
	}

	minrLog.Infof("cpuminer: starting %d worker(s)", m.cfg.NumWorkers)

	for i := uint32(0); i < m.cfg.NumWorkers; i++ {
		w := newWorker(i, m.cfg.NumWorkers, m.coord, m.stats, m.cfg.Submitter, m.cfg.FastMode, m.quit)
		m.workerWg.Add(1)
		go w.run(&m.workerWg)
	}

	m.started = true
	return nil
}

// Stop signals the coordinator and every worker to exit and waits for them
// to finish. It returns ErrNotRunning if called while the miner isn't
// running.
func (m *CPUMiner) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return ErrNotRunning
	}

	close(m.quit)
	m.coord.stop()
	m.workerWg.Wait()

	minrLog.Infof(
		"cpuminer: stopped after %d hashes, %d block(s) found, %d stale, %d template(s), %.2f H/s",
		m.stats.hashCount.Load(), m.stats.blocksFound.Load(), m.stats.staleBlocks.Load(),
		m.stats.templateCount.Load(), m.stats.hashRate(),
	)

	m.started = false
	return nil
}

// IsRunning reports whether the miner is currently running.
func (m *CPUMiner) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

// NotifyTipChanged tells the miner the chain tip has moved, so its
// coordinator can rebuild a template immediately instead of waiting for its
// next poll. Calling this while the miner isn't running is a harmless no-op.
func (m *CPUMiner) NotifyTipChanged() {
	m.mu.Lock()
	coord := m.coord
	m.mu.Unlock()

	if coord != nil {
		coord.notifyTipChanged()
	}
}

// HashCount returns the total number of hashes computed since the miner was
// last started.
func (m *CPUMiner) HashCount() uint64 {
	return m.stats.hashCount.Load()
}

// BlocksFound returns the number of blocks this miner has found and had
// accepted since it was last started.
func (m *CPUMiner) BlocksFound() uint64 {
	return m.stats.blocksFound.Load()
}

// StaleBlocks returns the number of blocks this miner found but which were
// rejected as stale (a competing block was accepted first).
func (m *CPUMiner) StaleBlocks() uint64 {
	return m.stats.staleBlocks.Load()
}

// TemplateCount returns the number of distinct templates the coordinator
// has built since the miner was last started.
func (m *CPUMiner) TemplateCount() uint64 {
	return m.stats.templateCount.Load()
}

// HashRate returns the mean hashes-per-second since the miner was last
// started.
func (m *CPUMiner) HashRate() float64 {
	return m.stats.hashRate()
}

// ThreadCount returns the number of worker goroutines the miner is
// configured to run.
func (m *CPUMiner) ThreadCount() uint32 {
	return m.cfg.NumWorkers
}
