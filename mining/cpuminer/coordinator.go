package cpuminer

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// coordinatorPollInterval bounds how long the coordinator will sleep
	// between checks of the chain tip when it hasn't been explicitly
	// woken by a tip notification.
	coordinatorPollInterval = 100 * time.Millisecond

	// maxBackoffLevel caps the exponential backoff applied while gated so
	// a long initial sync doesn't grow the wait past roughly a minute.
	maxBackoffLevel = 6

	// baseBackoff is the backoff duration at level 0.
	baseBackoff = 1000 * time.Millisecond
)

// backoffDuration returns the wait time for the given consecutive-gated
// level: base * 2^min(level, maxBackoffLevel), plus up to 25% jitter so a
// large pool of gated miners doesn't all wake in lockstep.
func backoffDuration(level int, rng *rand.Rand) time.Duration {
	if level > maxBackoffLevel {
		level = maxBackoffLevel
	}
	d := baseBackoff << uint(level)
	jitter := time.Duration(rng.Int63n(int64(d)/4 + 1))
	return d + jitter
}

// coordinator owns the currently-published MiningContext and the loop that
// keeps it up to date: it watches the chain tip, rebuilds a template when it
// changes (or when the refresh interval elapses), and gates entirely while
// the configured GatingProvider says mining shouldn't proceed.
type coordinator struct {
	cfg   *Config
	stats *stats

	ctxMu   sync.Mutex
	ctxCond *sync.Cond
	current *MiningContext

	// jobID mirrors current's JobID outside the mutex so a worker's hot
	// loop can check for a stale job with a single relaxed load instead
	// of contending on ctxMu every staleCheckStride hashes.
	jobID atomic.Uint64

	// ready closes the moment the first context is published, so Start
	// can wait on it instead of guessing how long a template takes.
	ready     chan struct{}
	readyOnce sync.Once

	tip  *tipSignal
	quit chan struct{}
	wg   sync.WaitGroup

	rng *rand.Rand
}

func newCoordinator(cfg *Config, st *stats) *coordinator {
	c := &coordinator{
		cfg:   cfg,
		stats: st,
		ready: make(chan struct{}),
		tip:   newTipSignal(),
		quit:  make(chan struct{}),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	c.ctxCond = sync.NewCond(&c.ctxMu)
	return c
}

// snapshot returns the currently published context, blocking until one has
// been published. It returns nil if the coordinator is stopped before a
// context is ever published, so a worker waiting on the very first
// template doesn't block Stop forever.
func (c *coordinator) snapshot() *MiningContext {
	c.ctxMu.Lock()
	defer c.ctxMu.Unlock()
	for c.current == nil {
		select {
		case <-c.quit:
			return nil
		default:
		}
		c.ctxCond.Wait()
	}
	return c.current
}

// currentJobID returns the job id of the most recently published context,
// or zero if none has been published yet. It is the worker's fast path and
// must stay lock-free: a relaxed atomic load, no mutex.
func (c *coordinator) currentJobID() uint64 {
	return c.jobID.Load()
}

func (c *coordinator) publish(mctx *MiningContext) {
	c.ctxMu.Lock()
	c.current = mctx
	c.ctxCond.Broadcast()
	c.ctxMu.Unlock()

	c.jobID.Store(mctx.JobID)
	c.readyOnce.Do(func() { close(c.ready) })
}

// notifyTipChanged wakes the coordinator to reconsider whether a new
// template is needed. It is safe to call from any goroutine, including
// before the coordinator has started.
func (c *coordinator) notifyTipChanged() {
	c.tip.notify()
}

func (c *coordinator) start() {
	c.wg.Add(1)
	go c.run()
}

func (c *coordinator) stop() {
	close(c.quit)

	// Wake any worker parked in snapshot() waiting for the first
	// template; without this it would never notice c.quit closing.
	c.ctxMu.Lock()
	c.ctxCond.Broadcast()
	c.ctxMu.Unlock()

	c.wg.Wait()
}

func (c *coordinator) run() {
	defer c.wg.Done()

	var nextJobID uint64
	var lastHeight int32 = -1
	var lastTemplateTime time.Time
	var backoffLevel int

	for {
		select {
		case <-c.quit:
			return
		default:
		}

		if !c.cfg.Gate.ShouldMine() {
			d := backoffDuration(backoffLevel, c.rng)
			backoffLevel++
			select {
			case <-c.quit:
				return
			case <-c.tip.C():
				// A tip notification is progress even while gated; don't
				// make the next check wait out the backoff we just grew.
				backoffLevel = 0
			case <-time.After(d):
			}
			continue
		}
		backoffLevel = 0

		_, tipHeight := c.cfg.ChainTip.Tip()

		needTemplate := tipHeight != lastHeight || nextJobID == 0
		if !needTemplate && c.cfg.TemplateRefreshInterval > 0 {
			needTemplate = time.Since(lastTemplateTime) >= c.cfg.TemplateRefreshInterval
		}

		if needTemplate {
			mctx, err := c.buildContext()
			if err != nil {
				minrLog.Errorf("cpuminer: failed to build new template: %v", err)
				select {
				case <-c.quit:
					return
				case <-time.After(coordinatorPollInterval):
				}
				continue
			}

			nextJobID++
			mctx.JobID = nextJobID
			lastHeight = tipHeight
			lastTemplateTime = time.Now()
			c.stats.recordTemplate()
			c.publish(mctx)

			if nextJobID == 1 {
				minrLog.Infof("cpuminer: first template ready at height %d", mctx.Height)
			} else {
				minrLog.Infof("cpuminer: new template #%d ready at height %d", nextJobID, mctx.Height)
			}
		}

		select {
		case <-c.quit:
			return
		case <-c.tip.C():
		case <-time.After(coordinatorPollInterval):
		}
	}
}

func (c *coordinator) buildContext() (*MiningContext, error) {
	tmpl, err := c.cfg.Templates.CreateNewBlock(c.cfg.CoinbaseScript)
	if err != nil {
		return nil, err
	}

	// The seed must correspond to the height this candidate would occupy
	// (tmpl.Height, i.e. tipHeight+1), not the current tip's height, or
	// every block at an epoch boundary gets the outgoing seed instead of
	// the incoming one.
	seed, err := c.cfg.SeedForHeight(tmpl.Height)
	if err != nil {
		return nil, err
	}

	return &MiningContext{
		Block:    tmpl.Block,
		SeedHash: seed,
		Bits:     tmpl.Block.Header.Bits,
		Height:   tmpl.Height,
	}, nil
}
