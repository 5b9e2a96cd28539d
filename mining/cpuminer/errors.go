package cpuminer

import "errors"

var (
	// ErrAlreadyRunning is returned by Start when the miner is already
	// running.
	ErrAlreadyRunning = errors.New("cpuminer: already running")

	// ErrNotRunning is returned by Stop when the miner isn't running.
	ErrNotRunning = errors.New("cpuminer: not running")

	// ErrNoWorkers is returned by Start when Config.NumWorkers is zero.
	ErrNoWorkers = errors.New("cpuminer: num workers must be at least 1")

	// ErrEmptyCoinbaseScript is returned by Start when Config.CoinbaseScript
	// is empty.
	ErrEmptyCoinbaseScript = errors.New("cpuminer: coinbase script must not be empty")
)
