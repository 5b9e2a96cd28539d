package mempool

import "github.com/botcoin-project/botcoind/acbcutil"

const (
	// DefaultMinRelayTxFee is the default Policy.MinRelayTxFee: the minimum
	// fee in satoshi for a transaction to be treated as free for relay and
	// mining purposes.  The pool does not enforce it.  This value is in
	// Satoshi/1000 bytes.
	DefaultMinRelayTxFee = acbcutil.Amount(1000)
)
