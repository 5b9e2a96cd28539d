package cpuminer

import (
	"github.com/botcoin-project/botcoind/log"
)

// minrLog is the subsystem logger for the CPU mining engine. It is a package
// variable, in the same style as the rest of the tree's subsystem loggers,
// rather than threaded through Config, so log statements read the same way
// throughout the codebase.
var minrLog = log.MinrLog
