// Package chaincfg defines chain parameters for the networks the node can
// participate in.
package chaincfg

import (
	"math/big"
	"time"

	"github.com/botcoin-project/botcoind/chaincfg/chainhash"
)

// Params defines a bitcoin-like network by its genesis block, proof-of-work
// limits and block reward schedule.  Only the fields the mining engine and
// its supporting block-template generator need are modeled; a full node
// would carry checkpoints, deployment bits, and address prefixes here too.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// GenesisHash is the hash of the first block in the chain.
	GenesisHash chainhash.Hash

	// PowLimit defines the highest allowed proof-of-work value for a
	// block, expanded from PowLimitBits.
	PowLimit *big.Int

	// PowLimitBits is the compact representation of PowLimit.
	PowLimitBits uint32

	// TargetTimePerBlock is the desired amount of time between blocks.
	TargetTimePerBlock time.Duration

	// BaseSubsidy is the block subsidy, in the smallest currency unit,
	// paid to the address in the coinbase output of a newly mined block.
	BaseSubsidy int64
}

// SimNetParams defines the parameters used for local mining tests: a trivial
// proof-of-work limit so the fake and real RandomX oracles alike can find
// valid nonces quickly.
var SimNetParams = &Params{
	Name: "simnet",
	// PowLimitBits corresponds to a maximally permissive target; individual
	// tests tighten it via a lower difficulty as needed.
	PowLimitBits:       0x207fffff,
	TargetTimePerBlock: 60 * time.Second,
	BaseSubsidy:        50 * 1e8,
}

func init() {
	SimNetParams.PowLimit = CompactToBig(SimNetParams.PowLimitBits)
}

// CompactToBig converts a compact representation of a whole number N, held
// in an unsigned 32-bit number, to a big integer. The representation is
// similar to IEEE754 floating point numbers.
//
// Like IEEE754 floating point, there are three basic components: the sign,
// the exponent, and the mantissa. They are broken out as follows:
//
//   - the most significant 8 bits represent the unsigned base 256 exponent
//   - bit 23 (the 24th bit) represents the sign bit
//   - the least significant 23 bits represent the mantissa
//
//     -------------------------------------------------
//     |   Exponent     |    Sign    |    Mantissa      |
//     -------------------------------------------------
//     | 8 bits [31-24] | 1 bit [23] |  23 bits [22-00] |
//     -------------------------------------------------
//
// This type is the standard way bitcoin (and its derivatives) encode
// difficulty targets, and the layout and shift logic here follow that
// encoding exactly.
func CompactToBig(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := uint(compact >> 24)

	var bn *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, 8*(exponent-3))
	}

	if isNegative {
		bn = bn.Neg(bn)
	}
	return bn
}

// BigToCompact converts a whole number N to a compact representation using
// an unsigned 32-bit number. The compact representation only provides 23
// bits of precision, so values larger than (2^23 - 1) only encode the
// most significant digits of the number. See CompactToBig for details.
func BigToCompact(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	var isNegative bool
	var mantissa uint32
	exponent := uint(len(n.Bytes()))

	if exponent <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		tn := new(big.Int).Set(n)
		tn.Rsh(tn, 8*(exponent-3))
		mantissa = uint32(tn.Bits()[0])
	}

	isNegative = n.Sign() < 0

	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	compact := uint32(exponent<<24) | mantissa
	if isNegative {
		compact |= 0x00800000
	}
	return compact
}
