package mining

import (
	"math/big"

	"github.com/botcoin-project/botcoind/chaincfg"
)

// CheckProofOfWork reports whether digest, interpreted as a little-endian
// 256-bit integer the way the RandomX oracle produces it, is numerically at
// or below the target encoded by bits. It performs no other validation of
// the header the digest was computed over.
func CheckProofOfWork(digest [32]byte, bits uint32) bool {
	target := chaincfg.CompactToBig(bits)
	if target.Sign() <= 0 {
		return false
	}

	reversed := make([]byte, len(digest))
	for i, b := range digest {
		reversed[len(digest)-1-i] = b
	}

	hashNum := new(big.Int).SetBytes(reversed)
	return hashNum.Cmp(target) <= 0
}
