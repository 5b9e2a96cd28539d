//go:build !cgo

package randomx

import "golang.org/x/crypto/blake2b"

// stubOracle stands in for the real RandomX VM when the binary is built
// without cgo; a cgo build always uses the native library. It hashes with
// plain Blake2b -- the same finalization primitive RandomX itself uses to
// fold VM register state into the output digest -- instead of running the
// actual memory-hard VM, so it is not cryptographically representative of
// the real function. Suitable for tests and for CI builds that never
// intend to actually mine.
type stubOracle struct {
	oracleState
}

func newHashOracle() HashOracle {
	return &stubOracle{}
}

// Initialize records the seed the stub is "keyed" to. There is no cache or
// dataset to build.
func (o *stubOracle) Initialize(seed [32]byte, mode Mode) error {
	o.setSeed(seed)
	return nil
}

// Hash returns blake2b-256(seed || data), keeping the digest a function of
// both the loaded seed and the input the same way the real oracle's is.
func (o *stubOracle) Hash(data []byte) [32]byte {
	o.mu.Lock()
	seed := o.seed
	o.mu.Unlock()

	h, _ := blake2b.New256(nil)
	h.Write(seed[:])
	h.Write(data)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Close is a no-op; the stub holds no native resources.
func (o *stubOracle) Close() {}
