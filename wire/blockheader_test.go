package wire

import (
	"bytes"
	"testing"
	"time"

	"github.com/botcoin-project/botcoind/chaincfg/chainhash"
)

func sampleHeader() *BlockHeader {
	var prev, merkle chainhash.Hash
	prev[0] = 0xaa
	merkle[0] = 0xbb
	return NewBlockHeader(1, &prev, &merkle, 0x1d00ffff, time.Unix(1700000000, 0))
}

func TestBlockHeaderRoundTrip(t *testing.T) {
	h := sampleHeader()
	h.Nonce = 12345

	var buf bytes.Buffer
	if err := h.BtcEncode(&buf); err != nil {
		t.Fatalf("BtcEncode: %v", err)
	}
	if buf.Len() != BlockHeaderLen {
		t.Fatalf("encoded length = %d, want %d", buf.Len(), BlockHeaderLen)
	}

	var got BlockHeader
	if err := got.BtcDecode(&buf); err != nil {
		t.Fatalf("BtcDecode: %v", err)
	}

	if got.Version != h.Version || got.Bits != h.Bits || got.Nonce != h.Nonce {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, h)
	}
	if got.PrevBlock != h.PrevBlock || got.MerkleRoot != h.MerkleRoot {
		t.Fatalf("hash fields mismatch after round trip")
	}
}

func TestPutNoncePatchesLastFourBytes(t *testing.T) {
	h := sampleHeader()
	h.Nonce = 0
	data := h.Bytes()

	PutNonce(data[:], 0xdeadbeef)

	var reDecoded BlockHeader
	if err := reDecoded.BtcDecode(bytes.NewReader(data[:])); err != nil {
		t.Fatalf("BtcDecode after PutNonce: %v", err)
	}
	if reDecoded.Nonce != 0xdeadbeef {
		t.Fatalf("nonce = %#x, want %#x", reDecoded.Nonce, uint32(0xdeadbeef))
	}

	// Every other field must be untouched by the patch.
	original := h.Bytes()
	for i := 0; i < BlockHeaderLen-4; i++ {
		if data[i] != original[i] {
			t.Fatalf("byte %d changed by PutNonce: got %#x, want %#x", i, data[i], original[i])
		}
	}
}

func TestBlockHashIsNonZero(t *testing.T) {
	h := sampleHeader()
	hash := h.BlockHash()
	if hash == (chainhash.Hash{}) {
		t.Fatal("BlockHash returned the zero hash for a non-empty header")
	}
}
