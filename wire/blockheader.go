package wire

import (
	"bytes"
	"crypto/sha256"
	"io"
	"time"

	"github.com/botcoin-project/botcoind/chaincfg/chainhash"
)

// BlockHeaderLen is the number of bytes a BlockHeader occupies on the wire.
// It is fixed regardless of the number of transactions in the block, which is
// what makes it cheap to hash repeatedly while grinding a nonce.
const BlockHeaderLen = 80

// BlockHeader defines information about a block and is used in the bitcoin
// block (MsgBlock) message.
//
// Nonce occupies the last four bytes of the serialized form and is the only
// field a miner mutates once a template has been published; every other
// field is fixed for the life of a MiningContext.
type BlockHeader struct {
	// Version of the block.  This is not the same as the protocol version.
	Version int32

	// Hash of the previous block header in the block chain.
	PrevBlock chainhash.Hash

	// Merkle tree reference to hash of all transactions for the block.
	MerkleRoot chainhash.Hash

	// Time the block was created.  This is, unfortunately, encoded as a
	// uint32 on the wire and therefore is limited to 2106.
	Timestamp time.Time

	// Difficulty target for the block in compact form.
	Bits uint32

	// Nonce used to generate the block. This is the only field a worker
	// mutates while grinding.
	Nonce uint32
}

// BtcEncode serializes the block header to w in the fixed 80-byte little
// endian layout.
func (h *BlockHeader) BtcEncode(w io.Writer) error {
	if err := writeUint32(w, uint32(h.Version)); err != nil {
		return err
	}
	if _, err := w.Write(h.PrevBlock[:]); err != nil {
		return err
	}
	if _, err := w.Write(h.MerkleRoot[:]); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(h.Timestamp.Unix())); err != nil {
		return err
	}
	if err := writeUint32(w, h.Bits); err != nil {
		return err
	}
	return writeUint32(w, h.Nonce)
}

// BtcDecode deserializes a block header from r, which must have been
// produced by BtcEncode.
func (h *BlockHeader) BtcDecode(r io.Reader) error {
	version, err := readUint32(r)
	if err != nil {
		return err
	}
	h.Version = int32(version)

	if _, err := io.ReadFull(r, h.PrevBlock[:]); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, h.MerkleRoot[:]); err != nil {
		return err
	}

	ts, err := readUint32(r)
	if err != nil {
		return err
	}
	h.Timestamp = time.Unix(int64(ts), 0)

	if h.Bits, err = readUint32(r); err != nil {
		return err
	}
	h.Nonce, err = readUint32(r)
	return err
}

// Bytes returns the fixed 80-byte serialized form of the header.  The last
// four bytes are always the little-endian encoded nonce, which is the
// property the mining worker's hot loop relies on to patch the nonce in
// place without re-serializing the rest of the header.
func (h *BlockHeader) Bytes() [BlockHeaderLen]byte {
	var buf bytes.Buffer
	buf.Grow(BlockHeaderLen)
	// Encoding errors are impossible against a bytes.Buffer.
	_ = h.BtcEncode(&buf)
	var out [BlockHeaderLen]byte
	copy(out[:], buf.Bytes())
	return out
}

// PutNonce patches the nonce field directly into a previously serialized
// header, avoiding a full re-encode on every grinding attempt.
func PutNonce(headerBytes []byte, nonce uint32) {
	littleEndian.PutUint32(headerBytes[BlockHeaderLen-4:BlockHeaderLen], nonce)
}

// BlockHash computes the block identifier hash for the header: a double
// SHA-256 over the serialized header, following the same convention as the
// rest of the acbc/btcd lineage for chain indexing. This is distinct from
// the RandomX proof-of-work digest used to test difficulty; the two only
// need to agree that a valid header hashes below target under the RandomX
// oracle, not that they compute the same value.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	data := h.Bytes()
	first := sha256.Sum256(data[:])
	second := sha256.Sum256(first[:])
	return chainhash.Hash(second)
}

// NewBlockHeader returns a new BlockHeader using the provided parameters and
// zero-value Nonce.
func NewBlockHeader(version int32, prevHash, merkleRoot *chainhash.Hash, bits uint32, timestamp time.Time) *BlockHeader {
	return &BlockHeader{
		Version:    version,
		PrevBlock:  *prevHash,
		MerkleRoot: *merkleRoot,
		Timestamp:  timestamp,
		Bits:       bits,
	}
}
