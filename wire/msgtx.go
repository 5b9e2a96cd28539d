package wire

import (
	"bytes"
	"crypto/sha256"
	"io"

	"github.com/botcoin-project/botcoind/chaincfg/chainhash"
)

// maxTxInPerMessage and maxTxOutPerMessage bound how much a single decode
// call will allocate for a maliciously-crafted transaction.
const (
	maxTxInPerMessage  = 1000000
	maxTxOutPerMessage = 1000000
	maxScriptSize      = 1000000
)

// OutPoint defines a bitcoin data type that is used to track previous
// transaction outputs.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// TxIn defines a bitcoin transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Sequence         uint32
}

// TxOut defines a bitcoin transaction output.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// MsgTx represents a bitcoin tx message.  It carries the transactions held
// in the mempool and in a block, and is also used to construct the coinbase
// of a mined block.
type MsgTx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// IsCoinBase determines whether the transaction is a coinbase transaction: a
// single input whose previous outpoint has a zero hash and max index.
func (msg *MsgTx) IsCoinBase() bool {
	if len(msg.TxIn) != 1 {
		return false
	}
	prevOut := &msg.TxIn[0].PreviousOutPoint
	return prevOut.Index == ^uint32(0) && prevOut.Hash == (chainhash.Hash{})
}

// Serialize encodes the transaction to w.
func (msg *MsgTx) Serialize(w io.Writer) error {
	if err := writeUint32(w, uint32(msg.Version)); err != nil {
		return err
	}
	if err := writeVarInt(w, uint64(len(msg.TxIn))); err != nil {
		return err
	}
	for _, in := range msg.TxIn {
		if _, err := w.Write(in.PreviousOutPoint.Hash[:]); err != nil {
			return err
		}
		if err := writeUint32(w, in.PreviousOutPoint.Index); err != nil {
			return err
		}
		if err := writeVarBytes(w, in.SignatureScript); err != nil {
			return err
		}
		if err := writeUint32(w, in.Sequence); err != nil {
			return err
		}
	}
	if err := writeVarInt(w, uint64(len(msg.TxOut))); err != nil {
		return err
	}
	for _, out := range msg.TxOut {
		if err := writeUint64(w, uint64(out.Value)); err != nil {
			return err
		}
		if err := writeVarBytes(w, out.PkScript); err != nil {
			return err
		}
	}
	return writeUint32(w, msg.LockTime)
}

// Deserialize decodes a transaction from r that was previously encoded with
// Serialize.
func (msg *MsgTx) Deserialize(r io.Reader) error {
	version, err := readUint32(r)
	if err != nil {
		return err
	}
	msg.Version = int32(version)

	numIn, err := readVarInt(r)
	if err != nil {
		return err
	}
	if numIn > maxTxInPerMessage {
		return io.ErrShortBuffer
	}
	msg.TxIn = make([]*TxIn, numIn)
	for i := range msg.TxIn {
		in := &TxIn{}
		if _, err := io.ReadFull(r, in.PreviousOutPoint.Hash[:]); err != nil {
			return err
		}
		if in.PreviousOutPoint.Index, err = readUint32(r); err != nil {
			return err
		}
		if in.SignatureScript, err = readVarBytes(r, maxScriptSize); err != nil {
			return err
		}
		if in.Sequence, err = readUint32(r); err != nil {
			return err
		}
		msg.TxIn[i] = in
	}

	numOut, err := readVarInt(r)
	if err != nil {
		return err
	}
	if numOut > maxTxOutPerMessage {
		return io.ErrShortBuffer
	}
	msg.TxOut = make([]*TxOut, numOut)
	for i := range msg.TxOut {
		out := &TxOut{}
		value, err := readUint64(r)
		if err != nil {
			return err
		}
		out.Value = int64(value)
		if out.PkScript, err = readVarBytes(r, maxScriptSize); err != nil {
			return err
		}
		msg.TxOut[i] = out
	}

	msg.LockTime, err = readUint32(r)
	return err
}

// Bytes returns the serialized representation of the transaction.
func (msg *MsgTx) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := msg.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TxHash generates the double sha256 hash for the transaction.
func (msg *MsgTx) TxHash() chainhash.Hash {
	var buf bytes.Buffer
	// Errors are impossible writing to a bytes.Buffer.
	_ = msg.Serialize(&buf)
	first := sha256.Sum256(buf.Bytes())
	second := sha256.Sum256(first[:])
	return chainhash.Hash(second)
}

// NewMsgTx returns a new bitcoin tx message with the given version and no
// transaction inputs or outputs.  Also, the lock time is set to
// zero to indicate the transaction is valid immediately as opposed to some
// time in future.
func NewMsgTx(version int32) *MsgTx {
	return &MsgTx{Version: version}
}

// NewTxOut returns a new bitcoin transaction output with the provided
// transaction value and public key script.
func NewTxOut(value int64, pkScript []byte) *TxOut {
	return &TxOut{Value: value, PkScript: pkScript}
}

// NewTxIn returns a new bitcoin transaction input with the provided
// previous outpoint point and signature script with a default sequence of
// the maximum uint32 value.
func NewTxIn(prevOut *OutPoint, signatureScript []byte) *TxIn {
	return &TxIn{
		PreviousOutPoint: *prevOut,
		SignatureScript:  signatureScript,
		Sequence:         ^uint32(0),
	}
}
