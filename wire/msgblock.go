package wire

import (
	"io"

	"github.com/botcoin-project/botcoind/chaincfg/chainhash"
)

// MsgBlock represents a bitcoin block message: a header followed by the
// block's transactions.
type MsgBlock struct {
	Header       BlockHeader
	Transactions []*MsgTx
}

// BlockHash computes the block identifier hash for this block.
func (msg *MsgBlock) BlockHash() chainhash.Hash {
	return msg.Header.BlockHash()
}

// AddTransaction adds a transaction to the message.
func (msg *MsgBlock) AddTransaction(tx *MsgTx) {
	msg.Transactions = append(msg.Transactions, tx)
}

// Serialize encodes the block to w, header first followed by the count-
// prefixed transaction list.
func (msg *MsgBlock) Serialize(w io.Writer) error {
	if err := msg.Header.BtcEncode(w); err != nil {
		return err
	}
	if err := writeVarInt(w, uint64(len(msg.Transactions))); err != nil {
		return err
	}
	for _, tx := range msg.Transactions {
		if err := tx.Serialize(w); err != nil {
			return err
		}
	}
	return nil
}

// Deserialize decodes a block from r that was previously encoded with
// Serialize.
func (msg *MsgBlock) Deserialize(r io.Reader) error {
	if err := msg.Header.BtcDecode(r); err != nil {
		return err
	}
	numTx, err := readVarInt(r)
	if err != nil {
		return err
	}
	msg.Transactions = make([]*MsgTx, numTx)
	for i := range msg.Transactions {
		tx := &MsgTx{}
		if err := tx.Deserialize(r); err != nil {
			return err
		}
		msg.Transactions[i] = tx
	}
	return nil
}

// ShallowCopy creates a shallow copy of the block suitable for a worker to
// mutate the header's nonce without racing the coordinator-owned template.
// The transaction slice and its contents are shared, never mutated by a
// worker, and therefore safe to alias.
func (msg *MsgBlock) ShallowCopy() MsgBlock {
	return MsgBlock{
		Header:       msg.Header,
		Transactions: msg.Transactions,
	}
}
