package mining

import (
	"encoding/binary"
	"errors"
	"sort"
	"time"

	"github.com/botcoin-project/botcoind/blockchain"
	"github.com/botcoin-project/botcoind/chaincfg"
	"github.com/botcoin-project/botcoind/log"
	"github.com/botcoin-project/botcoind/wire"
)

// BlockTemplateGenerator builds new block templates by pulling transactions
// out of a TxSource, ordered by the fee rate they pay, and assembling them
// behind a coinbase transaction that pays the given script.
type BlockTemplateGenerator struct {
	chainParams *chaincfg.Params
	chain       *blockchain.BlockChain
	txSource    TxSource
}

// NewBlockTemplateGenerator returns a generator that builds templates for
// params on top of chain, sourcing transactions from txSource.
func NewBlockTemplateGenerator(params *chaincfg.Params, chain *blockchain.BlockChain, txSource TxSource) *BlockTemplateGenerator {
	return &BlockTemplateGenerator{
		chainParams: params,
		chain:       chain,
		txSource:    txSource,
	}
}

// CreateNewBlock assembles a candidate block on top of the current chain
// tip: a coinbase transaction paying coinbaseScript, followed by every
// mempool transaction, ordered highest fee rate first; no block size limit
// is applied. Every header
// field except the nonce is set; a miner is expected to search that field.
func (g *BlockTemplateGenerator) CreateNewBlock(coinbaseScript []byte) (*BlockTemplate, error) {
	if len(coinbaseScript) == 0 {
		return nil, errors.New("mining: coinbase script must not be empty")
	}

	tipHash, tipHeight, tipBits := g.chain.Tip()
	height := tipHeight + 1

	coinbaseTx := createCoinbaseTx(g.chainParams, coinbaseScript, height)

	descs := g.txSource.MiningDescs()
	sortByFeeRate(descs)

	transactions := make([]*wire.MsgTx, 0, len(descs)+1)
	transactions = append(transactions, coinbaseTx)

	fees := make([]int64, 0, len(descs)+1)
	fees = append(fees, 0)

	for _, desc := range descs {
		transactions = append(transactions, desc.Tx.MsgTx())
		fees = append(fees, desc.Fee)
	}

	merkleRoot := blockchain.CalcMerkleRoot(transactions)
	header := wire.NewBlockHeader(1, &tipHash, &merkleRoot, tipBits, time.Now())

	block := &wire.MsgBlock{
		Header:       *header,
		Transactions: transactions,
	}

	log.GenrLog.Debugf("built template at height %d with %d transaction(s)", height, len(transactions))

	return &BlockTemplate{
		Block:           block,
		Fees:            fees,
		Height:          height,
		ValidPayAddress: true,
	}, nil
}

// createCoinbaseTx builds the coinbase transaction for a block at height,
// paying the full block subsidy to pkScript. The signature script encodes
// the height so coinbase transactions at different heights never collide.
func createCoinbaseTx(params *chaincfg.Params, pkScript []byte, height int32) *wire.MsgTx {
	tx := wire.NewMsgTx(1)

	sigScript := make([]byte, 4)
	binary.LittleEndian.PutUint32(sigScript, uint32(height))

	coinbaseIn := wire.NewTxIn(&wire.OutPoint{Index: ^uint32(0)}, sigScript)
	tx.TxIn = append(tx.TxIn, coinbaseIn)
	tx.TxOut = append(tx.TxOut, wire.NewTxOut(params.BaseSubsidy, pkScript))

	return tx
}

// sortByFeeRate orders descs from highest to lowest fee rate so the
// generator fills the block with the most valuable transactions first.
func sortByFeeRate(descs []*TxDesc) {
	sort.Slice(descs, func(i, j int) bool {
		return descs[i].FeePerKB > descs[j].FeePerKB
	})
}
