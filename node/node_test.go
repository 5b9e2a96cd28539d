package node

import (
	"testing"
	"time"

	"github.com/botcoin-project/botcoind/chaincfg"
	"github.com/botcoin-project/botcoind/wire"
)

func TestShouldMineGatesOnSyncAndPeers(t *testing.T) {
	n := New(chaincfg.SimNetParams)

	if n.ShouldMine() {
		t.Fatal("a freshly created node should not be minable")
	}

	n.SetInitialSyncDone(true)
	if n.ShouldMine() {
		t.Fatal("a synced node with no peers should still be gated")
	}

	n.SetPeerCount(1)
	if !n.ShouldMine() {
		t.Fatal("a synced node with a peer should be minable")
	}
}

func TestCreateNewBlockBuildsOffTip(t *testing.T) {
	n := New(chaincfg.SimNetParams)

	tmpl, err := n.CreateNewBlock([]byte{0x51})
	if err != nil {
		t.Fatalf("CreateNewBlock() error = %v", err)
	}
	if tmpl.Height != 1 {
		t.Fatalf("CreateNewBlock() height = %d, want 1", tmpl.Height)
	}
	if len(tmpl.Block.Transactions) != 1 {
		t.Fatalf("expected exactly the coinbase transaction in an empty-mempool template, got %d", len(tmpl.Block.Transactions))
	}
}

func TestSubmitBlockAcceptsChildOfTipAndNotifiesMiner(t *testing.T) {
	n := New(chaincfg.SimNetParams)
	n.SetInitialSyncDone(true)
	n.SetPeerCount(1)

	tipHash, _ := n.Tip()
	block := &wire.MsgBlock{
		Header: *wire.NewBlockHeader(1, &tipHash, &tipHash, chaincfg.SimNetParams.PowLimitBits, time.Now()),
	}

	accepted, err := n.SubmitBlock(block)
	if err != nil {
		t.Fatalf("SubmitBlock() error = %v", err)
	}
	if !accepted {
		t.Fatal("expected a block extending the tip to be accepted")
	}

	_, height := n.Tip()
	if height != 1 {
		t.Fatalf("Tip() height after accepted submission = %d, want 1", height)
	}
}

func TestSubmitBlockDuplicateIsNotAccepted(t *testing.T) {
	n := New(chaincfg.SimNetParams)

	block := &wire.MsgBlock{
		Header: *wire.NewBlockHeader(1, &chaincfg.SimNetParams.GenesisHash, &chaincfg.SimNetParams.GenesisHash, chaincfg.SimNetParams.PowLimitBits, time.Now()),
	}
	if _, err := n.SubmitBlock(block); err != nil {
		t.Fatalf("first SubmitBlock() error = %v", err)
	}

	accepted, err := n.SubmitBlock(block)
	if err != nil {
		t.Fatalf("duplicate SubmitBlock() error = %v", err)
	}
	if accepted {
		t.Fatal("expected resubmitting the same block to not be reported as newly accepted")
	}
}

func TestSeedForHeightUsesGenesisBelowLag(t *testing.T) {
	n := New(chaincfg.SimNetParams)

	seed, err := n.SeedForHeight(0)
	if err != nil {
		t.Fatalf("SeedForHeight() error = %v", err)
	}
	if seed != [32]byte(chaincfg.SimNetParams.GenesisHash) {
		t.Fatal("expected the seed below the epoch lag to be derived from the genesis hash")
	}
}
