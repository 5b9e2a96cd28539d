package blockchain

import (
	"testing"
	"time"

	"github.com/botcoin-project/botcoind/chaincfg"
	"github.com/botcoin-project/botcoind/wire"
)

func childBlock(prev *BlockChain, bits uint32) *wire.MsgBlock {
	tipHash, _, _ := prev.Tip()
	header := wire.NewBlockHeader(1, &tipHash, &tipHash, bits, time.Now())
	return &wire.MsgBlock{Header: *header}
}

func TestNewSeedsGenesisTip(t *testing.T) {
	chain := New(chaincfg.SimNetParams)

	hash, height, bits := chain.Tip()
	if height != 0 {
		t.Fatalf("Tip() height = %d, want 0", height)
	}
	if hash != chaincfg.SimNetParams.GenesisHash {
		t.Fatalf("Tip() hash = %v, want genesis hash", hash)
	}
	if bits != chaincfg.SimNetParams.PowLimitBits {
		t.Fatalf("Tip() bits = %x, want %x", bits, chaincfg.SimNetParams.PowLimitBits)
	}
	if chain.IsCurrent() {
		t.Fatal("a freshly created chain should not report itself current")
	}
}

func TestProcessBlockAcceptsChildOfTip(t *testing.T) {
	chain := New(chaincfg.SimNetParams)
	block := childBlock(chain, chaincfg.SimNetParams.PowLimitBits)

	result, err := chain.ProcessBlock(block)
	if err != nil {
		t.Fatalf("ProcessBlock() error = %v", err)
	}
	if result != Accepted {
		t.Fatalf("ProcessBlock() = %v, want Accepted", result)
	}

	_, height, _ := chain.Tip()
	if height != 1 {
		t.Fatalf("Tip() height after accept = %d, want 1", height)
	}
}

func TestProcessBlockRejectsFork(t *testing.T) {
	chain := New(chaincfg.SimNetParams)

	first := childBlock(chain, chaincfg.SimNetParams.PowLimitBits)
	if _, err := chain.ProcessBlock(first); err != nil {
		t.Fatalf("ProcessBlock(first) error = %v", err)
	}

	// A second block also built on genesis no longer connects, since the
	// tip has moved to first.
	stale := &wire.MsgBlock{
		Header: *wire.NewBlockHeader(1, &chaincfg.SimNetParams.GenesisHash, &chaincfg.SimNetParams.GenesisHash, chaincfg.SimNetParams.PowLimitBits, time.Now().Add(time.Second)),
	}

	result, err := chain.ProcessBlock(stale)
	if err != nil {
		t.Fatalf("ProcessBlock(stale) error = %v", err)
	}
	if result != Rejected {
		t.Fatalf("ProcessBlock(stale) = %v, want Rejected", result)
	}
}

func TestProcessBlockDetectsDuplicate(t *testing.T) {
	chain := New(chaincfg.SimNetParams)
	block := childBlock(chain, chaincfg.SimNetParams.PowLimitBits)

	if _, err := chain.ProcessBlock(block); err != nil {
		t.Fatalf("first ProcessBlock() error = %v", err)
	}

	result, err := chain.ProcessBlock(block)
	if err != nil {
		t.Fatalf("second ProcessBlock() error = %v", err)
	}
	if result != Duplicate {
		t.Fatalf("second ProcessBlock() = %v, want Duplicate", result)
	}
}

func TestSetInitialSyncDoneAffectsIsCurrent(t *testing.T) {
	chain := New(chaincfg.SimNetParams)
	if chain.IsCurrent() {
		t.Fatal("expected IsCurrent() to be false before sync completes")
	}

	chain.SetInitialSyncDone(true)
	if !chain.IsCurrent() {
		t.Fatal("expected IsCurrent() to be true after SetInitialSyncDone(true)")
	}
}

func TestPeerCountRoundTrips(t *testing.T) {
	chain := New(chaincfg.SimNetParams)
	chain.SetPeerCount(3)
	if got := chain.PeerCount(); got != 3 {
		t.Fatalf("PeerCount() = %d, want 3", got)
	}
}

func TestBlockHashByHeightUnknownHeight(t *testing.T) {
	chain := New(chaincfg.SimNetParams)
	if _, err := chain.BlockHashByHeight(5); err == nil {
		t.Fatal("expected an error for a height beyond the tip")
	}
}
