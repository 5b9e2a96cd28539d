// Command botcoind runs a minimal node whose only real job is hosting the
// RandomX CPU mining engine: it assembles block templates from an in-memory
// mempool, mines them, and feeds anything it finds back into its own
// single-node chain.
package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/botcoin-project/botcoind/chaincfg"
	"github.com/botcoin-project/botcoind/config"
	"github.com/botcoin-project/botcoind/log"
	"github.com/botcoin-project/botcoind/mining/cpuminer"
	"github.com/botcoin-project/botcoind/node"
)

// coinbaseScriptForAddress turns a payment address string into the script
// a coinbase output pays. Full address decoding and script construction
// live outside this daemon's scope, so the address is carried verbatim as
// the script's payload.
func coinbaseScriptForAddress(address string) []byte {
	return []byte(address)
}

func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	log.InitLogRotator(cfg.LogDir)
	log.SetLogLevels(cfg.LogLevel)

	n := node.New(chaincfg.SimNetParams)

	// A standalone daemon with no peers of its own is, by definition,
	// always caught up with itself.
	n.SetInitialSyncDone(true)
	n.SetPeerCount(node.MinPeersForMining)

	if !cfg.Mine {
		log.NodeLog.Infof("mining disabled, idling")
		<-waitForInterrupt()
		return nil
	}

	miner := cpuminer.New(n.NewMinerConfig(
		cfg.MineThreads,
		coinbaseScriptForAddress(cfg.MineAddress),
		cfg.MineFastMode,
		cfg.TemplateRefresh,
	))
	n.SetMiner(miner)

	if err := miner.Start(); err != nil {
		return fmt.Errorf("starting miner: %w", err)
	}

	log.NodeLog.Infof("mining started with %d worker(s)", miner.ThreadCount())

	<-waitForInterrupt()

	return miner.Stop()
}

func waitForInterrupt() <-chan os.Signal {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	return c
}

func main() {
	cfg := config.Default()

	root := &cobra.Command{
		Use:   "botcoind",
		Short: "botcoind runs the RandomX mining engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}
	config.RegisterFlags(root, cfg)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
