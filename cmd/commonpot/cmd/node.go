package cmd

import (
	"github.com/commonpot/commonpot-go-node/api"
	"github.com/commonpot/commonpot-go-node/cmd/utils"
	"github.com/commonpot/commonpot-go-node/core/ledger"
	"github.com/commonpot/commonpot-go-node/log"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/abci/server"
	tmos "github.com/tendermint/tendermint/libs/os"
)

var RunNode = &cobra.Command{
	Use:   "node",
	Short: "Run CommonPot node",
	RunE:  runNode,
}

func runNode(cmd *cobra.Command, args []string) error {
	logger := log.NewLogger(cfg)

	storages, err := utils.NewStorage(utils.GetCommonPotHome())
	if err != nil {
		return err
	}

	app := ledger.NewBlockchain(storages, cfg, logger)

	srv, err := server.NewServer(cfg.ABCIListenAddress, "socket", app)
	if err != nil {
		return err
	}
	srv.SetLogger(logger.With("module", "abci-server"))

	if err := srv.Start(); err != nil {
		return err
	}

	if !cfg.ValidatorMode {
		go func() {
			logger.Error("API stopped", "err", api.RunAPI(app, cfg))
		}()
	}

	tmos.TrapSignal(logger, func() {
		if err := srv.Stop(); err != nil {
			logger.Error("Failed to stop ABCI server", "err", err)
		}
		if err := app.Close(); err != nil {
			logger.Error("Failed to close databases", "err", err)
		}
	})

	// run forever, TrapSignal exits the process
	select {}
}
