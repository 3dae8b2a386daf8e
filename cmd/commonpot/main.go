package main

import (
	"github.com/commonpot/commonpot-go-node/cmd/commonpot/cmd"
	"github.com/commonpot/commonpot-go-node/cmd/utils"
)

func main() {
	rootCmd := cmd.RootCmd
	rootCmd.PersistentFlags().StringVar(&utils.CommonPotHome, "home-dir", "", "base dir (default is $HOME/.commonpot)")
	rootCmd.PersistentFlags().StringVar(&utils.CommonPotConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().Bool("testnet", false, "use testnet chain id")

	rootCmd.AddCommand(
		cmd.RunNode,
		cmd.Version,
		cmd.ExportCommand)

	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
