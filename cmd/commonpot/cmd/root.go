package cmd

import (
	"github.com/commonpot/commonpot-go-node/cmd/utils"
	"github.com/commonpot/commonpot-go-node/config"
	"github.com/commonpot/commonpot-go-node/core/types"
	"github.com/commonpot/commonpot-go-node/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfg *config.Config

var RootCmd = &cobra.Command{
	Use:   "commonpot",
	Short: "CommonPot Go Node",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.GetConfig()

		v := viper.New()
		v.SetConfigFile(utils.GetCommonPotConfigPath())

		if err := v.ReadInConfig(); err != nil {
			panic(err)
		}

		if err := v.Unmarshal(cfg); err != nil {
			panic(err)
		}

		if cfg.KeepLastStates < 1 {
			panic("keep_last_states field should be greater than 0")
		}

		isTestnet, _ := cmd.Flags().GetBool("testnet")
		if isTestnet {
			types.CurrentChainID = types.ChainTestnet
			version.Version += "-testnet"
		}
	},
}
