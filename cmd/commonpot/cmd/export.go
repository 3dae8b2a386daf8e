package cmd

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/commonpot/commonpot-go-node/cmd/utils"
	"github.com/commonpot/commonpot-go-node/core/state"
	"github.com/spf13/cobra"
)

const genesisPath = "genesis.json"

var ExportCommand = &cobra.Command{
	Use:   "export",
	Short: "Export app state to genesis file",
	RunE:  export,
}

func init() {
	ExportCommand.Flags().Uint64("height", 0, "export state at given height")
	ExportCommand.Flags().Bool("indent", false, "indent json output")
}

func export(cmd *cobra.Command, args []string) error {
	height, err := cmd.Flags().GetUint64("height")
	if err != nil {
		log.Panicf("Cannot parse height: %s", err)
	}

	indent, err := cmd.Flags().GetBool("indent")
	if err != nil {
		log.Panicf("Cannot parse indent: %s", err)
	}

	log.Println("Start exporting...")

	storages, err := utils.NewStorage(utils.GetCommonPotHome())
	if err != nil {
		log.Panicf("Cannot load db: %s", err)
	}

	currentState, err := state.NewCheckStateAtHeight(height, storages.StateDB())
	if err != nil {
		log.Panicf("Cannot new state at given height: %s", err)
	}

	exportTimeStart := time.Now()
	appState := currentState.Export()
	log.Printf("State has been exported. Took %s\n", time.Since(exportTimeStart))

	if err := appState.Verify(); err != nil {
		log.Fatalf("Failed to validate: %s\n", err)
	}
	log.Printf("Verify state OK\n")

	var jsonBytes []byte
	if indent {
		jsonBytes, err = json.MarshalIndent(appState, "", "	")
	} else {
		jsonBytes, err = json.Marshal(appState)
	}
	if err != nil {
		log.Panicf("Cannot marshal state: %s", err)
	}

	if err := os.WriteFile(genesisPath, jsonBytes, 0644); err != nil {
		log.Panicf("Cannot write genesis file: %s", err)
	}

	log.Printf("Exported to %s\n", genesisPath)

	return storages.Close()
}
