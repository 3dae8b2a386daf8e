package api

import (
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/commonpot/commonpot-go-node/version"
)

type StatusResponse struct {
	Version           string `json:"version"`
	LatestBlockHeight uint64 `json:"latest_block_height"`
	LatestAppHash     string `json:"latest_app_hash"`
	InitialHeight     uint64 `json:"initial_height"`
}

func Status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(Response{
		Code: 0,
		Result: StatusResponse{
			Version:           version.Version,
			LatestBlockHeight: blockchain.Height(),
			LatestAppHash:     hex.EncodeToString(blockchain.LastBlockHash()),
			InitialHeight:     blockchain.InitialHeight(),
		},
	})
}
