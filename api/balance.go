package api

import (
	"encoding/json"
	"net/http"

	"github.com/commonpot/commonpot-go-node/core/types"
	"github.com/gorilla/mux"
)

type BalanceResponse struct {
	Balance          string `json:"balance"`
	TransactionCount uint64 `json:"transaction_count"`
}

func GetBalance(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address := types.HexToAddress(vars["address"])

	cState := GetStateForRequest(r)

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(Response{
		Code: 0,
		Result: BalanceResponse{
			Balance:          cState.Accounts().GetBalance(address).String(),
			TransactionCount: cState.Accounts().GetNonce(address),
		},
	})
}
