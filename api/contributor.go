package api

import (
	"encoding/json"
	"net/http"

	"github.com/commonpot/commonpot-go-node/core/types"
	"github.com/gorilla/mux"
)

type ContributorResponse struct {
	Approved bool   `json:"approved"`
	Signed   bool   `json:"signed"`
	Total    string `json:"total"`
	Count    uint32 `json:"count"`
}

func GetContributor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	potAddress := types.HexToAddress(vars["address"])
	contributor := types.HexToAddress(vars["contributor"])

	cState := GetStateForRequest(r)

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)

	pot := cState.Pots().GetPot(potAddress)
	if pot == nil {
		json.NewEncoder(w).Encode(Response{
			Code: 404,
			Log:  "Pot not found",
		})
		return
	}

	result := ContributorResponse{
		Approved: pot.IsApprovedContributor(contributor),
		Signed:   pot.HasSigned(contributor),
		Total:    "0",
	}

	if record := cState.Pots().GetContributor(potAddress, contributor); record != nil {
		result.Total = record.GetTotal().String()
		result.Count = record.GetCount()
	}

	json.NewEncoder(w).Encode(Response{
		Code:   0,
		Result: result,
	})
}
