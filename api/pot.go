package api

import (
	"encoding/json"
	"net/http"

	"github.com/commonpot/commonpot-go-node/core/types"
	"github.com/gorilla/mux"
)

type PotResponse struct {
	Address              types.Address   `json:"address"`
	Owner                types.Address   `json:"owner"`
	Custody              types.Address   `json:"custody"`
	Name                 string          `json:"name"`
	Description          string          `json:"description,omitempty"`
	Target               string          `json:"target"`
	TotalContributed     string          `json:"total_contributed"`
	CustodyBalance       string          `json:"custody_balance"`
	UnlockTime           uint64          `json:"unlock_time"`
	RequiredApprovals    uint32          `json:"required_approvals"`
	ApprovedContributors []types.Address `json:"approved_contributors"`
	ReleaseApprovals     []types.Address `json:"release_approvals"`
	Released             bool            `json:"released"`
	Recipient            *types.Address  `json:"recipient,omitempty"`
}

func GetPot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address := types.HexToAddress(vars["address"])

	cState := GetStateForRequest(r)

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)

	pot := cState.Pots().GetPot(address)
	if pot == nil {
		json.NewEncoder(w).Encode(Response{
			Code: 404,
			Log:  "Pot not found",
		})
		return
	}

	result := PotResponse{
		Address:              pot.Address(),
		Owner:                pot.Owner,
		Custody:              pot.Custody(),
		Name:                 pot.Name,
		Description:          pot.Description,
		Target:               pot.GetTarget().String(),
		TotalContributed:     pot.GetTotalContributed().String(),
		CustodyBalance:       cState.Accounts().GetBalance(pot.Custody()).String(),
		UnlockTime:           pot.UnlockTime,
		RequiredApprovals:    pot.RequiredApprovals,
		ApprovedContributors: pot.Contributors(),
		ReleaseApprovals:     pot.Approvals(),
		Released:             pot.IsReleased(),
	}
	if pot.IsReleased() {
		recipient := pot.GetRecipient()
		result.Recipient = &recipient
	}

	json.NewEncoder(w).Encode(Response{
		Code:   0,
		Result: result,
	})
}
