package transaction

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/commonpot/commonpot-go-node/core/code"
	"github.com/commonpot/commonpot-go-node/core/state"
	"github.com/commonpot/commonpot-go-node/core/types"
	abcTypes "github.com/tendermint/tendermint/abci/types"
)

type AddContributorData struct {
	PotAddress  types.Address
	Contributor types.Address
}

func (data AddContributorData) TxType() TxType {
	return TypeAddContributor
}

func (data AddContributorData) String() string {
	return fmt.Sprintf("ADD CONTRIBUTOR pot:%s contributor:%s",
		data.PotAddress.String(), data.Contributor.String())
}

func (data AddContributorData) basicCheck(tx *Transaction, context *state.CheckState, sender types.Address) *Response {
	pot := context.Pots().GetPot(data.PotAddress)
	if pot == nil {
		return &Response{
			Code: code.PotNotFound,
			Log:  fmt.Sprintf("Pot %s not found", data.PotAddress.String()),
			Info: EncodeError(code.NewPotNotFound(data.PotAddress.String())),
		}
	}

	if pot.IsReleased() {
		return &Response{
			Code: code.PotReleased,
			Log:  fmt.Sprintf("Pot %s is already released", data.PotAddress.String()),
			Info: EncodeError(code.NewPotReleased(data.PotAddress.String())),
		}
	}

	if pot.Owner != sender {
		return &Response{
			Code: code.Unauthorized,
			Log:  "Only the pot owner may add contributors",
			Info: EncodeError(code.NewUnauthorized(data.PotAddress.String(), pot.Owner.String(), sender.String())),
		}
	}

	if pot.ContributorsCount() >= types.MaxPotContributors {
		return &Response{
			Code: code.TooManyContributors,
			Log:  fmt.Sprintf("Pot %s already has %d contributors", data.PotAddress.String(), types.MaxPotContributors),
			Info: EncodeError(code.NewTooManyContributors(data.PotAddress.String(), strconv.Itoa(types.MaxPotContributors))),
		}
	}

	if pot.IsApprovedContributor(data.Contributor) {
		return &Response{
			Code: code.ContributorAlreadyApproved,
			Log:  fmt.Sprintf("Contributor %s is already approved", data.Contributor.String()),
			Info: EncodeError(code.NewContributorAlreadyApproved(data.PotAddress.String(), data.Contributor.String())),
		}
	}

	return nil
}

func (data AddContributorData) Run(tx *Transaction, context state.Interface, currentBlock uint64, currentTime uint64) Response {
	sender, _ := tx.Sender()

	var checkState *state.CheckState
	var isCheck bool
	if checkState, isCheck = context.(*state.CheckState); !isCheck {
		checkState = state.NewCheckState(context.(*state.State))
	}

	response := data.basicCheck(tx, checkState, sender)
	if response != nil {
		return *response
	}

	var tags []abcTypes.EventAttribute
	if deliverState, ok := context.(*state.State); ok {
		deliverState.Pots.AddContributor(data.PotAddress, data.Contributor)
		deliverState.Accounts.SetNonce(sender, tx.Nonce)

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.pot"), Value: []byte(hex.EncodeToString(data.PotAddress[:])), Index: true},
			{Key: []byte("tx.contributor"), Value: []byte(hex.EncodeToString(data.Contributor[:])), Index: true},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}
