package transaction

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/commonpot/commonpot-go-node/core/code"
	"github.com/commonpot/commonpot-go-node/core/events"
	"github.com/commonpot/commonpot-go-node/core/state"
	"github.com/commonpot/commonpot-go-node/core/types"
	abcTypes "github.com/tendermint/tendermint/abci/types"
)

type SignReleaseData struct {
	PotAddress types.Address
}

func (data SignReleaseData) TxType() TxType {
	return TypeSignRelease
}

func (data SignReleaseData) String() string {
	return fmt.Sprintf("SIGN RELEASE pot:%s", data.PotAddress.String())
}

func (data SignReleaseData) basicCheck(tx *Transaction, context *state.CheckState, sender types.Address) *Response {
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

	if !pot.IsApprovedContributor(sender) {
		return &Response{
			Code: code.NotAnApprovedContributor,
			Log:  fmt.Sprintf("%s is not an approved contributor of pot %s", sender.String(), data.PotAddress.String()),
			Info: EncodeError(code.NewNotAnApprovedContributor(data.PotAddress.String(), sender.String())),
		}
	}

	if pot.HasSigned(sender) {
		return &Response{
			Code: code.AlreadySigned,
			Log:  fmt.Sprintf("%s has already signed the release of pot %s", sender.String(), data.PotAddress.String()),
			Info: EncodeError(code.NewAlreadySigned(data.PotAddress.String(), sender.String())),
		}
	}

	if pot.ApprovalsCount() >= types.MaxPotApprovals {
		return &Response{
			Code: code.TooManyApprovals,
			Log:  fmt.Sprintf("Pot %s already has the maximum of %d release approvals", data.PotAddress.String(), types.MaxPotApprovals),
			Info: EncodeError(code.NewTooManyApprovals(data.PotAddress.String(), strconv.Itoa(types.MaxPotApprovals))),
		}
	}

	return nil
}

func (data SignReleaseData) Run(tx *Transaction, context state.Interface, currentBlock uint64, currentTime uint64) Response {
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
		approvals := deliverState.Pots.SignRelease(data.PotAddress, sender)
		deliverState.Accounts.SetNonce(sender, tx.Nonce)

		if eventStore := deliverState.Bus().Events(); eventStore != nil {
			eventStore.AddEvent(&events.SignReleaseEvent{
				Pot:       data.PotAddress,
				Signer:    sender,
				Approvals: approvals,
			})
		}

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.pot"), Value: []byte(hex.EncodeToString(data.PotAddress[:])), Index: true},
			{Key: []byte("tx.approvals"), Value: []byte(strconv.Itoa(int(approvals)))},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}
