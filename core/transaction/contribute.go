package transaction

import (
	"encoding/hex"
	"fmt"

	"github.com/commonpot/commonpot-go-node/core/code"
	"github.com/commonpot/commonpot-go-node/core/events"
	"github.com/commonpot/commonpot-go-node/core/state"
	"github.com/commonpot/commonpot-go-node/core/state/pots"
	"github.com/commonpot/commonpot-go-node/core/types"
	"github.com/commonpot/commonpot-go-node/helpers"
	abcTypes "github.com/tendermint/tendermint/abci/types"
)

type ContributeData struct {
	PotAddress types.Address
	Value      []byte
}

func (data ContributeData) TxType() TxType {
	return TypeContribute
}

func (data ContributeData) String() string {
	return fmt.Sprintf("CONTRIBUTE pot:%s value:%s",
		data.PotAddress.String(), helpers.BytesToBigInt(data.Value).String())
}

func (data ContributeData) basicCheck(tx *Transaction, context *state.CheckState, sender types.Address) *Response {
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

	value := helpers.BytesToBigInt(data.Value)
	if value.Sign() != 1 {
		return &Response{
			Code: code.InvalidContributionAmount,
			Log:  "Contribution amount must be positive",
			Info: EncodeError(code.NewInvalidContributionAmount(data.PotAddress.String(), value.String())),
		}
	}

	if context.Accounts().GetBalance(sender).Cmp(value) < 0 {
		return &Response{
			Code: code.InsufficientFunds,
			Log:  fmt.Sprintf("Insufficient funds for sender account: %s. Wanted %s", sender.String(), value.String()),
			Info: EncodeError(code.NewInsufficientFunds(sender.String(), value.String())),
		}
	}

	return nil
}

func (data ContributeData) Run(tx *Transaction, context state.Interface, currentBlock uint64, currentTime uint64) Response {
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
		value := helpers.BytesToBigInt(data.Value)
		custody := deliverState.Pots.GetPot(data.PotAddress).Custody()

		deliverState.Accounts.SubBalance(sender, value)
		deliverState.Accounts.AddBalance(custody, value)
		record := deliverState.Pots.AddContribution(data.PotAddress, sender, value)
		deliverState.Accounts.SetNonce(sender, tx.Nonce)

		if eventStore := deliverState.Bus().Events(); eventStore != nil {
			eventStore.AddEvent(&events.ContributionEvent{
				Pot:         data.PotAddress,
				Contributor: sender,
				Amount:      value.String(),
				Total:       record.GetTotal().String(),
			})
		}

		recordID := pots.CreateContributorAddress(data.PotAddress, sender)
		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.pot"), Value: []byte(hex.EncodeToString(data.PotAddress[:])), Index: true},
			{Key: []byte("tx.contributor"), Value: []byte(hex.EncodeToString(recordID[:]))},
			{Key: []byte("tx.value"), Value: []byte(value.String())},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}
