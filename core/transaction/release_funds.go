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

type ReleaseFundsData struct {
	PotAddress types.Address
	Recipient  types.Address
}

func (data ReleaseFundsData) TxType() TxType {
	return TypeReleaseFunds
}

func (data ReleaseFundsData) String() string {
	return fmt.Sprintf("RELEASE FUNDS pot:%s recipient:%s",
		data.PotAddress.String(), data.Recipient.String())
}

func (data ReleaseFundsData) basicCheck(tx *Transaction, context *state.CheckState, currentTime uint64) *Response {
	pot := context.Pots().GetPot(data.PotAddress)
	if pot == nil {
		return &Response{
			Code: code.PotNotFound,
			Log:  fmt.Sprintf("Pot %s not found", data.PotAddress.String()),
			Info: EncodeError(code.NewPotNotFound(data.PotAddress.String())),
		}
	}

	if pot.IsReleased() {
		recipient := pot.GetRecipient()
		return &Response{
			Code: code.AlreadyReleased,
			Log:  fmt.Sprintf("Pot %s was already released to %s", data.PotAddress.String(), recipient.String()),
			Info: EncodeError(code.NewAlreadyReleased(data.PotAddress.String(), recipient.String())),
		}
	}

	if currentTime < pot.UnlockTime {
		return &Response{
			Code: code.TimeLockNotExpired,
			Log:  fmt.Sprintf("Pot %s is time-locked until %d", data.PotAddress.String(), pot.UnlockTime),
			Info: EncodeError(code.NewTimeLockNotExpired(data.PotAddress.String(), strconv.FormatUint(pot.UnlockTime, 10), strconv.FormatUint(currentTime, 10))),
		}
	}

	if approvals := pot.ApprovalsCount(); approvals < pot.RequiredApprovals {
		return &Response{
			Code: code.InsufficientApprovals,
			Log:  fmt.Sprintf("Pot %s has %d of %d required release approvals", data.PotAddress.String(), approvals, pot.RequiredApprovals),
			Info: EncodeError(code.NewInsufficientApprovals(data.PotAddress.String(), strconv.Itoa(int(pot.RequiredApprovals)), strconv.Itoa(int(approvals)))),
		}
	}

	return nil
}

func (data ReleaseFundsData) Run(tx *Transaction, context state.Interface, currentBlock uint64, currentTime uint64) Response {
	sender, _ := tx.Sender()

	var checkState *state.CheckState
	var isCheck bool
	if checkState, isCheck = context.(*state.CheckState); !isCheck {
		checkState = state.NewCheckState(context.(*state.State))
	}

	response := data.basicCheck(tx, checkState, currentTime)
	if response != nil {
		return *response
	}

	var tags []abcTypes.EventAttribute
	if deliverState, ok := context.(*state.State); ok {
		custody := deliverState.Pots.GetPot(data.PotAddress).Custody()
		amount := deliverState.Accounts.GetBalance(custody)

		deliverState.Accounts.SubBalance(custody, amount)
		deliverState.Pots.Release(data.PotAddress, data.Recipient, amount)
		deliverState.Accounts.SetNonce(sender, tx.Nonce)

		if eventStore := deliverState.Bus().Events(); eventStore != nil {
			eventStore.AddEvent(&events.ReleaseEvent{
				Pot:       data.PotAddress,
				Recipient: data.Recipient,
				Amount:    amount.String(),
			})
		}

		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.pot"), Value: []byte(hex.EncodeToString(data.PotAddress[:])), Index: true},
			{Key: []byte("tx.recipient"), Value: []byte(hex.EncodeToString(data.Recipient[:])), Index: true},
			{Key: []byte("tx.value"), Value: []byte(amount.String())},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}
