package transaction

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/commonpot/commonpot-go-node/core/code"
	"github.com/commonpot/commonpot-go-node/core/events"
	"github.com/commonpot/commonpot-go-node/core/state"
	"github.com/commonpot/commonpot-go-node/core/state/pots"
	"github.com/commonpot/commonpot-go-node/core/types"
	"github.com/commonpot/commonpot-go-node/helpers"
	abcTypes "github.com/tendermint/tendermint/abci/types"
)

type CreatePotData struct {
	Name              string
	Description       string
	Target            []byte
	LockDuration      uint64
	RequiredApprovals uint32
}

func (data CreatePotData) TxType() TxType {
	return TypeCreatePot
}

func (data CreatePotData) String() string {
	return fmt.Sprintf("CREATE POT name:%s target:%s approvals:%d",
		data.Name, helpers.BytesToBigInt(data.Target).String(), data.RequiredApprovals)
}

func (data CreatePotData) basicCheck(tx *Transaction, context *state.CheckState, sender types.Address) *Response {
	if len(data.Name) < 1 || len(data.Name) > types.MaxPotNameLength {
		return &Response{
			Code: code.InvalidPotName,
			Log:  fmt.Sprintf("Invalid pot name. Name must be from 1 to %d bytes", types.MaxPotNameLength),
			Info: EncodeError(code.NewInvalidPotName(strconv.Itoa(types.MaxPotNameLength), strconv.Itoa(len(data.Name)))),
		}
	}

	if len(data.Description) > types.MaxPotDescriptionLength {
		return &Response{
			Code: code.InvalidPotDescription,
			Log:  fmt.Sprintf("Invalid pot description. Description must be up to %d bytes", types.MaxPotDescriptionLength),
			Info: EncodeError(code.NewInvalidPotDescription(strconv.Itoa(types.MaxPotDescriptionLength), strconv.Itoa(len(data.Description)))),
		}
	}

	if data.RequiredApprovals < 1 || data.RequiredApprovals > types.MaxPotApprovals {
		return &Response{
			Code: code.WrongRequiredApprovals,
			Log:  fmt.Sprintf("Required approvals must be from 1 to %d", types.MaxPotApprovals),
			Info: EncodeError(code.NewWrongRequiredApprovals("1", strconv.Itoa(types.MaxPotApprovals), strconv.Itoa(int(data.RequiredApprovals)))),
		}
	}

	potAddress := pots.CreatePotAddress(sender, data.Name)
	if context.Pots().Exists(potAddress) {
		return &Response{
			Code: code.PotAlreadyExists,
			Log:  fmt.Sprintf("Pot %s already exists", potAddress.String()),
			Info: EncodeError(code.NewPotAlreadyExists(potAddress.String())),
		}
	}

	return nil
}

func (data CreatePotData) Run(tx *Transaction, context state.Interface, currentBlock uint64, currentTime uint64) Response {
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
		unlockTime := currentTime + data.LockDuration
		pot := deliverState.Pots.CreatePot(sender, data.Name, data.Description, helpers.BytesToBigInt(data.Target), unlockTime, data.RequiredApprovals)
		deliverState.Accounts.SetNonce(sender, tx.Nonce)

		if eventStore := deliverState.Bus().Events(); eventStore != nil {
			eventStore.AddEvent(&events.PotCreatedEvent{
				Pot:               pot.Address(),
				Owner:             sender,
				Name:              data.Name,
				Target:            pot.GetTarget().String(),
				UnlockTime:        unlockTime,
				RequiredApprovals: data.RequiredApprovals,
			})
		}

		potAddress := pot.Address()
		custody := pot.Custody()
		tags = []abcTypes.EventAttribute{
			{Key: []byte("tx.pot"), Value: []byte(hex.EncodeToString(potAddress[:])), Index: true},
			{Key: []byte("tx.custody"), Value: []byte(hex.EncodeToString(custody[:]))},
			{Key: []byte("tx.unlock_time"), Value: []byte(strconv.FormatUint(unlockTime, 10))},
		}
	}

	return Response{
		Code: code.OK,
		Tags: tags,
	}
}
