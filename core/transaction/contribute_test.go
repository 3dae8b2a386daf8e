package transaction

import (
	"math/big"
	"sync"
	"testing"

	"github.com/commonpot/commonpot-go-node/core/code"
	"github.com/commonpot/commonpot-go-node/core/types"
	"github.com/commonpot/commonpot-go-node/crypto"
	"github.com/commonpot/commonpot-go-node/helpers"
)

func TestContributeTx(t *testing.T) {
	t.Parallel()
	cState := getState()

	privateKey, _ := crypto.GenerateKey()
	addr := crypto.PubkeyToAddress(privateKey.PublicKey)

	cState.Accounts.AddBalance(addr, big.NewInt(1000))
	pot := cState.Pots.CreatePot(addr, "trip", "", big.NewInt(5000), 0, 1)

	data := ContributeData{
		PotAddress: pot.Address(),
		Value:      helpers.BigIntToBytes(big.NewInt(300)),
	}
	encodedData, _ := cdc.MarshalBinaryBare(data)

	tx := Transaction{
		Nonce:   1,
		ChainID: types.CurrentChainID,
		Type:    TypeContribute,
		Data:    encodedData,
	}

	if err := tx.Sign(privateKey); err != nil {
		t.Fatal(err)
	}

	encodedTx, _ := tx.Serialize()
	response := NewExecutor(GetData).RunTx(cState, encodedTx, 1, 0, &sync.Map{}, false)
	if response.Code != 0 {
		t.Fatalf("Response code is not 0. Error: %s", response.Log)
	}

	if balance := cState.Accounts.GetBalance(addr); balance.Cmp(big.NewInt(700)) != 0 {
		t.Fatalf("sender balance is %s, expected 700", balance)
	}

	if balance := cState.Accounts.GetBalance(pot.Custody()); balance.Cmp(big.NewInt(300)) != 0 {
		t.Fatalf("custody balance is %s, expected 300", balance)
	}

	if total := pot.GetTotalContributed(); total.Cmp(big.NewInt(300)) != 0 {
		t.Fatalf("pot total is %s, expected 300", total)
	}

	record := cState.Pots.GetContributor(pot.Address(), addr)
	if record == nil {
		t.Fatal("contributor record was not created")
	}

	if record.GetTotal().Cmp(big.NewInt(300)) != 0 || record.GetCount() != 1 {
		t.Fatalf("contributor record is %s/%d, expected 300/1", record.GetTotal(), record.GetCount())
	}

	if err := checkState(cState); err != nil {
		t.Error(err)
	}
}

func TestContributeAccumulatesRecord(t *testing.T) {
	t.Parallel()
	cState := getState()

	privateKey, _ := crypto.GenerateKey()
	addr := crypto.PubkeyToAddress(privateKey.PublicKey)

	cState.Accounts.AddBalance(addr, big.NewInt(1000))
	pot := cState.Pots.CreatePot(addr, "trip", "", big.NewInt(5000), 0, 1)

	for nonce := uint64(1); nonce <= 2; nonce++ {
		data := ContributeData{
			PotAddress: pot.Address(),
			Value:      helpers.BigIntToBytes(big.NewInt(100)),
		}
		encodedData, _ := cdc.MarshalBinaryBare(data)

		tx := Transaction{
			Nonce:   nonce,
			ChainID: types.CurrentChainID,
			Type:    TypeContribute,
			Data:    encodedData,
		}

		if err := tx.Sign(privateKey); err != nil {
			t.Fatal(err)
		}

		encodedTx, _ := tx.Serialize()
		response := NewExecutor(GetData).RunTx(cState, encodedTx, 1, 0, &sync.Map{}, false)
		if response.Code != 0 {
			t.Fatalf("Response code is not 0. Error: %s", response.Log)
		}
	}

	record := cState.Pots.GetContributor(pot.Address(), addr)
	if record.GetTotal().Cmp(big.NewInt(200)) != 0 || record.GetCount() != 2 {
		t.Fatalf("contributor record is %s/%d, expected 200/2", record.GetTotal(), record.GetCount())
	}

	if err := checkState(cState); err != nil {
		t.Error(err)
	}
}

func TestContributeWhileTimeLocked(t *testing.T) {
	t.Parallel()
	cState := getState()

	privateKey, _ := crypto.GenerateKey()
	addr := crypto.PubkeyToAddress(privateKey.PublicKey)

	cState.Accounts.AddBalance(addr, big.NewInt(1000))

	// unlock far in the future, contributions still flow
	pot := cState.Pots.CreatePot(addr, "trip", "", big.NewInt(5000), 2000000000, 1)

	data := ContributeData{
		PotAddress: pot.Address(),
		Value:      helpers.BigIntToBytes(big.NewInt(100)),
	}
	encodedData, _ := cdc.MarshalBinaryBare(data)

	tx := Transaction{
		Nonce:   1,
		ChainID: types.CurrentChainID,
		Type:    TypeContribute,
		Data:    encodedData,
	}

	if err := tx.Sign(privateKey); err != nil {
		t.Fatal(err)
	}

	encodedTx, _ := tx.Serialize()
	response := NewExecutor(GetData).RunTx(cState, encodedTx, 1, 0, &sync.Map{}, false)
	if response.Code != 0 {
		t.Fatalf("Response code is not 0. Error: %s", response.Log)
	}

	if err := checkState(cState); err != nil {
		t.Error(err)
	}
}

func TestContributeFromNotApprovedContributor(t *testing.T) {
	t.Parallel()
	cState := getState()

	privateKey, _ := crypto.GenerateKey()
	addr := crypto.PubkeyToAddress(privateKey.PublicKey)
	owner := types.Address{1}

	cState.Accounts.AddBalance(addr, big.NewInt(1000))
	pot := cState.Pots.CreatePot(owner, "trip", "", big.NewInt(5000), 0, 1)

	data := ContributeData{
		PotAddress: pot.Address(),
		Value:      helpers.BigIntToBytes(big.NewInt(100)),
	}
	encodedData, _ := cdc.MarshalBinaryBare(data)

	tx := Transaction{
		Nonce:   1,
		ChainID: types.CurrentChainID,
		Type:    TypeContribute,
		Data:    encodedData,
	}

	if err := tx.Sign(privateKey); err != nil {
		t.Fatal(err)
	}

	encodedTx, _ := tx.Serialize()
	response := NewExecutor(GetData).RunTx(cState, encodedTx, 1, 0, &sync.Map{}, false)
	if response.Code != code.NotAnApprovedContributor {
		t.Fatalf("Response code is not correct. Expected %d, got %d", code.NotAnApprovedContributor, response.Code)
	}

	if err := checkState(cState); err != nil {
		t.Error(err)
	}
}

func TestContributeWithZeroValue(t *testing.T) {
	t.Parallel()
	cState := getState()

	privateKey, _ := crypto.GenerateKey()
	addr := crypto.PubkeyToAddress(privateKey.PublicKey)

	cState.Accounts.AddBalance(addr, big.NewInt(1000))
	pot := cState.Pots.CreatePot(addr, "trip", "", big.NewInt(5000), 0, 1)

	data := ContributeData{
		PotAddress: pot.Address(),
		Value:      nil,
	}
	encodedData, _ := cdc.MarshalBinaryBare(data)

	tx := Transaction{
		Nonce:   1,
		ChainID: types.CurrentChainID,
		Type:    TypeContribute,
		Data:    encodedData,
	}

	if err := tx.Sign(privateKey); err != nil {
		t.Fatal(err)
	}

	encodedTx, _ := tx.Serialize()
	response := NewExecutor(GetData).RunTx(cState, encodedTx, 1, 0, &sync.Map{}, false)
	if response.Code != code.InvalidContributionAmount {
		t.Fatalf("Response code is not correct. Expected %d, got %d", code.InvalidContributionAmount, response.Code)
	}

	if err := checkState(cState); err != nil {
		t.Error(err)
	}
}

func TestContributeWithInsufficientFunds(t *testing.T) {
	t.Parallel()
	cState := getState()

	privateKey, _ := crypto.GenerateKey()
	addr := crypto.PubkeyToAddress(privateKey.PublicKey)

	cState.Accounts.AddBalance(addr, big.NewInt(50))
	pot := cState.Pots.CreatePot(addr, "trip", "", big.NewInt(5000), 0, 1)

	data := ContributeData{
		PotAddress: pot.Address(),
		Value:      helpers.BigIntToBytes(big.NewInt(100)),
	}
	encodedData, _ := cdc.MarshalBinaryBare(data)

	tx := Transaction{
		Nonce:   1,
		ChainID: types.CurrentChainID,
		Type:    TypeContribute,
		Data:    encodedData,
	}

	if err := tx.Sign(privateKey); err != nil {
		t.Fatal(err)
	}

	encodedTx, _ := tx.Serialize()
	response := NewExecutor(GetData).RunTx(cState, encodedTx, 1, 0, &sync.Map{}, false)
	if response.Code != code.InsufficientFunds {
		t.Fatalf("Response code is not correct. Expected %d, got %d", code.InsufficientFunds, response.Code)
	}

	if err := checkState(cState); err != nil {
		t.Error(err)
	}
}

func TestContributeToReleasedPot(t *testing.T) {
	t.Parallel()
	cState := getState()

	privateKey, _ := crypto.GenerateKey()
	addr := crypto.PubkeyToAddress(privateKey.PublicKey)

	cState.Accounts.AddBalance(addr, big.NewInt(1000))
	pot := cState.Pots.CreatePot(addr, "trip", "", big.NewInt(5000), 0, 1)
	cState.Pots.Release(pot.Address(), types.Address{9}, big.NewInt(0))

	data := ContributeData{
		PotAddress: pot.Address(),
		Value:      helpers.BigIntToBytes(big.NewInt(100)),
	}
	encodedData, _ := cdc.MarshalBinaryBare(data)

	tx := Transaction{
		Nonce:   1,
		ChainID: types.CurrentChainID,
		Type:    TypeContribute,
		Data:    encodedData,
	}

	if err := tx.Sign(privateKey); err != nil {
		t.Fatal(err)
	}

	encodedTx, _ := tx.Serialize()
	response := NewExecutor(GetData).RunTx(cState, encodedTx, 1, 0, &sync.Map{}, false)
	if response.Code != code.PotReleased {
		t.Fatalf("Response code is not correct. Expected %d, got %d", code.PotReleased, response.Code)
	}

	if err := checkState(cState); err != nil {
		t.Error(err)
	}
}
