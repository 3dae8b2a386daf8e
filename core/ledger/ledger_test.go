package ledger

import (
	"crypto/ecdsa"
	"math/big"
	"testing"
	"time"

	"github.com/commonpot/commonpot-go-node/cmd/utils"
	"github.com/commonpot/commonpot-go-node/config"
	"github.com/commonpot/commonpot-go-node/core/code"
	"github.com/commonpot/commonpot-go-node/core/events"
	"github.com/commonpot/commonpot-go-node/core/state/pots"
	"github.com/commonpot/commonpot-go-node/core/transaction"
	"github.com/commonpot/commonpot-go-node/core/types"
	"github.com/commonpot/commonpot-go-node/crypto"
	"github.com/commonpot/commonpot-go-node/helpers"
	abciTypes "github.com/tendermint/tendermint/abci/types"
	tmjson "github.com/tendermint/tendermint/libs/json"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
)

func newTestBlockchain(t *testing.T, genesis types.AppState) *Blockchain {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DBBackend = "memdb"
	cfg.StateCacheSize = 1024
	cfg.KeepLastStates = 10

	app := NewBlockchain(utils.NewInMemoryStorage(), cfg, nil)

	genesisBytes, err := tmjson.Marshal(genesis)
	if err != nil {
		t.Fatal(err)
	}

	app.InitChain(abciTypes.RequestInitChain{
		InitialHeight: 1,
		AppStateBytes: genesisBytes,
	})

	return app
}

func makeTx(t *testing.T, key *ecdsa.PrivateKey, nonce uint64, txType transaction.TxType, data interface{}) []byte {
	t.Helper()

	encodedData, err := transaction.Cdc().MarshalBinaryBare(data)
	if err != nil {
		t.Fatal(err)
	}

	tx := transaction.Transaction{
		Nonce:   nonce,
		ChainID: types.CurrentChainID,
		Type:    txType,
		Data:    encodedData,
	}

	if err := tx.Sign(key); err != nil {
		t.Fatal(err)
	}

	encodedTx, err := tx.Serialize()
	if err != nil {
		t.Fatal(err)
	}

	return encodedTx
}

func beginBlock(app *Blockchain, height int64, blockTime uint64) {
	app.BeginBlock(abciTypes.RequestBeginBlock{
		Header: tmproto.Header{
			Height: height,
			Time:   time.Unix(int64(blockTime), 0),
		},
	})
}

func TestBlockchainLifecycle(t *testing.T) {
	t.Parallel()

	privateKey, _ := crypto.GenerateKey()
	addr := crypto.PubkeyToAddress(privateKey.PublicKey)
	recipient := types.Address{9}

	app := newTestBlockchain(t, types.AppState{
		Accounts: []types.Account{
			{Address: addr, Balance: "1000"},
		},
	})
	defer app.Close()

	if balance := app.CurrentState().Accounts().GetBalance(addr); balance.Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("genesis balance is %s, expected 1000", balance)
	}

	// block 1: create the pot
	beginBlock(app, 1, 1000)
	response := app.DeliverTx(abciTypes.RequestDeliverTx{Tx: makeTx(t, privateKey, 1, transaction.TypeCreatePot, transaction.CreatePotData{
		Name:              "trip",
		Target:            helpers.BigIntToBytes(big.NewInt(500)),
		LockDuration:      100,
		RequiredApprovals: 1,
	})})
	if response.Code != 0 {
		t.Fatalf("Response code is not 0. Error: %s", response.Log)
	}
	app.EndBlock(abciTypes.RequestEndBlock{Height: 1})
	commit := app.Commit()
	if len(commit.Data) == 0 {
		t.Fatal("commit returned empty app hash")
	}

	potAddress := pots.CreatePotAddress(addr, "trip")
	pot := app.CurrentState().Pots().GetPot(potAddress)
	if pot == nil {
		t.Fatal("pot was not created")
	}

	if pot.UnlockTime != 1100 {
		t.Fatalf("pot unlock time is %d, expected 1100", pot.UnlockTime)
	}

	// block 2: contribute and sign
	beginBlock(app, 2, 1005)
	response = app.DeliverTx(abciTypes.RequestDeliverTx{Tx: makeTx(t, privateKey, 2, transaction.TypeContribute, transaction.ContributeData{
		PotAddress: potAddress,
		Value:      helpers.BigIntToBytes(big.NewInt(300)),
	})})
	if response.Code != 0 {
		t.Fatalf("Response code is not 0. Error: %s", response.Log)
	}
	response = app.DeliverTx(abciTypes.RequestDeliverTx{Tx: makeTx(t, privateKey, 3, transaction.TypeSignRelease, transaction.SignReleaseData{
		PotAddress: potAddress,
	})})
	if response.Code != 0 {
		t.Fatalf("Response code is not 0. Error: %s", response.Log)
	}
	app.EndBlock(abciTypes.RequestEndBlock{Height: 2})
	app.Commit()

	if balance := app.CurrentState().Accounts().GetBalance(pot.Custody()); balance.Cmp(big.NewInt(300)) != 0 {
		t.Fatalf("custody balance is %s, expected 300", balance)
	}

	loaded := app.GetEventsDB().LoadEvents(2)
	if len(loaded) != 2 {
		t.Fatalf("events count at height 2 is %d, expected 2", len(loaded))
	}
	if _, ok := loaded[0].(*events.ContributionEvent); !ok {
		t.Fatalf("unexpected event type %s", loaded[0].Type())
	}

	// block 3: release is rejected while the lock is active
	beginBlock(app, 3, 1050)
	response = app.DeliverTx(abciTypes.RequestDeliverTx{Tx: makeTx(t, privateKey, 4, transaction.TypeReleaseFunds, transaction.ReleaseFundsData{
		PotAddress: potAddress,
		Recipient:  recipient,
	})})
	if response.Code != code.TimeLockNotExpired {
		t.Fatalf("Response code is not correct. Expected %d, got %d", code.TimeLockNotExpired, response.Code)
	}
	app.EndBlock(abciTypes.RequestEndBlock{Height: 3})
	app.Commit()

	// block 4: release after the unlock time
	beginBlock(app, 4, 2000)
	response = app.DeliverTx(abciTypes.RequestDeliverTx{Tx: makeTx(t, privateKey, 4, transaction.TypeReleaseFunds, transaction.ReleaseFundsData{
		PotAddress: potAddress,
		Recipient:  recipient,
	})})
	if response.Code != 0 {
		t.Fatalf("Response code is not 0. Error: %s", response.Log)
	}
	app.EndBlock(abciTypes.RequestEndBlock{Height: 4})
	app.Commit()

	if balance := app.CurrentState().Accounts().GetBalance(recipient); balance.Cmp(big.NewInt(300)) != 0 {
		t.Fatalf("recipient balance is %s, expected 300", balance)
	}

	info := app.Info(abciTypes.RequestInfo{})
	if info.LastBlockHeight != 4 {
		t.Fatalf("last block height is %d, expected 4", info.LastBlockHeight)
	}
	if len(info.LastBlockAppHash) == 0 {
		t.Fatal("last block app hash is empty")
	}
}

func TestBlockchainHaltHeight(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.DBBackend = "memdb"
	cfg.StateCacheSize = 1024
	cfg.KeepLastStates = 10
	cfg.HaltHeight = 2

	app := NewBlockchain(utils.NewInMemoryStorage(), cfg, nil)
	defer app.Close()

	genesisBytes, err := tmjson.Marshal(types.AppState{})
	if err != nil {
		t.Fatal(err)
	}

	app.InitChain(abciTypes.RequestInitChain{
		InitialHeight: 1,
		AppStateBytes: genesisBytes,
	})

	beginBlock(app, 1, 1000)
	if app.IsStopped() {
		t.Fatal("application stopped before the halt height")
	}
	app.EndBlock(abciTypes.RequestEndBlock{Height: 1})
	app.Commit()

	// the next Commit would exit the process, so only the flag is checked here
	beginBlock(app, 2, 1005)
	if !app.IsStopped() {
		t.Fatal("application is not stopped at the halt height")
	}
}

func TestBlockchainCheckTxMempoolDedup(t *testing.T) {
	t.Parallel()

	privateKey, _ := crypto.GenerateKey()
	addr := crypto.PubkeyToAddress(privateKey.PublicKey)

	app := newTestBlockchain(t, types.AppState{
		Accounts: []types.Account{
			{Address: addr, Balance: "1000"},
		},
	})
	defer app.Close()

	tx := makeTx(t, privateKey, 1, transaction.TypeCreatePot, transaction.CreatePotData{
		Name:              "trip",
		Target:            helpers.BigIntToBytes(big.NewInt(500)),
		RequiredApprovals: 1,
	})

	response := app.CheckTx(abciTypes.RequestCheckTx{Tx: tx})
	if response.Code != 0 {
		t.Fatalf("Response code is not 0. Error: %s", response.Log)
	}

	response = app.CheckTx(abciTypes.RequestCheckTx{Tx: tx})
	if response.Code != code.TxFromSenderAlreadyInMempool {
		t.Fatalf("Response code is not correct. Expected %d, got %d", code.TxFromSenderAlreadyInMempool, response.Code)
	}
}
