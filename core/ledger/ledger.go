package ledger

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/commonpot/commonpot-go-node/cmd/utils"
	"github.com/commonpot/commonpot-go-node/config"
	"github.com/commonpot/commonpot-go-node/core/appdb"
	eventsdb "github.com/commonpot/commonpot-go-node/core/events"
	"github.com/commonpot/commonpot-go-node/core/state"
	"github.com/commonpot/commonpot-go-node/core/transaction"
	"github.com/commonpot/commonpot-go-node/core/types"
	"github.com/commonpot/commonpot-go-node/version"
	"github.com/pkg/errors"
	abciTypes "github.com/tendermint/tendermint/abci/types"
	tmjson "github.com/tendermint/tendermint/libs/json"
	tmlog "github.com/tendermint/tendermint/libs/log"
)

// Blockchain is the main structure of the commonpot node. It glues the pot
// state machine to the consensus engine through ABCI.
type Blockchain struct {
	abciTypes.BaseApplication

	logger tmlog.Logger

	executor *transaction.Executor

	appDB        *appdb.AppDB
	eventsDB     eventsdb.IEventsDB
	stateDeliver *state.State
	stateCheck   *state.CheckState

	height    uint64 // current Blockchain height
	blockTime uint64 // header time of the block in progress, unix seconds

	// currentMempool prevents sending multiple transactions from one address in one block
	currentMempool *sync.Map

	cfg      *config.Config
	storages *utils.Storage

	haltHeight uint64
	stopped    bool

	lock sync.RWMutex
}

// NewBlockchain creates the commonpot application, should be only called once
func NewBlockchain(storages *utils.Storage, cfg *config.Config, logger tmlog.Logger) *Blockchain {
	// Initiate Application DB. Used for persisting data like current block hash and height.
	applicationDB := appdb.NewAppDB(storages.GetHome(), cfg)

	var eventsDB eventsdb.IEventsDB
	if !cfg.ValidatorMode {
		eventsDB = eventsdb.NewEventsStore(storages.EventDB())
	} else {
		eventsDB = eventsdb.MockEvents{}
	}

	if logger == nil {
		logger = tmlog.NewNopLogger()
	}

	app := &Blockchain{
		logger: logger,

		appDB:          applicationDB,
		storages:       storages,
		eventsDB:       eventsDB,
		currentMempool: &sync.Map{},
		cfg:            cfg,
		haltHeight:     uint64(cfg.HaltHeight),
		executor:       transaction.NewExecutor(transaction.GetData),
	}
	if applicationDB.GetStartHeight() != 0 {
		app.initState()
	}

	return app
}

func (blockchain *Blockchain) initState() {
	initialHeight := blockchain.appDB.GetStartHeight()
	currentHeight := blockchain.appDB.GetLastHeight()

	stateDeliver, err := state.NewState(currentHeight,
		blockchain.storages.StateDB(),
		blockchain.eventsDB,
		blockchain.cfg.StateCacheSize,
		blockchain.cfg.KeepLastStates,
		initialHeight)
	if err != nil {
		panic(err)
	}

	height := currentHeight
	if height == 0 {
		height = initialHeight
	}
	atomic.StoreUint64(&blockchain.height, height)
	blockchain.stateDeliver = stateDeliver
	blockchain.stateCheck = state.NewCheckState(stateDeliver)
}

// InitChain imports the genesis app state. Only called once.
func (blockchain *Blockchain) InitChain(req abciTypes.RequestInitChain) abciTypes.ResponseInitChain {
	var genesisState types.AppState
	if err := tmjson.Unmarshal(req.AppStateBytes, &genesisState); err != nil {
		panic(err)
	}

	if err := genesisState.Verify(); err != nil {
		panic(err)
	}

	initialHeight := uint64(req.InitialHeight) - 1

	blockchain.appDB.SetStartHeight(initialHeight)
	blockchain.initState()

	if err := blockchain.stateDeliver.Import(genesisState); err != nil {
		panic(err)
	}
	if err := blockchain.stateDeliver.Check(); err != nil {
		panic(err)
	}
	if _, err := blockchain.stateDeliver.Commit(); err != nil {
		panic(err)
	}

	blockchain.appDB.SetLastHeight(initialHeight)
	blockchain.appDB.SaveStartHeight()

	return abciTypes.ResponseInitChain{}
}

// BeginBlock signals the beginning of a block. The header time becomes the
// authoritative clock reading for every transaction in the block.
func (blockchain *Blockchain) BeginBlock(req abciTypes.RequestBeginBlock) abciTypes.ResponseBeginBlock {
	height := uint64(req.Header.Height)
	if blockchain.stateDeliver == nil {
		blockchain.initState()
	}

	atomic.StoreUint64(&blockchain.blockTime, uint64(req.Header.Time.Unix()))

	if blockchain.haltHeight > 0 && height >= blockchain.haltHeight {
		blockchain.logger.Error("Application halted", "height", height)
		blockchain.stopped = true
	}

	return abciTypes.ResponseBeginBlock{}
}

// EndBlock signals the end of a block
func (blockchain *Blockchain) EndBlock(req abciTypes.RequestEndBlock) abciTypes.ResponseEndBlock {
	atomic.StoreUint64(&blockchain.height, uint64(req.Height))

	return abciTypes.ResponseEndBlock{}
}

// Info returns application info. Used for synchronization between the consensus engine and the app
func (blockchain *Blockchain) Info(_ abciTypes.RequestInfo) (resInfo abciTypes.ResponseInfo) {
	return abciTypes.ResponseInfo{
		Version:          version.Version,
		AppVersion:       version.AppVer,
		LastBlockHeight:  int64(blockchain.appDB.GetLastHeight()),
		LastBlockAppHash: blockchain.appDB.GetLastBlockHash(),
	}
}

// DeliverTx delivers a tx for full processing
func (blockchain *Blockchain) DeliverTx(req abciTypes.RequestDeliverTx) abciTypes.ResponseDeliverTx {
	response := blockchain.executor.RunTx(blockchain.stateDeliver, req.Tx, blockchain.Height()+1, blockchain.BlockTime(), &sync.Map{}, blockchain.cfg.ValidatorMode)

	return abciTypes.ResponseDeliverTx{
		Code: response.Code,
		Data: response.Data,
		Log:  response.Log,
		Info: response.Info,
		Events: []abciTypes.Event{
			{
				Type:       "tags",
				Attributes: response.Tags,
			},
		},
	}
}

// CheckTx validates a tx for the mempool
func (blockchain *Blockchain) CheckTx(req abciTypes.RequestCheckTx) abciTypes.ResponseCheckTx {
	response := blockchain.executor.RunTx(blockchain.CurrentState(), req.Tx, blockchain.Height()+1, blockchain.BlockTime(), blockchain.currentMempool, true)

	return abciTypes.ResponseCheckTx{
		Code: response.Code,
		Data: response.Data,
		Log:  response.Log,
		Info: response.Info,
	}
}

// Commit the state and return the application Merkle root hash
func (blockchain *Blockchain) Commit() abciTypes.ResponseCommit {
	if blockchain.stopped {
		if err := blockchain.Close(); err != nil {
			blockchain.logger.Error("Failed to close databases", "err", err)
		}
		os.Exit(0)
	}

	height := blockchain.Height()

	if err := blockchain.stateDeliver.Check(); err != nil {
		panic(errors.Wrap(err, fmt.Sprintf("height %d", height)))
	}

	// Flush events db
	if err := blockchain.eventsDB.CommitEvents(uint32(height)); err != nil {
		panic(err)
	}

	hash, err := blockchain.stateDeliver.Commit()
	if err != nil {
		panic(err)
	}

	// Persist application hash and height
	blockchain.appDB.SetLastBlockHash(hash)
	blockchain.appDB.SetLastHeight(height)

	// Clear mempool
	blockchain.currentMempool = &sync.Map{}

	return abciTypes.ResponseCommit{Data: hash}
}

// CurrentState returns immutable state of the application
func (blockchain *Blockchain) CurrentState() *state.CheckState {
	blockchain.lock.RLock()
	defer blockchain.lock.RUnlock()

	return blockchain.stateCheck
}

// GetStateForHeight returns immutable state of the application for the given height
func (blockchain *Blockchain) GetStateForHeight(height uint64) (*state.CheckState, error) {
	if height > 0 {
		s, err := state.NewCheckStateAtHeight(height, blockchain.storages.StateDB())
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return blockchain.CurrentState(), nil
}

// Height returns the current height of the application
func (blockchain *Blockchain) Height() uint64 {
	return atomic.LoadUint64(&blockchain.height)
}

// BlockTime returns the header time of the block in progress
func (blockchain *Blockchain) BlockTime() uint64 {
	return atomic.LoadUint64(&blockchain.blockTime)
}

// InitialHeight returns the height the chain started from
func (blockchain *Blockchain) InitialHeight() uint64 {
	return blockchain.appDB.GetStartHeight()
}

// LastBlockHash returns the latest committed application hash
func (blockchain *Blockchain) LastBlockHash() []byte {
	return blockchain.appDB.GetLastBlockHash()
}

// GetEventsDB returns current events store
func (blockchain *Blockchain) GetEventsDB() eventsdb.IEventsDB {
	return blockchain.eventsDB
}

// Executor returns the transaction executor
func (blockchain *Blockchain) Executor() *transaction.Executor {
	return blockchain.executor
}

// IsStopped reports whether the application reached its halt height
func (blockchain *Blockchain) IsStopped() bool {
	return blockchain.stopped
}

// Close closes db connections
func (blockchain *Blockchain) Close() error {
	if err := blockchain.appDB.Close(); err != nil {
		return err
	}

	return blockchain.storages.Close()
}
