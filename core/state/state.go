package state

import (
	"log"
	"sync"

	eventsdb "github.com/commonpot/commonpot-go-node/core/events"
	"github.com/commonpot/commonpot-go-node/core/state/accounts"
	"github.com/commonpot/commonpot-go-node/core/state/bus"
	"github.com/commonpot/commonpot-go-node/core/state/checker"
	"github.com/commonpot/commonpot-go-node/core/state/pots"
	"github.com/commonpot/commonpot-go-node/core/types"
	"github.com/commonpot/commonpot-go-node/helpers"
	"github.com/commonpot/commonpot-go-node/tree"
	"github.com/cosmos/iavl"
	db "github.com/tendermint/tm-db"
)

type Interface interface {
	isValue_State()
}

// CheckState is a read-only view over the state, shared by check-mode
// transaction execution and the API.
type CheckState struct {
	state *State
}

func NewCheckState(state *State) *CheckState {
	return &CheckState{state: state}
}

func (cs *CheckState) isValue_State() {}

func (cs *CheckState) Export() types.AppState {
	appState := new(types.AppState)
	appState.StartHeight = uint64(cs.state.height)
	cs.Accounts().Export(appState)
	cs.Pots().Export(appState)

	return *appState
}

func (cs *CheckState) Accounts() accounts.RAccounts {
	return cs.state.Accounts
}

func (cs *CheckState) Pots() pots.RPots {
	return cs.state.Pots
}

type State struct {
	Accounts *accounts.Accounts
	Pots     *pots.Pots
	Checker  *checker.Checker

	db             db.DB
	events         eventsdb.IEventsDB
	tree           tree.MTree
	keepLastStates int64

	bus            *bus.Bus
	lock           sync.RWMutex
	height         int64
	initialVersion int64
}

func (s *State) isValue_State() {}

func NewState(height uint64, db db.DB, events eventsdb.IEventsDB, cacheSize int, keepLastStates int64, initialVersion uint64) (*State, error) {
	iavlTree, err := tree.NewMutableTree(height, db, cacheSize, initialVersion)
	if err != nil {
		return nil, err
	}

	state, err := newStateForTree(iavlTree.GetLastImmutable(), events, db, keepLastStates)
	if err != nil {
		return nil, err
	}

	state.tree = iavlTree
	state.height = int64(height)
	state.initialVersion = int64(initialVersion)

	return state, nil
}

func NewCheckStateAtHeight(height uint64, db db.DB) (*CheckState, error) {
	iavlTree, err := tree.NewImmutableTree(height, db)
	if err != nil {
		return nil, err
	}
	return newCheckStateForTree(iavlTree, nil, db, 0)
}

func (s *State) Tree() tree.MTree {
	return s.tree
}

func (s *State) Bus() *bus.Bus {
	return s.bus
}

func (s *State) Lock() {
	s.lock.Lock()
}

func (s *State) Unlock() {
	s.lock.Unlock()
}

func (s *State) RLock() {
	s.lock.RLock()
}

func (s *State) RUnlock() {
	s.lock.RUnlock()
}

func (s *State) Check() error {
	return s.Checker.Check()
}

func (s *State) Commit() ([]byte, error) {
	s.Checker.Reset()

	hash, version, err := s.tree.Commit(
		s.Accounts,
		s.Pots,
	)
	if err != nil {
		return hash, err
	}

	s.height = version

	versionToDelete := version - s.keepLastStates - 1
	if versionToDelete < s.initialVersion {
		return hash, nil
	}

	if err := s.tree.DeleteVersion(versionToDelete); err != nil {
		log.Printf("DeleteVersion %d error: %s\n", versionToDelete, err)
	}

	return hash, nil
}

func (s *State) Import(state types.AppState) error {
	for _, a := range state.Accounts {
		s.Accounts.SetNonce(a.Address, a.Nonce)
		s.Accounts.SetBalance(a.Address, helpers.StringToBigInt(a.Balance))
	}

	for _, pot := range state.Pots {
		s.Pots.ImportPot(pot)
	}

	for _, c := range state.Contributions {
		s.Pots.ImportContribution(c)
	}

	// genesis balances come from outside, they are not a transition
	s.Checker.Reset()

	return nil
}

func (s *State) Export() types.AppState {
	state, err := NewCheckStateAtHeight(uint64(s.tree.Version()), s.db)
	if err != nil {
		log.Panicf("Create new state at height %d failed: %s", s.tree.Version(), err)
	}

	return state.Export()
}

func newCheckStateForTree(immutableTree *iavl.ImmutableTree, events eventsdb.IEventsDB, db db.DB, keepLastStates int64) (*CheckState, error) {
	stateForTree, err := newStateForTree(immutableTree, events, db, keepLastStates)
	if err != nil {
		return nil, err
	}

	return NewCheckState(stateForTree), nil
}

func newStateForTree(immutableTree *iavl.ImmutableTree, events eventsdb.IEventsDB, db db.DB, keepLastStates int64) (*State, error) {
	stateBus := bus.NewBus()
	stateBus.SetEvents(events)

	stateChecker := checker.NewChecker(stateBus)

	accountsState := accounts.NewAccounts(stateBus, immutableTree)

	potsState := pots.NewPots(stateBus, immutableTree)

	state := &State{
		Accounts: accountsState,
		Pots:     potsState,
		Checker:  stateChecker,

		bus:            stateBus,
		db:             db,
		events:         events,
		keepLastStates: keepLastStates,
	}

	if immutableTree != nil {
		state.height = immutableTree.Version()
	}

	return state, nil
}
