package accounts

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/commonpot/commonpot-go-node/core/state/bus"
	"github.com/commonpot/commonpot-go-node/core/types"
	"github.com/cosmos/iavl"
	"github.com/tendermint/go-amino"
)

const mainPrefix = byte('a')
const balancePrefix = byte('b')

var cdc = amino.NewCodec()

type RAccounts interface {
	Export(state *types.AppState)
	GetAccount(address types.Address) *Model
	GetNonce(address types.Address) uint64
	GetBalance(address types.Address) *big.Int
}

type Accounts struct {
	list  map[types.Address]*Model
	dirty map[types.Address]struct{}

	db  atomic.Value
	bus *bus.Bus

	lock sync.RWMutex
}

func NewAccounts(stateBus *bus.Bus, db *iavl.ImmutableTree) *Accounts {
	immutableTree := atomic.Value{}
	if db != nil {
		immutableTree.Store(db)
	}
	accounts := &Accounts{db: immutableTree, bus: stateBus, list: map[types.Address]*Model{}, dirty: map[types.Address]struct{}{}}
	accounts.bus.SetAccounts(NewBus(accounts))

	return accounts
}

func (a *Accounts) immutableTree() *iavl.ImmutableTree {
	db := a.db.Load()
	if db == nil {
		return nil
	}
	return db.(*iavl.ImmutableTree)
}

func (a *Accounts) SetImmutableTree(immutableTree *iavl.ImmutableTree) {
	a.db.Store(immutableTree)
}

func (a *Accounts) Commit(db *iavl.MutableTree, version int64) error {
	accounts := a.getOrderedDirtyAccounts()
	for _, address := range accounts {
		account := a.getFromMap(address)
		a.lock.Lock()
		delete(a.dirty, address)
		a.lock.Unlock()

		// save info (nonce)
		if a.IsNewOrDirty(account) {
			account.lock.Lock()
			account.isDirty = false
			account.isNew = false
			data, err := cdc.MarshalBinaryBare(account)
			account.lock.Unlock()
			if err != nil {
				return fmt.Errorf("can't encode object at %x: %v", address[:], err)
			}

			path := append([]byte{mainPrefix}, address[:]...)
			if len(data) == 0 {
				db.Remove(path)
			} else {
				db.Set(path, data)
			}
		}

		// save balance
		if account.hasDirtyBalance() {
			path := append([]byte{mainPrefix}, address[:]...)
			path = append(path, balancePrefix)

			balance := account.getBalance()
			switch balance.Sign() {
			case 0:
				db.Remove(path)
			case 1:
				db.Set(path, balance.Bytes())
			case -1:
				panic(fmt.Sprintf("Address %s has negative balance: %s", address.String(), balance))
			}

			account.lock.Lock()
			account.dirtyBalance = false
			account.lock.Unlock()
		}
	}

	return nil
}

func (a *Accounts) IsNewOrDirty(account *Model) bool {
	account.lock.RLock()
	defer account.lock.RUnlock()

	return account.isDirty || account.isNew
}

func (a *Accounts) getOrderedDirtyAccounts() []types.Address {
	a.lock.RLock()
	keys := make([]types.Address, 0, len(a.dirty))
	for k := range a.dirty {
		keys = append(keys, k)
	}
	a.lock.RUnlock()

	sort.SliceStable(keys, func(i, j int) bool {
		return bytes.Compare(keys[i].Bytes(), keys[j].Bytes()) == 1
	})

	return keys
}

func (a *Accounts) AddBalance(address types.Address, amount *big.Int) {
	balance := a.GetBalance(address)
	a.SetBalance(address, big.NewInt(0).Add(balance, amount))
}

func (a *Accounts) GetBalance(address types.Address) *big.Int {
	account := a.getOrNew(address)

	account.lock.RLock()
	balance := account.balance
	account.lock.RUnlock()

	if balance == nil {
		balance = big.NewInt(0)

		path := append([]byte{mainPrefix}, address[:]...)
		path = append(path, balancePrefix)

		_, enc := a.immutableTree().Get(path)
		if len(enc) != 0 {
			balance = big.NewInt(0).SetBytes(enc)
		}

		account.lock.Lock()
		account.balance = balance
		account.lock.Unlock()
	}

	return big.NewInt(0).Set(balance)
}

func (a *Accounts) SubBalance(address types.Address, amount *big.Int) {
	balance := big.NewInt(0).Sub(a.GetBalance(address), amount)
	a.SetBalance(address, balance)
}

func (a *Accounts) SetBalance(address types.Address, amount *big.Int) {
	account := a.getOrNew(address)
	oldBalance := a.GetBalance(address)
	a.bus.Checker().AddDelta(big.NewInt(0).Sub(amount, oldBalance))

	account.setBalance(amount)
}

func (a *Accounts) SetNonce(address types.Address, nonce uint64) {
	account := a.getOrNew(address)
	account.setNonce(nonce)
}

func (a *Accounts) get(address types.Address) *Model {
	if account := a.getFromMap(address); account != nil {
		return account
	}

	path := append([]byte{mainPrefix}, address[:]...)
	_, enc := a.immutableTree().Get(path)
	if len(enc) == 0 {
		// an account with a zero nonce has no info node, only a balance node
		balancePath := append(path, balancePrefix)
		if _, b := a.immutableTree().Get(balancePath); len(b) == 0 {
			return nil
		}
	}

	account := &Model{}
	if len(enc) != 0 {
		if err := cdc.UnmarshalBinaryBare(enc, account); err != nil {
			panic(fmt.Sprintf("failed to decode account at address %s: %s", address.String(), err))
		}
	}

	account.address = address
	account.markDirty = a.markDirty

	a.setToMap(address, account)
	return account
}

func (a *Accounts) getOrNew(address types.Address) *Model {
	account := a.get(address)
	if account == nil {
		account = &Model{
			Nonce:     0,
			address:   address,
			balance:   big.NewInt(0),
			markDirty: a.markDirty,
			isNew:     true,
		}
		a.setToMap(address, account)
	}

	return account
}

func (a *Accounts) GetNonce(address types.Address) uint64 {
	account := a.getOrNew(address)

	account.lock.RLock()
	defer account.lock.RUnlock()

	return account.Nonce
}

func (a *Accounts) markDirty(addr types.Address) {
	a.lock.Lock()
	defer a.lock.Unlock()

	a.dirty[addr] = struct{}{}
}

func (a *Accounts) Export(state *types.AppState) {
	seen := map[types.Address]struct{}{}
	a.immutableTree().IterateRange([]byte{mainPrefix}, []byte{mainPrefix + 1}, true, func(key []byte, value []byte) bool {
		if len(key) < types.AddressLength+1 {
			return false
		}

		seen[types.BytesToAddress(key[1:types.AddressLength+1])] = struct{}{}
		return false
	})

	addresses := make([]types.Address, 0, len(seen))
	for address := range seen {
		addresses = append(addresses, address)
	}
	sort.SliceStable(addresses, func(i, j int) bool {
		return addresses[i].Compare(addresses[j]) == -1
	})

	for _, address := range addresses {
		balance := a.GetBalance(address)
		nonce := a.GetNonce(address)
		if balance.Sign() == 0 && nonce == 0 {
			continue
		}

		state.Accounts = append(state.Accounts, types.Account{
			Address: address,
			Balance: balance.String(),
			Nonce:   nonce,
		})
	}
}

func (a *Accounts) GetAccount(address types.Address) *Model {
	return a.getOrNew(address)
}

func (a *Accounts) getFromMap(address types.Address) *Model {
	a.lock.RLock()
	defer a.lock.RUnlock()

	return a.list[address]
}

func (a *Accounts) setToMap(address types.Address, model *Model) {
	a.lock.Lock()
	defer a.lock.Unlock()

	a.list[address] = model
}
