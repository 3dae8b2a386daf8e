package accounts

import (
	"math/big"
	"sync"

	"github.com/commonpot/commonpot-go-node/core/types"
)

type Model struct {
	Nonce uint64

	address types.Address
	balance *big.Int

	dirtyBalance bool
	isDirty      bool // nonce
	isNew        bool

	markDirty func(types.Address)
	lock      sync.RWMutex
}

func (model *Model) setNonce(nonce uint64) {
	model.lock.Lock()
	model.Nonce = nonce
	model.isDirty = true
	model.lock.Unlock()

	model.markDirty(model.address)
}

func (model *Model) getBalance() *big.Int {
	model.lock.RLock()
	defer model.lock.RUnlock()

	return model.balance
}

func (model *Model) hasDirtyBalance() bool {
	model.lock.RLock()
	defer model.lock.RUnlock()

	return model.dirtyBalance
}

func (model *Model) setBalance(amount *big.Int) {
	model.lock.Lock()
	model.balance = amount
	model.dirtyBalance = true
	model.lock.Unlock()

	model.markDirty(model.address)
}

func (model *Model) Address() types.Address {
	return model.address
}
