package pots

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/commonpot/commonpot-go-node/core/state/bus"
	"github.com/commonpot/commonpot-go-node/core/types"
	"github.com/commonpot/commonpot-go-node/helpers"
	"github.com/cosmos/iavl"
	"github.com/tendermint/go-amino"
)

const mainPrefix = byte('p')
const contributorPrefix = byte('c')

var cdc = amino.NewCodec()

type RPots interface {
	Export(state *types.AppState)
	GetPot(address types.Address) *Model
	Exists(address types.Address) bool
	GetContributor(pot types.Address, contributor types.Address) *ContributorModel
}

type contributorKey struct {
	pot     types.Address
	address types.Address
}

func (k contributorKey) path() []byte {
	path := append([]byte{contributorPrefix}, k.pot[:]...)
	return append(path, k.address[:]...)
}

// Pots is the pot registry: every pot record plus the per-contributor audit
// trail, buffered in memory until Commit.
type Pots struct {
	list  map[types.Address]*Model
	dirty map[types.Address]struct{}

	contributors      map[contributorKey]*ContributorModel
	dirtyContributors map[contributorKey]struct{}

	db  atomic.Value
	bus *bus.Bus

	lock sync.RWMutex
}

func NewPots(stateBus *bus.Bus, db *iavl.ImmutableTree) *Pots {
	immutableTree := atomic.Value{}
	if db != nil {
		immutableTree.Store(db)
	}
	pots := &Pots{
		db:                immutableTree,
		bus:               stateBus,
		list:              map[types.Address]*Model{},
		dirty:             map[types.Address]struct{}{},
		contributors:      map[contributorKey]*ContributorModel{},
		dirtyContributors: map[contributorKey]struct{}{},
	}

	return pots
}

func (p *Pots) immutableTree() *iavl.ImmutableTree {
	db := p.db.Load()
	if db == nil {
		return nil
	}
	return db.(*iavl.ImmutableTree)
}

func (p *Pots) SetImmutableTree(immutableTree *iavl.ImmutableTree) {
	p.db.Store(immutableTree)
}

func (p *Pots) Commit(db *iavl.MutableTree, version int64) error {
	for _, address := range p.getOrderedDirtyPots() {
		pot := p.getFromMap(address)
		p.lock.Lock()
		delete(p.dirty, address)
		p.lock.Unlock()

		pot.lock.Lock()
		pot.isDirty = false
		pot.isNew = false
		data, err := cdc.MarshalBinaryBare(pot.data())
		pot.lock.Unlock()
		if err != nil {
			return fmt.Errorf("can't encode pot at %x: %v", address[:], err)
		}

		path := append([]byte{mainPrefix}, address[:]...)
		db.Set(path, data)
	}

	for _, key := range p.getOrderedDirtyContributors() {
		record := p.getContributorFromMap(key)
		p.lock.Lock()
		delete(p.dirtyContributors, key)
		p.lock.Unlock()

		record.lock.Lock()
		record.isDirty = false
		record.isNew = false
		data, err := cdc.MarshalBinaryBare(record.data())
		record.lock.Unlock()
		if err != nil {
			return fmt.Errorf("can't encode contributor at %x: %v", key.address[:], err)
		}

		db.Set(key.path(), data)
	}

	return nil
}

func (p *Pots) getOrderedDirtyPots() []types.Address {
	p.lock.RLock()
	keys := make([]types.Address, 0, len(p.dirty))
	for k := range p.dirty {
		keys = append(keys, k)
	}
	p.lock.RUnlock()

	sort.SliceStable(keys, func(i, j int) bool {
		return bytes.Compare(keys[i].Bytes(), keys[j].Bytes()) == 1
	})

	return keys
}

func (p *Pots) getOrderedDirtyContributors() []contributorKey {
	p.lock.RLock()
	keys := make([]contributorKey, 0, len(p.dirtyContributors))
	for k := range p.dirtyContributors {
		keys = append(keys, k)
	}
	p.lock.RUnlock()

	sort.SliceStable(keys, func(i, j int) bool {
		return bytes.Compare(keys[i].path(), keys[j].path()) == 1
	})

	return keys
}

func (p *Pots) Exists(address types.Address) bool {
	return p.get(address) != nil
}

func (p *Pots) GetPot(address types.Address) *Model {
	return p.get(address)
}

// CreatePot registers a new pot. The owner starts as the only approved
// contributor.
func (p *Pots) CreatePot(owner types.Address, name string, description string, target *big.Int, unlockTime uint64, requiredApprovals uint32) *Model {
	address := CreatePotAddress(owner, name)
	pot := &Model{
		Owner:                owner,
		Name:                 name,
		Description:          description,
		Target:               big.NewInt(0).Set(target),
		TotalContributed:     big.NewInt(0),
		UnlockTime:           unlockTime,
		RequiredApprovals:    requiredApprovals,
		ApprovedContributors: []types.Address{owner},
		address:              address,
		custody:              CreateCustodyAddress(address),
		markDirty:            p.markDirty,
		isNew:                true,
	}
	p.setToMap(address, pot)
	pot.markDirty(address)

	return pot
}

func (p *Pots) AddContributor(address types.Address, contributor types.Address) {
	p.get(address).addContributor(contributor)
}

// AddContribution applies the amount to the pot total and to the sender's
// per-pot audit record.
func (p *Pots) AddContribution(address types.Address, contributor types.Address, amount *big.Int) *ContributorModel {
	p.get(address).addContribution(amount)

	record := p.getOrNewContributor(address, contributor)
	record.add(amount)

	return record
}

func (p *Pots) SignRelease(address types.Address, signer types.Address) uint32 {
	return p.get(address).signRelease(signer)
}

// Release marks the pot released and credits the custody balance to the
// recipient. The caller debits the custody account.
func (p *Pots) Release(address types.Address, recipient types.Address, amount *big.Int) {
	p.get(address).release(recipient)
	p.bus.Accounts().AddBalance(recipient, amount)
}

// ImportPot restores a pot from an exported app state, release progress
// included.
func (p *Pots) ImportPot(pot types.Pot) {
	model := &Model{
		Owner:                pot.Owner,
		Name:                 pot.Name,
		Description:          pot.Description,
		Target:               helpers.StringToBigInt(pot.Target),
		TotalContributed:     helpers.StringToBigInt(pot.TotalContributed),
		UnlockTime:           pot.UnlockTime,
		RequiredApprovals:    pot.RequiredApprovals,
		ApprovedContributors: pot.ApprovedContributors,
		ReleaseApprovals:     pot.ReleaseApprovals,
		Released:             pot.Released,
		address:              pot.Address,
		custody:              CreateCustodyAddress(pot.Address),
		markDirty:            p.markDirty,
		isNew:                true,
	}
	if pot.Recipient != nil {
		model.Recipient = *pot.Recipient
	}

	p.setToMap(pot.Address, model)
	model.markDirty(pot.Address)
}

func (p *Pots) ImportContribution(c types.Contribution) {
	key := contributorKey{pot: c.Pot, address: c.Contributor}
	record := &ContributorModel{
		Total:     helpers.StringToBigInt(c.Total),
		Count:     c.Count,
		pot:       c.Pot,
		address:   c.Contributor,
		markDirty: p.markDirtyContributor,
		isNew:     true,
	}

	p.setContributorToMap(key, record)
	record.markDirty(key)
}

func (p *Pots) GetContributor(pot types.Address, contributor types.Address) *ContributorModel {
	return p.getContributor(contributorKey{pot: pot, address: contributor})
}

func (p *Pots) get(address types.Address) *Model {
	if pot := p.getFromMap(address); pot != nil {
		return pot
	}

	path := append([]byte{mainPrefix}, address[:]...)
	_, enc := p.immutableTree().Get(path)
	if len(enc) == 0 {
		return nil
	}

	var data potData
	if err := cdc.UnmarshalBinaryBare(enc, &data); err != nil {
		panic(fmt.Sprintf("failed to decode pot at address %s: %s", address.String(), err))
	}

	pot := fromData(address, &data)
	pot.markDirty = p.markDirty

	p.setToMap(address, pot)
	return pot
}

func (p *Pots) getContributor(key contributorKey) *ContributorModel {
	if record := p.getContributorFromMap(key); record != nil {
		return record
	}

	_, enc := p.immutableTree().Get(key.path())
	if len(enc) == 0 {
		return nil
	}

	var data contributorData
	if err := cdc.UnmarshalBinaryBare(enc, &data); err != nil {
		panic(fmt.Sprintf("failed to decode contributor %s of pot %s: %s", key.address.String(), key.pot.String(), err))
	}

	record := &ContributorModel{
		Total:     big.NewInt(0).SetBytes(data.Total),
		Count:     data.Count,
		pot:       key.pot,
		address:   key.address,
		markDirty: p.markDirtyContributor,
	}

	p.setContributorToMap(key, record)
	return record
}

func (p *Pots) getOrNewContributor(pot types.Address, contributor types.Address) *ContributorModel {
	key := contributorKey{pot: pot, address: contributor}
	record := p.getContributor(key)
	if record == nil {
		record = &ContributorModel{
			Total:     big.NewInt(0),
			pot:       pot,
			address:   contributor,
			markDirty: p.markDirtyContributor,
			isNew:     true,
		}
		p.setContributorToMap(key, record)
	}

	return record
}

func (p *Pots) markDirty(address types.Address) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.dirty[address] = struct{}{}
}

func (p *Pots) markDirtyContributor(key contributorKey) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.dirtyContributors[key] = struct{}{}
}

func (p *Pots) Export(state *types.AppState) {
	p.immutableTree().IterateRange([]byte{mainPrefix}, []byte{mainPrefix + 1}, true, func(key []byte, value []byte) bool {
		address := types.BytesToAddress(key[1:])
		pot := p.get(address)

		exported := types.Pot{
			Address:              address,
			Owner:                pot.Owner,
			Name:                 pot.Name,
			Description:          pot.Description,
			Target:               pot.GetTarget().String(),
			TotalContributed:     pot.GetTotalContributed().String(),
			UnlockTime:           pot.UnlockTime,
			RequiredApprovals:    pot.RequiredApprovals,
			ApprovedContributors: pot.Contributors(),
			ReleaseApprovals:     pot.Approvals(),
			Released:             pot.IsReleased(),
		}
		if pot.IsReleased() {
			recipient := pot.GetRecipient()
			exported.Recipient = &recipient
		}

		state.Pots = append(state.Pots, exported)

		return false
	})

	p.immutableTree().IterateRange([]byte{contributorPrefix}, []byte{contributorPrefix + 1}, true, func(key []byte, value []byte) bool {
		pot := types.BytesToAddress(key[1 : types.AddressLength+1])
		contributor := types.BytesToAddress(key[types.AddressLength+1:])

		record := p.GetContributor(pot, contributor)
		state.Contributions = append(state.Contributions, types.Contribution{
			Pot:         pot,
			Contributor: contributor,
			Total:       record.GetTotal().String(),
			Count:       record.GetCount(),
		})

		return false
	})
}

func (p *Pots) getFromMap(address types.Address) *Model {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.list[address]
}

func (p *Pots) setToMap(address types.Address, model *Model) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.list[address] = model
}

func (p *Pots) getContributorFromMap(key contributorKey) *ContributorModel {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.contributors[key]
}

func (p *Pots) setContributorToMap(key contributorKey, model *ContributorModel) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.contributors[key] = model
}
