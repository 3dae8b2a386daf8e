package pots

import (
	"math/big"
	"sync"

	"github.com/commonpot/commonpot-go-node/core/types"
	"github.com/commonpot/commonpot-go-node/crypto"
)

// Model is a single pot: its immutable parameters, the contributor roster and
// the release progress. Funds themselves live on the derived custody account.
type Model struct {
	Owner                types.Address
	Name                 string
	Description          string
	Target               *big.Int
	TotalContributed     *big.Int
	UnlockTime           uint64
	RequiredApprovals    uint32
	ApprovedContributors []types.Address
	ReleaseApprovals     []types.Address
	Released             bool
	Recipient            types.Address

	address types.Address
	custody types.Address

	isDirty bool
	isNew   bool

	markDirty func(types.Address)
	lock      sync.RWMutex
}

type potData struct {
	Owner                types.Address
	Name                 string
	Description          string
	Target               []byte
	TotalContributed     []byte
	UnlockTime           uint64
	RequiredApprovals    uint32
	ApprovedContributors []types.Address
	ReleaseApprovals     []types.Address
	Released             bool
	Recipient            types.Address
}

type contributorData struct {
	Total []byte
	Count uint32
}

// CreatePotAddress derives the pot address from its owner and name, so the
// same owner cannot register two pots under one name.
func CreatePotAddress(owner types.Address, name string) types.Address {
	var addr types.Address
	copy(addr[:], crypto.Keccak256([]byte("pot"), owner[:], []byte(name))[12:])

	return addr
}

// CreateCustodyAddress derives the account that holds the pooled funds. No
// known private key maps to it.
func CreateCustodyAddress(pot types.Address) types.Address {
	var addr types.Address
	copy(addr[:], crypto.Keccak256([]byte("vault"), pot[:])[12:])

	return addr
}

// CreateContributorAddress derives the audit record id for a contributor
// within a pot.
func CreateContributorAddress(pot types.Address, contributor types.Address) types.Address {
	var addr types.Address
	copy(addr[:], crypto.Keccak256([]byte("contributor"), pot[:], contributor[:])[12:])

	return addr
}

func (pot *Model) data() *potData {
	return &potData{
		Owner:                pot.Owner,
		Name:                 pot.Name,
		Description:          pot.Description,
		Target:               pot.Target.Bytes(),
		TotalContributed:     pot.TotalContributed.Bytes(),
		UnlockTime:           pot.UnlockTime,
		RequiredApprovals:    pot.RequiredApprovals,
		ApprovedContributors: pot.ApprovedContributors,
		ReleaseApprovals:     pot.ReleaseApprovals,
		Released:             pot.Released,
		Recipient:            pot.Recipient,
	}
}

func fromData(address types.Address, data *potData) *Model {
	return &Model{
		Owner:                data.Owner,
		Name:                 data.Name,
		Description:          data.Description,
		Target:               big.NewInt(0).SetBytes(data.Target),
		TotalContributed:     big.NewInt(0).SetBytes(data.TotalContributed),
		UnlockTime:           data.UnlockTime,
		RequiredApprovals:    data.RequiredApprovals,
		ApprovedContributors: data.ApprovedContributors,
		ReleaseApprovals:     data.ReleaseApprovals,
		Released:             data.Released,
		Recipient:            data.Recipient,
		address:              address,
		custody:              CreateCustodyAddress(address),
	}
}

func (pot *Model) Address() types.Address {
	return pot.address
}

func (pot *Model) Custody() types.Address {
	return pot.custody
}

func (pot *Model) GetTarget() *big.Int {
	pot.lock.RLock()
	defer pot.lock.RUnlock()

	return big.NewInt(0).Set(pot.Target)
}

func (pot *Model) GetTotalContributed() *big.Int {
	pot.lock.RLock()
	defer pot.lock.RUnlock()

	return big.NewInt(0).Set(pot.TotalContributed)
}

func (pot *Model) GetRecipient() types.Address {
	pot.lock.RLock()
	defer pot.lock.RUnlock()

	return pot.Recipient
}

func (pot *Model) IsReleased() bool {
	pot.lock.RLock()
	defer pot.lock.RUnlock()

	return pot.Released
}

func (pot *Model) IsApprovedContributor(address types.Address) bool {
	pot.lock.RLock()
	defer pot.lock.RUnlock()

	for _, contributor := range pot.ApprovedContributors {
		if contributor == address {
			return true
		}
	}

	return false
}

func (pot *Model) HasSigned(address types.Address) bool {
	pot.lock.RLock()
	defer pot.lock.RUnlock()

	for _, signer := range pot.ReleaseApprovals {
		if signer == address {
			return true
		}
	}

	return false
}

func (pot *Model) ContributorsCount() int {
	pot.lock.RLock()
	defer pot.lock.RUnlock()

	return len(pot.ApprovedContributors)
}

func (pot *Model) ApprovalsCount() uint32 {
	pot.lock.RLock()
	defer pot.lock.RUnlock()

	return uint32(len(pot.ReleaseApprovals))
}

func (pot *Model) Contributors() []types.Address {
	pot.lock.RLock()
	defer pot.lock.RUnlock()

	contributors := make([]types.Address, len(pot.ApprovedContributors))
	copy(contributors, pot.ApprovedContributors)

	return contributors
}

func (pot *Model) Approvals() []types.Address {
	pot.lock.RLock()
	defer pot.lock.RUnlock()

	approvals := make([]types.Address, len(pot.ReleaseApprovals))
	copy(approvals, pot.ReleaseApprovals)

	return approvals
}

func (pot *Model) addContributor(contributor types.Address) {
	pot.lock.Lock()
	pot.ApprovedContributors = append(pot.ApprovedContributors, contributor)
	pot.isDirty = true
	pot.lock.Unlock()

	pot.markDirty(pot.address)
}

func (pot *Model) addContribution(amount *big.Int) {
	pot.lock.Lock()
	pot.TotalContributed = big.NewInt(0).Add(pot.TotalContributed, amount)
	pot.isDirty = true
	pot.lock.Unlock()

	pot.markDirty(pot.address)
}

func (pot *Model) signRelease(signer types.Address) uint32 {
	pot.lock.Lock()
	pot.ReleaseApprovals = append(pot.ReleaseApprovals, signer)
	approvals := uint32(len(pot.ReleaseApprovals))
	pot.isDirty = true
	pot.lock.Unlock()

	pot.markDirty(pot.address)

	return approvals
}

func (pot *Model) release(recipient types.Address) {
	pot.lock.Lock()
	pot.Released = true
	pot.Recipient = recipient
	pot.isDirty = true
	pot.lock.Unlock()

	pot.markDirty(pot.address)
}

// ContributorModel is the per-pot audit record of a single contributor.
type ContributorModel struct {
	Total *big.Int
	Count uint32

	pot     types.Address
	address types.Address

	isDirty bool
	isNew   bool

	markDirty func(contributorKey)
	lock      sync.RWMutex
}

func (record *ContributorModel) data() *contributorData {
	return &contributorData{
		Total: record.Total.Bytes(),
		Count: record.Count,
	}
}

func (record *ContributorModel) GetTotal() *big.Int {
	record.lock.RLock()
	defer record.lock.RUnlock()

	return big.NewInt(0).Set(record.Total)
}

func (record *ContributorModel) GetCount() uint32 {
	record.lock.RLock()
	defer record.lock.RUnlock()

	return record.Count
}

func (record *ContributorModel) add(amount *big.Int) {
	record.lock.Lock()
	record.Total = big.NewInt(0).Add(record.Total, amount)
	record.Count++
	record.isDirty = true
	record.lock.Unlock()

	record.markDirty(contributorKey{pot: record.pot, address: record.address})
}
