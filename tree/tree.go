package tree

import (
	"sync"

	"github.com/cosmos/iavl"
	db "github.com/tendermint/tm-db"
)

// Dirty is a state sub-store that flushes its pending changes into the tree
// on Commit and receives the fresh immutable view afterwards.
type Dirty interface {
	Commit(db *iavl.MutableTree, version int64) error
	SetImmutableTree(immutableTree *iavl.ImmutableTree)
}

// MTree is a committable versioned key-value tree.
type MTree interface {
	Get(key []byte) (index int64, value []byte)
	Set(key, value []byte) bool
	Remove(key []byte) ([]byte, bool)
	Version() int64
	Hash() []byte
	Commit(dirties ...Dirty) (hash []byte, version int64, err error)
	DeleteVersion(version int64) error
	GetImmutableAtHeight(version int64) (*iavl.ImmutableTree, error)
	GetLastImmutable() *iavl.ImmutableTree
	AvailableVersions() []int
}

// NewMutableTree opens the versioned tree at the given height. With height 0
// the latest saved version is loaded; a non-zero initialVersion primes an
// empty tree so its first commit lands on that version.
func NewMutableTree(height uint64, db db.DB, cacheSize int, initialVersion uint64) (MTree, error) {
	iavlTree, err := iavl.NewMutableTree(db, cacheSize)
	if err != nil {
		return nil, err
	}

	if initialVersion > 1 {
		iavlTree.SetInitialVersion(initialVersion)
	}

	if height == 0 {
		if _, err := iavlTree.Load(); err != nil {
			return nil, err
		}
	} else if _, err := iavlTree.LoadVersionForOverwriting(int64(height)); err != nil {
		return nil, err
	}

	return &mutableTree{tree: iavlTree}, nil
}

// NewImmutableTree returns a read-only view of the tree at the given height.
func NewImmutableTree(height uint64, db db.DB) (*iavl.ImmutableTree, error) {
	iavlTree, err := iavl.NewMutableTree(db, 1024)
	if err != nil {
		return nil, err
	}

	if _, err := iavlTree.LazyLoadVersion(int64(height)); err != nil {
		return nil, err
	}

	return iavlTree.GetImmutable(int64(height))
}

type mutableTree struct {
	tree *iavl.MutableTree
	lock sync.RWMutex
}

func (t *mutableTree) Get(key []byte) (index int64, value []byte) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.tree.Get(key)
}

func (t *mutableTree) Set(key, value []byte) bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.tree.Set(key, value)
}

func (t *mutableTree) Remove(key []byte) ([]byte, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.tree.Remove(key)
}

func (t *mutableTree) Version() int64 {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.tree.Version()
}

func (t *mutableTree) Hash() []byte {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.tree.Hash()
}

// Commit flushes every dirty sub-store into the working tree, saves the next
// version and hands the resulting immutable view back to each sub-store.
func (t *mutableTree) Commit(dirties ...Dirty) (hash []byte, version int64, err error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	nextVersion := t.tree.Version() + 1
	for _, dirty := range dirties {
		if err := dirty.Commit(t.tree, nextVersion); err != nil {
			return nil, 0, err
		}
	}

	hash, version, err = t.tree.SaveVersion()
	if err != nil {
		return nil, 0, err
	}

	immutable, err := t.tree.GetImmutable(version)
	if err != nil {
		return nil, 0, err
	}

	for _, dirty := range dirties {
		dirty.SetImmutableTree(immutable)
	}

	return hash, version, nil
}

func (t *mutableTree) DeleteVersion(version int64) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.tree.DeleteVersion(version)
}

func (t *mutableTree) GetImmutableAtHeight(version int64) (*iavl.ImmutableTree, error) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.tree.GetImmutable(version)
}

func (t *mutableTree) GetLastImmutable() *iavl.ImmutableTree {
	t.lock.RLock()
	defer t.lock.RUnlock()

	immutable, err := t.tree.GetImmutable(t.tree.Version())
	if err != nil {
		return t.tree.ImmutableTree
	}

	return immutable
}

func (t *mutableTree) AvailableVersions() []int {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.tree.AvailableVersions()
}
