package events

import (
	"encoding/binary"
	"sync"

	"github.com/tendermint/go-amino"
	db "github.com/tendermint/tm-db"
)

// IEventsDB is the block event journal: events are buffered during deliver
// and flushed under their block height on commit.
type IEventsDB interface {
	AddEvent(event Event)
	LoadEvents(height uint32) Events
	CommitEvents(height uint32) error
	Close() error
}

type eventsStore struct {
	sync.RWMutex
	db      db.DB
	cdc     *amino.Codec
	pending pendingEvents
}

type pendingEvents struct {
	sync.Mutex
	items Events
}

func NewEventsStore(db db.DB) IEventsDB {
	codec := amino.NewCodec()
	codec.RegisterInterface((*Event)(nil), nil)
	codec.RegisterConcrete(&PotCreatedEvent{}, TypePotCreatedEvent, nil)
	codec.RegisterConcrete(&ContributionEvent{}, TypeContributionEvent, nil)
	codec.RegisterConcrete(&SignReleaseEvent{}, TypeSignReleaseEvent, nil)
	codec.RegisterConcrete(&ReleaseEvent{}, TypeReleaseEvent, nil)

	return &eventsStore{
		db:  db,
		cdc: codec,
	}
}

func (store *eventsStore) AddEvent(event Event) {
	store.pending.Lock()
	defer store.pending.Unlock()

	store.pending.items = append(store.pending.items, event)
}

func (store *eventsStore) LoadEvents(height uint32) Events {
	store.RLock()
	defer store.RUnlock()

	bytes, err := store.db.Get(heightKey(height))
	if err != nil {
		panic(err)
	}

	if len(bytes) == 0 {
		return Events{}
	}

	var items Events
	if err := store.cdc.UnmarshalBinaryBare(bytes, &items); err != nil {
		panic(err)
	}

	return items
}

func (store *eventsStore) CommitEvents(height uint32) error {
	store.pending.Lock()
	defer store.pending.Unlock()

	bytes, err := store.cdc.MarshalBinaryBare(store.pending.items)
	if err != nil {
		return err
	}

	store.Lock()
	defer store.Unlock()

	if err := store.db.Set(heightKey(height), bytes); err != nil {
		return err
	}

	store.pending.items = Events{}

	return nil
}

func (store *eventsStore) Close() error {
	return store.db.Close()
}

func heightKey(height uint32) []byte {
	var key [4]byte
	binary.BigEndian.PutUint32(key[:], height)
	return key[:]
}
