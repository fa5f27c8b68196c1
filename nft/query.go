package nft

import (
	"context"
	"fmt"
	"time"
)

// RecordAddress is where the song of owner lives, whether it exists or not.
func (m *Module) RecordAddress(owner Address) Address {
	return DeriveObjectAddress(m.IdentityAddress(), CollectionName, owner.String())
}

func (m *Module) Exists(ctx context.Context, owner Address) (bool, error) {
	m.RLock()
	defer m.RUnlock()

	song, err := m.store.ReadSong(m.RecordAddress(owner))
	return song != nil, err
}

func (m *Module) Get(ctx context.Context, owner Address) (*Song, error) {
	m.RLock()
	defer m.RUnlock()

	addr := m.RecordAddress(owner)
	song, err := m.store.ReadSong(addr)
	if err != nil {
		return nil, err
	}
	if song == nil {
		return nil, fmt.Errorf("song %s: %w", addr, ErrNotAvailable)
	}
	return song, nil
}

func (m *Module) GetByAddress(ctx context.Context, addr Address) (*Song, error) {
	m.RLock()
	defer m.RUnlock()

	song, err := m.store.ReadSong(addr)
	if err != nil {
		return nil, err
	}
	if song == nil {
		return nil, fmt.Errorf("song %s: %w", addr, ErrObjectNotFound)
	}
	return song, nil
}

// Owner returns the account currently owning the object at addr.
func (m *Module) Owner(ctx context.Context, addr Address) (Address, error) {
	m.RLock()
	defer m.RUnlock()

	obj, err := m.store.ReadObject(addr)
	if err != nil {
		return Address{}, err
	}
	if obj == nil {
		return Address{}, fmt.Errorf("object %s: %w", addr, ErrObjectNotFound)
	}
	return obj.Owner, nil
}

// Events lists creation events in creation order, starting at offset. A
// zero offset starts from the first event, a limit <= 0 returns all of them.
func (m *Module) Events(ctx context.Context, offset time.Time, limit int) ([]*SongCreated, error) {
	m.RLock()
	defer m.RUnlock()

	return m.store.ListSongCreatedEvents(offset, limit)
}
