package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MixinNetwork/musesong/nft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *BadgerStore {
	bs, err := OpenBadger(context.Background(), "")
	require.NoError(t, err)
	t.Cleanup(func() { bs.Close() })
	return bs
}

func testAddress(b byte) nft.Address {
	var a nft.Address
	a[0] = b
	return a
}

func installTestCollection(t *testing.T, bs *BadgerStore) (nft.Address, nft.Address) {
	identity := nft.DeriveIdentityAddress(testAddress(1), []byte(nft.IdentitySeed))
	collection := nft.DeriveObjectAddress(identity, nft.CollectionName, "")
	err := bs.WriteInstallation(
		&nft.Object{Address: identity, Kind: nft.ObjectKindIdentity, Creator: testAddress(1), Owner: testAddress(1)},
		&nft.Identity{Address: identity, Installer: testAddress(1), ExtendRef: identity, CreatedAt: time.Now()},
		&nft.Object{Address: collection, Kind: nft.ObjectKindCollection, Creator: identity, Owner: identity},
		&nft.Collection{Address: collection, Creator: identity, Name: nft.CollectionName},
	)
	require.NoError(t, err)
	return identity, collection
}

func testSong(identity, collection nft.Address, name string, ts time.Time) (*nft.Object, *nft.Song, *nft.SongCreated) {
	addr := nft.DeriveObjectAddress(identity, nft.CollectionName, name)
	obj := &nft.Object{Address: addr, Kind: nft.ObjectKindSong, Creator: identity, Owner: testAddress(9)}
	song := &nft.Song{Address: addr, Collection: collection, Identifier: name, Title: name, Points: nft.MaxPoints, MutateRef: addr, BurnRef: addr}
	evt := &nft.SongCreated{TraceId: name, Name: name, Identifier: name, Title: name, CreatedAt: ts}
	return obj, song, evt
}

func TestProperty(t *testing.T) {
	bs := testStore(t)

	val, err := bs.ReadProperty([]byte("missing"))
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, bs.WriteProperty([]byte("key"), []byte("val")))
	val, err = bs.ReadProperty([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("val"), val)
}

func TestWriteInstallationOnce(t *testing.T) {
	bs := testStore(t)
	identity, collection := installTestCollection(t, bs)

	id, err := bs.ReadIdentity(identity)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, testAddress(1), id.Installer)

	c, err := bs.ReadCollection(collection)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, nft.CollectionName, c.Name)

	err = bs.WriteInstallation(
		&nft.Object{Address: identity, Kind: nft.ObjectKindIdentity},
		&nft.Identity{Address: identity},
		&nft.Object{Address: collection, Kind: nft.ObjectKindCollection},
		&nft.Collection{Address: collection},
	)
	assert.ErrorIs(t, err, nft.ErrAlreadyInitialized)
}

func TestWriteSong(t *testing.T) {
	bs := testStore(t)
	identity, collection := installTestCollection(t, bs)

	obj, song, evt := testSong(identity, collection, "alice", time.Now())
	require.NoError(t, bs.WriteSong(obj, song, evt))

	old, err := bs.ReadSong(song.Address)
	require.NoError(t, err)
	assert.Equal(t, song, old)
	o, err := bs.ReadObject(song.Address)
	require.NoError(t, err)
	assert.Equal(t, obj, o)

	clock, err := bs.ReadProperty([]byte(nft.ClockPropertyKey))
	require.NoError(t, err)
	assert.Equal(t, nft.EncodeClock(evt.CreatedAt), clock)

	evt.CreatedAt = evt.CreatedAt.Add(time.Second)
	err = bs.WriteSong(obj, song, evt)
	assert.ErrorIs(t, err, nft.ErrDuplicateObject)
	after, err := bs.ReadProperty([]byte(nft.ClockPropertyKey))
	require.NoError(t, err)
	assert.Equal(t, clock, after)
	evts, err := bs.ListSongCreatedEvents(time.Time{}, 0)
	require.NoError(t, err)
	assert.Len(t, evts, 1)
}

func TestWriteSongWithoutCollection(t *testing.T) {
	bs := testStore(t)
	identity := nft.DeriveIdentityAddress(testAddress(1), []byte(nft.IdentitySeed))
	obj, song, evt := testSong(identity, testAddress(2), "alice", time.Now())

	err := bs.WriteSong(obj, song, evt)
	assert.ErrorIs(t, err, nft.ErrUninitialized)
	old, err := bs.ReadObject(obj.Address)
	require.NoError(t, err)
	assert.Nil(t, old)
}

func TestUpdateSong(t *testing.T) {
	bs := testStore(t)
	identity, collection := installTestCollection(t, bs)
	obj, song, evt := testSong(identity, collection, "alice", time.Now())

	err := bs.UpdateSong(song.Address, func(s *nft.Song) error { return nil })
	assert.ErrorIs(t, err, nft.ErrNotAvailable)

	require.NoError(t, bs.WriteSong(obj, song, evt))
	require.NoError(t, bs.UpdateSong(song.Address, func(s *nft.Song) error {
		s.Points = 4
		return nil
	}))
	old, err := bs.ReadSong(song.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), old.Points)

	boom := errors.New("boom")
	err = bs.UpdateSong(song.Address, func(s *nft.Song) error {
		s.Points = 1
		return boom
	})
	assert.ErrorIs(t, err, boom)
	old, err = bs.ReadSong(song.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), old.Points)
}

func TestDeleteSong(t *testing.T) {
	bs := testStore(t)
	identity, collection := installTestCollection(t, bs)
	obj, song, evt := testSong(identity, collection, "alice", time.Now())

	assert.ErrorIs(t, bs.DeleteSong(song.Address), nft.ErrNotAvailable)
	require.NoError(t, bs.WriteSong(obj, song, evt))
	require.NoError(t, bs.DeleteSong(song.Address))

	old, err := bs.ReadSong(song.Address)
	require.NoError(t, err)
	assert.Nil(t, old)
	o, err := bs.ReadObject(song.Address)
	require.NoError(t, err)
	assert.Nil(t, o)

	evt.CreatedAt = evt.CreatedAt.Add(time.Second)
	require.NoError(t, bs.WriteSong(obj, song, evt))
}

func TestListSongCreatedEvents(t *testing.T) {
	bs := testStore(t)
	identity, collection := installTestCollection(t, bs)

	base := time.Unix(1700000000, 0)
	for i, name := range []string{"c", "a", "b"} {
		obj, song, evt := testSong(identity, collection, name, base.Add(time.Duration(i)*time.Second))
		require.NoError(t, bs.WriteSong(obj, song, evt))
	}

	evts, err := bs.ListSongCreatedEvents(time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, evts, 3)
	assert.Equal(t, "c", evts[0].Name)
	assert.Equal(t, "a", evts[1].Name)
	assert.Equal(t, "b", evts[2].Name)
	assert.True(t, evts[2].CreatedAt.Equal(base.Add(2*time.Second)))

	evts, err = bs.ListSongCreatedEvents(base.Add(time.Second), 1)
	require.NoError(t, err)
	require.Len(t, evts, 1)
	assert.Equal(t, "a", evts[0].Name)
}
