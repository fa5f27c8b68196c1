package store

import (
	"fmt"
	"time"

	"github.com/MixinNetwork/mixin/common"
	"github.com/MixinNetwork/musesong/nft"
	"github.com/dgraph-io/badger/v4"
)

const (
	prefixSongPayload      = "MUSESONG:PAYLOAD:"
	prefixSongCreatedQueue = "MUSESONG:EVENT:CREATED:"
)

func (bs *BadgerStore) WriteSong(obj *nft.Object, song *nft.Song, evt *nft.SongCreated) error {
	if obj.Address != song.Address || obj.Kind != nft.ObjectKindSong {
		panic(song.Address)
	}
	return bs.db.Update(func(txn *badger.Txn) error {
		c, err := bs.readCollection(txn, song.Collection)
		if err != nil {
			return err
		} else if c == nil {
			return fmt.Errorf("collection %s: %w", song.Collection, nft.ErrUninitialized)
		}

		err = bs.createObject(txn, obj)
		if err != nil {
			return err
		}
		key := addressKey(prefixSongPayload, song.Address)
		err = txn.Set(key, common.MsgpackMarshalPanic(song))
		if err != nil {
			return err
		}

		key = buildSongCreatedTimedKey(evt)
		err = txn.Set(key, common.MsgpackMarshalPanic(evt))
		if err != nil {
			return err
		}
		return txn.Set([]byte(nft.ClockPropertyKey), nft.EncodeClock(evt.CreatedAt))
	})
}

func (bs *BadgerStore) ReadSong(addr nft.Address) (*nft.Song, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	return bs.readSong(txn, addr)
}

func (bs *BadgerStore) UpdateSong(addr nft.Address, fn func(*nft.Song) error) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		song, err := bs.readSong(txn, addr)
		if err != nil {
			return err
		} else if song == nil {
			return fmt.Errorf("song %s: %w", addr, nft.ErrNotAvailable)
		}
		err = fn(song)
		if err != nil {
			return err
		}
		if song.Address != addr {
			panic(song.Address)
		}
		key := addressKey(prefixSongPayload, addr)
		return txn.Set(key, common.MsgpackMarshalPanic(song))
	})
}

func (bs *BadgerStore) DeleteSong(addr nft.Address) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		song, err := bs.readSong(txn, addr)
		if err != nil {
			return err
		} else if song == nil {
			return fmt.Errorf("song %s: %w", addr, nft.ErrNotAvailable)
		}
		err = txn.Delete(addressKey(prefixSongPayload, addr))
		if err != nil {
			return err
		}
		return txn.Delete(addressKey(prefixObjectPayload, addr))
	})
}

func (bs *BadgerStore) ListSongCreatedEvents(offset time.Time, limit int) ([]*nft.SongCreated, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefixSongCreatedQueue)
	it := txn.NewIterator(opts)
	defer it.Close()

	var evts []*nft.SongCreated
	start := append([]byte(prefixSongCreatedQueue), tsToBytes(offset)...)
	if offset.IsZero() {
		start = opts.Prefix
	}
	for it.Seek(start); it.Valid(); it.Next() {
		val, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		var evt nft.SongCreated
		err = common.MsgpackUnmarshal(val, &evt)
		if err != nil {
			return nil, err
		}
		evts = append(evts, &evt)
		if len(evts) == limit {
			break
		}
	}
	return evts, nil
}

func (bs *BadgerStore) readSong(txn *badger.Txn, addr nft.Address) (*nft.Song, error) {
	var song nft.Song
	found, err := readPayload(txn, addressKey(prefixSongPayload, addr), &song)
	if err != nil || !found {
		return nil, err
	}
	obj, err := bs.readObject(txn, addr)
	if err != nil {
		return nil, err
	}
	if obj == nil || obj.Kind != nft.ObjectKindSong {
		panic(addr)
	}
	return &song, nil
}

func buildSongCreatedTimedKey(evt *nft.SongCreated) []byte {
	buf := tsToBytes(evt.CreatedAt)
	key := append([]byte(prefixSongCreatedQueue), buf...)
	return append(key, []byte(evt.TraceId)...)
}
