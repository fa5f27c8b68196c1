package store

import (
	"fmt"

	"github.com/MixinNetwork/mixin/common"
	"github.com/MixinNetwork/musesong/nft"
	"github.com/dgraph-io/badger/v4"
)

const (
	prefixObjectPayload     = "OBJECT:PAYLOAD:"
	prefixIdentityPayload   = "IDENTITY:PAYLOAD:"
	prefixCollectionPayload = "COLLECTION:PAYLOAD:"
)

func (bs *BadgerStore) WriteInstallation(iobj *nft.Object, identity *nft.Identity, cobj *nft.Object, collection *nft.Collection) error {
	if iobj.Address != identity.Address || cobj.Address != collection.Address {
		panic(identity.Address)
	}
	return bs.db.Update(func(txn *badger.Txn) error {
		old, err := bs.readIdentity(txn, identity.Address)
		if err != nil {
			return err
		} else if old != nil {
			return fmt.Errorf("identity %s: %w", identity.Address, nft.ErrAlreadyInitialized)
		}

		err = bs.createObject(txn, iobj)
		if err != nil {
			return err
		}
		key := addressKey(prefixIdentityPayload, identity.Address)
		err = txn.Set(key, common.MsgpackMarshalPanic(identity))
		if err != nil {
			return err
		}

		err = bs.createObject(txn, cobj)
		if err != nil {
			return err
		}
		key = addressKey(prefixCollectionPayload, collection.Address)
		err = txn.Set(key, common.MsgpackMarshalPanic(collection))
		if err != nil {
			return err
		}
		return txn.Set([]byte(nft.ClockPropertyKey), nft.EncodeClock(identity.CreatedAt))
	})
}

func (bs *BadgerStore) ReadIdentity(addr nft.Address) (*nft.Identity, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	return bs.readIdentity(txn, addr)
}

func (bs *BadgerStore) ReadCollection(addr nft.Address) (*nft.Collection, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	return bs.readCollection(txn, addr)
}

func (bs *BadgerStore) ReadObject(addr nft.Address) (*nft.Object, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	return bs.readObject(txn, addr)
}

// createObject refuses to place an object at an occupied address.
func (bs *BadgerStore) createObject(txn *badger.Txn, obj *nft.Object) error {
	old, err := bs.readObject(txn, obj.Address)
	if err != nil {
		return err
	} else if old != nil {
		return fmt.Errorf("%s %s: %w", old.Kind, obj.Address, nft.ErrDuplicateObject)
	}
	key := addressKey(prefixObjectPayload, obj.Address)
	return txn.Set(key, common.MsgpackMarshalPanic(obj))
}

func (bs *BadgerStore) readObject(txn *badger.Txn, addr nft.Address) (*nft.Object, error) {
	var obj nft.Object
	found, err := readPayload(txn, addressKey(prefixObjectPayload, addr), &obj)
	if err != nil || !found {
		return nil, err
	}
	return &obj, nil
}

func (bs *BadgerStore) readIdentity(txn *badger.Txn, addr nft.Address) (*nft.Identity, error) {
	var identity nft.Identity
	found, err := readPayload(txn, addressKey(prefixIdentityPayload, addr), &identity)
	if err != nil || !found {
		return nil, err
	}
	return &identity, nil
}

func (bs *BadgerStore) readCollection(txn *badger.Txn, addr nft.Address) (*nft.Collection, error) {
	var c nft.Collection
	found, err := readPayload(txn, addressKey(prefixCollectionPayload, addr), &c)
	if err != nil || !found {
		return nil, err
	}
	return &c, nil
}

func readPayload(txn *badger.Txn, key []byte, v interface{}) (bool, error) {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return false, nil
	} else if err != nil {
		return false, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return false, err
	}
	return true, common.MsgpackUnmarshal(val, v)
}
