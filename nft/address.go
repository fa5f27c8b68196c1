package nft

import (
	"encoding/binary"
	"fmt"

	"github.com/MixinNetwork/mixin/crypto"
	"github.com/gofrs/uuid"
)

const (
	schemeObject   byte = 0xFE
	schemeIdentity byte = 0xFF
)

// Address is a 32 bytes storage location, both accounts and objects live at one.
type Address crypto.Hash

func AddressFromString(s string) (Address, error) {
	h, err := crypto.HashFromString(s)
	if err != nil {
		return Address{}, fmt.Errorf("invalid address %s: %w", s, err)
	}
	return Address(h), nil
}

// AccountAddress maps a mixin user id to the account address acting for it.
func AccountAddress(userId string) (Address, error) {
	id, err := uuid.FromString(userId)
	if err != nil {
		return Address{}, fmt.Errorf("invalid account %s: %w", userId, err)
	}
	if id == uuid.Nil {
		return Address{}, fmt.Errorf("invalid account %s", userId)
	}
	return Address(crypto.NewHash(id.Bytes())), nil
}

func (a Address) String() string {
	return crypto.Hash(a).String()
}

func (a Address) HasValue() bool {
	return crypto.Hash(a).HasValue()
}

// DeriveIdentityAddress computes the address of an application identity
// created by creator from a fixed seed.
func DeriveIdentityAddress(creator Address, seed []byte) Address {
	buf := make([]byte, 0, len(creator)+len(seed)+1)
	buf = append(buf, creator[:]...)
	buf = append(buf, seed...)
	buf = append(buf, schemeIdentity)
	return Address(crypto.NewHash(buf))
}

// DeriveObjectAddress computes the address of the object named name inside
// namespace, created by creator. Both strings are length prefixed so distinct
// triples never share a preimage.
func DeriveObjectAddress(creator Address, namespace, name string) Address {
	buf := make([]byte, 0, len(creator)+len(namespace)+len(name)+2*binary.MaxVarintLen64+1)
	buf = append(buf, creator[:]...)
	buf = binary.AppendUvarint(buf, uint64(len(namespace)))
	buf = append(buf, namespace...)
	buf = binary.AppendUvarint(buf, uint64(len(name)))
	buf = append(buf, name...)
	buf = append(buf, schemeObject)
	return Address(crypto.NewHash(buf))
}
