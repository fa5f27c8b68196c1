package nft

import (
	"fmt"
	"time"
)

// IdentitySeed is mixed with the publisher address to place the application identity.
const IdentitySeed = "musesong::application-identity"

// newIdentity prepares the application identity of installer together with
// the extend capability it keeps for itself.
func newIdentity(installer Address, now time.Time) (*ConstructorRef, *Identity, error) {
	addr := DeriveIdentityAddress(installer, []byte(IdentitySeed))
	cr := newConstructorRef(addr, ObjectKindIdentity, installer)
	ref, err := cr.GenerateExtendRef()
	if err != nil {
		return nil, nil, err
	}
	identity := &Identity{
		Address:   addr,
		Installer: installer,
		ExtendRef: ref.Address(),
		CreatedAt: now,
	}
	return cr, identity, nil
}

func (m *Module) IdentityAddress() Address {
	return DeriveIdentityAddress(m.publisher, []byte(IdentitySeed))
}

// CurrentSigner rebuilds the signer of the application identity from its
// stored extend capability.
func (m *Module) CurrentSigner() (*Signer, error) {
	m.RLock()
	defer m.RUnlock()

	return m.currentSigner()
}

func (m *Module) currentSigner() (*Signer, error) {
	identity, err := m.store.ReadIdentity(m.IdentityAddress())
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, fmt.Errorf("identity %s: %w", m.IdentityAddress(), ErrUninitialized)
	}
	return identity.extendRef().GenerateSigner(), nil
}
