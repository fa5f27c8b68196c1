package nft

const (
	CollectionName        = "MuseSong Collection"
	CollectionDescription = "Songs composed with the muse, one per listener."
	CollectionURI         = "https://musesong.one/collection"
)

// newCollection prepares the unlimited collection created by signer.
func newCollection(signer *Signer) (*ConstructorRef, *Collection) {
	addr := DeriveObjectAddress(signer.Address(), CollectionName, "")
	cr := newConstructorRef(addr, ObjectKindCollection, signer.Address())
	return cr, &Collection{
		Address:     addr,
		Creator:     signer.Address(),
		Name:        CollectionName,
		Description: CollectionDescription,
		URI:         CollectionURI,
	}
}

func (m *Module) CollectionAddress() Address {
	return DeriveObjectAddress(m.IdentityAddress(), CollectionName, "")
}

func (m *Module) Collection() (*Collection, error) {
	m.RLock()
	defer m.RUnlock()

	c, err := m.store.ReadCollection(m.CollectionAddress())
	if err != nil || c != nil {
		return c, err
	}
	return nil, ErrUninitialized
}
