package nft

// noCopy lets go vet flag capabilities passed by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Signer is the authority to create objects on behalf of an address.
type Signer struct {
	addr Address
}

func (s *Signer) Address() Address {
	return s.addr
}

// ConstructorRef is handed out once for every new object, each capability
// can be generated from it at most once.
type ConstructorRef struct {
	noCopy noCopy

	object   *Object
	extend   bool
	mutate   bool
	burn     bool
	transfer bool
}

func newConstructorRef(addr Address, kind string, creator Address) *ConstructorRef {
	return &ConstructorRef{
		object: &Object{
			Address: addr,
			Kind:    kind,
			Creator: creator,
			Owner:   creator,
		},
	}
}

func (cr *ConstructorRef) Address() Address {
	return cr.object.Address
}

func (cr *ConstructorRef) Object() *Object {
	return cr.object
}

func (cr *ConstructorRef) GenerateExtendRef() (*ExtendRef, error) {
	if cr.extend {
		return nil, ErrCapabilityConsumed
	}
	cr.extend = true
	return &ExtendRef{self: cr.object.Address}, nil
}

func (cr *ConstructorRef) GenerateMutateRef() (*MutateRef, error) {
	if cr.mutate {
		return nil, ErrCapabilityConsumed
	}
	cr.mutate = true
	return &MutateRef{self: cr.object.Address}, nil
}

func (cr *ConstructorRef) GenerateBurnRef() (*BurnRef, error) {
	if cr.burn {
		return nil, ErrCapabilityConsumed
	}
	cr.burn = true
	return &BurnRef{self: cr.object.Address}, nil
}

func (cr *ConstructorRef) GenerateTransferRef() (*TransferRef, error) {
	if cr.transfer {
		return nil, ErrCapabilityConsumed
	}
	cr.transfer = true
	return &TransferRef{object: cr.object}, nil
}

// ExtendRef rebuilds the signer of the object it was generated for.
type ExtendRef struct {
	self Address
}

func (ref *ExtendRef) Address() Address {
	return ref.self
}

func (ref *ExtendRef) GenerateSigner() *Signer {
	return &Signer{addr: ref.self}
}

type MutateRef struct {
	self Address
}

func (ref *MutateRef) SetPoints(s *Song, points uint64) error {
	if ref.self != s.Address {
		return ErrCapabilityMismatch
	}
	if points > MaxPoints {
		panic(points)
	}
	s.Points = points
	return nil
}

type BurnRef struct {
	self Address
}

func (ref *BurnRef) Address() Address {
	return ref.self
}

// TransferRef moves the ownership of its object exactly once.
type TransferRef struct {
	noCopy noCopy

	object   *Object
	consumed bool
}

func (ref *TransferRef) Transfer(to Address) error {
	if ref.consumed {
		return ErrCapabilityConsumed
	}
	ref.consumed = true
	ref.object.Owner = to
	return nil
}
