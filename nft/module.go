package nft

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MixinNetwork/mixin/logger"
)

// Module holds the entry points of the musesong application. Entry points
// are serialised, each one commits in a single store transaction or not at all.
type Module struct {
	sync.RWMutex
	store     Store
	clock     *Clock
	publisher Address
}

func NewModule(store Store, publisher Address) (*Module, error) {
	if !publisher.HasValue() {
		return nil, errors.New("invalid module publisher")
	}
	clock, err := NewClock(store)
	if err != nil {
		return nil, err
	}
	return &Module{
		store:     store,
		clock:     clock,
		publisher: publisher,
	}, nil
}

func (m *Module) Publisher() Address {
	return m.publisher
}

// Bootstrap creates the application identity and the collection it owns, it
// must run exactly once when the module is installed.
func (m *Module) Bootstrap(ctx context.Context, installer Address) error {
	m.Lock()
	defer m.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if installer != m.publisher {
		return fmt.Errorf("bootstrap by %s: %w", installer, ErrNotPublisher)
	}
	now := m.clock.Next()
	icr, identity, err := newIdentity(installer, now)
	if err != nil {
		return err
	}
	signer := identity.extendRef().GenerateSigner()
	ccr, collection := newCollection(signer)

	err = m.store.WriteInstallation(icr.Object(), identity, ccr.Object(), collection)
	if err != nil {
		return err
	}
	m.clock.Commit(now)
	logger.Printf("Module.Bootstrap(%s) => identity %s collection %s\n", installer, identity.Address, collection.Address)
	return nil
}
