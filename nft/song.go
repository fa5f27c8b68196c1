package nft

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/MixinNetwork/mixin/logger"
	"github.com/fox-one/mixin-sdk-go"
)

const (
	TitleMaxLength = 40
	MaxPoints      = 10
)

// Create mints the song of owner. The song is created by the application
// identity at the address derived from the owner address string, so each
// owner holds at most one song, then ownership moves to owner.
func (m *Module) Create(ctx context.Context, owner Address, identifier, title, prompt, imageURL, audioURL, tags string) error {
	if n := utf8.RuneCountInString(title); n > TitleMaxLength {
		return fmt.Errorf("title %d > %d: %w", n, TitleMaxLength, ErrTitleTooLong)
	}

	m.Lock()
	defer m.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	signer, err := m.currentSigner()
	if err != nil {
		return err
	}

	name := owner.String()
	addr := DeriveObjectAddress(signer.Address(), CollectionName, name)
	cr := newConstructorRef(addr, ObjectKindSong, signer.Address())
	mutateRef, err := cr.GenerateMutateRef()
	if err != nil {
		return err
	}
	burnRef, err := cr.GenerateBurnRef()
	if err != nil {
		return err
	}
	transferRef, err := cr.GenerateTransferRef()
	if err != nil {
		return err
	}

	song := &Song{
		Address:    addr,
		Collection: DeriveObjectAddress(signer.Address(), CollectionName, ""),
		Identifier: identifier,
		Title:      title,
		Prompt:     prompt,
		ImageURL:   imageURL,
		AudioURL:   audioURL,
		Tags:       tags,
		Points:     MaxPoints,
		MutateRef:  mutateRef.self,
		BurnRef:    burnRef.Address(),
	}
	now := m.clock.Next()
	evt := &SongCreated{
		TraceId:    mixin.UniqueConversationID(addr.String(), "created"),
		Name:       name,
		Identifier: identifier,
		Title:      title,
		AudioURL:   audioURL,
		CreatedAt:  now,
	}
	err = transferRef.Transfer(owner)
	if err != nil {
		return err
	}

	err = m.store.WriteSong(cr.Object(), song, evt)
	if err != nil {
		return err
	}
	m.clock.Commit(now)
	logger.Printf("Module.Create(%s, %s) => %s\n", owner, identifier, addr)
	return nil
}

// Feed raises the points of the owner song, saturating at MaxPoints.
func (m *Module) Feed(ctx context.Context, owner Address, amount uint64) error {
	return m.updatePoints(ctx, owner, func(points uint64) uint64 {
		return feedPoints(points, amount)
	})
}

// Play lowers the points of the owner song, never below zero.
func (m *Module) Play(ctx context.Context, owner Address, amount uint64) error {
	return m.updatePoints(ctx, owner, func(points uint64) uint64 {
		return playPoints(points, amount)
	})
}

func (m *Module) updatePoints(ctx context.Context, owner Address, fn func(uint64) uint64) error {
	m.Lock()
	defer m.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := m.currentSigner()
	if err != nil {
		return err
	}
	addr := m.RecordAddress(owner)
	return m.store.UpdateSong(addr, func(s *Song) error {
		old := s.Points
		err := s.mutateRef().SetPoints(s, fn(old))
		if err != nil {
			return err
		}
		logger.Verbosef("Module.updatePoints(%s) %d => %d\n", owner, old, s.Points)
		return nil
	})
}

// Burn destroys the owner song through its burn capability, the owner may
// create a new one afterwards.
func (m *Module) Burn(ctx context.Context, owner Address) error {
	m.Lock()
	defer m.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := m.currentSigner()
	if err != nil {
		return err
	}
	addr := m.RecordAddress(owner)
	song, err := m.store.ReadSong(addr)
	if err != nil {
		return err
	}
	if song == nil {
		return fmt.Errorf("song %s: %w", addr, ErrNotAvailable)
	}
	ref := song.burnRef()
	if ref.Address() != song.Address {
		return ErrCapabilityMismatch
	}
	err = m.store.DeleteSong(ref.Address())
	if err != nil {
		return err
	}
	logger.Printf("Module.Burn(%s) => %s\n", owner, addr)
	return nil
}

func feedPoints(points, amount uint64) uint64 {
	if points >= MaxPoints || amount >= MaxPoints-points {
		return MaxPoints
	}
	return points + amount
}

func playPoints(points, amount uint64) uint64 {
	if amount >= points {
		return 0
	}
	return points - amount
}
