package nft

import "time"

type Store interface {
	WriteProperty(key, val []byte) error
	ReadProperty(key []byte) ([]byte, error)

	WriteInstallation(iobj *Object, identity *Identity, cobj *Object, collection *Collection) error
	ReadIdentity(addr Address) (*Identity, error)
	ReadCollection(addr Address) (*Collection, error)
	ReadObject(addr Address) (*Object, error)

	WriteSong(obj *Object, song *Song, evt *SongCreated) error
	ReadSong(addr Address) (*Song, error)
	UpdateSong(addr Address, fn func(*Song) error) error
	DeleteSong(addr Address) error
	ListSongCreatedEvents(offset time.Time, limit int) ([]*SongCreated, error)
}

const (
	ObjectKindIdentity   = "identity"
	ObjectKindCollection = "collection"
	ObjectKindSong       = "musesong"
)

// Object is the ownership core every stored resource carries.
type Object struct {
	Address Address
	Kind    string
	Creator Address
	Owner   Address
}

type Identity struct {
	Address   Address
	Installer Address
	ExtendRef Address
	CreatedAt time.Time
}

type Collection struct {
	Address     Address
	Creator     Address
	Name        string
	Description string
	URI         string
	MaxSupply   uint64
}

type Song struct {
	Address    Address
	Collection Address
	Identifier string
	Title      string
	Prompt     string
	ImageURL   string
	AudioURL   string
	Tags       string
	Points     uint64
	MutateRef  Address
	BurnRef    Address
}

type SongCreated struct {
	TraceId    string
	Name       string
	Identifier string
	Title      string
	AudioURL   string
	CreatedAt  time.Time
}

func (id *Identity) extendRef() *ExtendRef {
	return &ExtendRef{self: id.ExtendRef}
}

func (s *Song) mutateRef() *MutateRef {
	return &MutateRef{self: s.MutateRef}
}

func (s *Song) burnRef() *BurnRef {
	return &BurnRef{self: s.BurnRef}
}
