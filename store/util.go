package store

import (
	"encoding/binary"
	"time"

	"github.com/MixinNetwork/musesong/nft"
)

func tsToBytes(ts time.Time) []byte {
	buf := make([]byte, 8)
	d := ts.UnixNano()
	binary.BigEndian.PutUint64(buf, uint64(d))
	return buf
}

func addressKey(prefix string, addr nft.Address) []byte {
	return append([]byte(prefix), addr[:]...)
}
