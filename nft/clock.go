package nft

import (
	"encoding/binary"
	"sync"
	"time"
)

// ClockPropertyKey holds the last committed timestamp, the store writes it in
// the same transaction as the event it stamped.
const ClockPropertyKey = "MUSESONG:CLOCK:MONOTONIC"

// Clock never goes backwards, even across restarts, so event keys stay ordered.
type Clock struct {
	sync.Mutex
	now time.Time
}

func NewClock(store Store) (*Clock, error) {
	bs, err := store.ReadProperty([]byte(ClockPropertyKey))
	if err != nil {
		return nil, err
	}
	var ts time.Time
	if len(bs) == 8 {
		ts = time.Unix(0, int64(binary.BigEndian.Uint64(bs)))
	}
	if now := time.Now(); ts.Before(now) {
		ts = now
	}
	clock := new(Clock)
	clock.now = ts
	return clock, nil
}

// Next returns a timestamp after every committed one, it is not kept until
// Commit is called with it.
func (c *Clock) Next() time.Time {
	c.Lock()
	defer c.Unlock()

	now := time.Now()
	if !now.After(c.now) {
		now = c.now.Add(time.Nanosecond)
	}
	return now
}

func (c *Clock) Commit(ts time.Time) {
	c.Lock()
	defer c.Unlock()

	if ts.After(c.now) {
		c.now = ts
	}
}

func EncodeClock(ts time.Time) []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(ts.UnixNano()))
}
