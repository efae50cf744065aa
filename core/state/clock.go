package state

var clockKey = []byte("runtime/clock")

type storedClock struct {
	Time  uint64
	Block uint64
}

// ClockGet returns the environment time and height of the last committed
// operation.
func (m *Manager) ClockGet() (now, block uint64, ok bool, err error) {
	var stored storedClock
	ok, err = m.KVGet(clockKey, &stored)
	if err != nil || !ok {
		return 0, 0, ok, err
	}
	return stored.Time, stored.Block, true, nil
}

func (m *Manager) ClockPut(now, block uint64) error {
	return m.KVPut(clockKey, storedClock{Time: now, Block: block})
}
