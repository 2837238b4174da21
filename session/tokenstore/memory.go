package tokenstore

import "sync"

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps the token in memory only. Sessions do not survive a
// process restart; useful for tests and short-lived tools.
type MemoryStore struct {
	token string
	lock  sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (ms *MemoryStore) Get() (string, error) {
	ms.lock.RLock()
	defer ms.lock.RUnlock()
	return ms.token, nil
}

func (ms *MemoryStore) Set(token string) error {
	ms.lock.Lock()
	defer ms.lock.Unlock()
	ms.token = token
	return nil
}

func (ms *MemoryStore) Clear() error {
	ms.lock.Lock()
	defer ms.lock.Unlock()
	ms.token = ""
	return nil
}
