package storefakes

import (
	"sync"

	"github.com/ludmilpaulo/rayleneimmigration.co.za/session/tokenstore"
)

var _ tokenstore.Store = (*FakeStore)(nil)

// FakeStore records every call for assertions and can be primed to fail
type FakeStore struct {
	token string
	lock  sync.RWMutex

	GetCalls   int
	SetCalls   []string
	ClearCalls int

	GetErr   error
	SetErr   error
	ClearErr error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (fs *FakeStore) Get() (string, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.GetCalls++
	if fs.GetErr != nil {
		return "", fs.GetErr
	}
	return fs.token, nil
}

func (fs *FakeStore) Set(token string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.SetCalls = append(fs.SetCalls, token)
	if fs.SetErr != nil {
		return fs.SetErr
	}
	fs.token = token
	return nil
}

func (fs *FakeStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.ClearCalls++
	if fs.ClearErr != nil {
		return fs.ClearErr
	}
	fs.token = ""
	return nil
}

// Token returns the currently stored token without counting as a Get
func (fs *FakeStore) Token() string {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.token
}
