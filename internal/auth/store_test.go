package auth

import (
	"context"

	"github.com/aherrington/merchant-api/internal/domain"
)

// fakeCredentialStore is an in-memory CredentialStore for strategy tests.
type fakeCredentialStore struct {
	principals map[string]*domain.Principal
	err        error
	lookups    int
}

func newFakeCredentialStore(principals ...*domain.Principal) *fakeCredentialStore {
	store := &fakeCredentialStore{principals: make(map[string]*domain.Principal)}
	for _, p := range principals {
		store.principals[p.Name] = p
	}
	return store
}

func (f *fakeCredentialStore) FindSecretByPrincipal(_ context.Context, name string) (*domain.Principal, bool, error) {
	f.lookups++
	if f.err != nil {
		return nil, false, f.err
	}
	p, ok := f.principals[name]
	return p, ok, nil
}
