package metadata

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/common"
)

// TokenStore persists the bearer token under the well-known key.
type TokenStore struct {
	repo Repository
}

func NewTokenStore(repo Repository) *TokenStore {
	return &TokenStore{repo: repo}
}

// LoadToken returns "" when no token is stored.
func (s *TokenStore) LoadToken(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *TokenStore) SaveToken(ctx context.Context, token string) error {
	return s.repo.Set(ctx, common.TokenStorageKey, []byte(token))
}

func (s *TokenStore) ClearToken(ctx context.Context) error {
	return s.repo.Delete(ctx, common.TokenStorageKey)
}
