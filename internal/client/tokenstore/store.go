// Package tokenstore persists the bearer token, the only durable piece of
// client state. The token lives under common.TokenMetadataKey.
package tokenstore

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/taskboard/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/taskboard/internal/common"
)

const namespace = "auth"

// Store holds at most one token. Token returns "" when none is stored.
type Store interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// SQLiteStore keeps the token in the client database.
type SQLiteStore struct {
	repo metadata.Repository
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{repo: metadata.NewSQLiteRepository(db, namespace)}
}

func (s *SQLiteStore) Token(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.TokenMetadataKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// SetToken stores token; an empty token clears the store.
func (s *SQLiteStore) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	return s.repo.Set(ctx, common.TokenMetadataKey, []byte(token))
}

// Clear drops the whole auth namespace, not only the token key, so nothing
// written for the ended session survives it.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

// MemoryStore is a process-local Store, safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Token(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryStore) SetToken(_ context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	return s.SetToken(ctx, "")
}
