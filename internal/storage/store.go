// Package storage is the flat key-value store behind favorites and session
// state. Backends are in-memory, SQLite, and DynamoDB.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/crubio/surfe-diem/backend-go/internal/config"
)

var ErrNotFound = errors.New("key not found")

// Store is a string key-value store. Get returns ErrNotFound for a missing
// key; Remove of a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// New opens the backend selected by cfg
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory, "":
		return NewMemoryStore(), nil
	case config.StorageSQLite:
		store, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageDynamoDB:
		client, err := NewDynamoClient(ctx, cfg.DynamoDBEndpoint)
		if err != nil {
			return nil, fmt.Errorf("creating DynamoDB client: %w", err)
		}
		return NewDynamoStore(client, cfg.DynamoDBTable), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}
}

type prefixed struct {
	store  Store
	prefix string
}

// WithPrefix scopes every key of store under prefix + ":"
func WithPrefix(store Store, prefix string) Store {
	return &prefixed{store: store, prefix: prefix + ":"}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, error) {
	return p.store.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.store.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Remove(ctx context.Context, key string) error {
	return p.store.Remove(ctx, p.prefix+key)
}
