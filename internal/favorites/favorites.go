// Package favorites keeps the user's saved spots and buoys. The whole list is
// stored as one JSON array under a single key, read once on Open and
// rewritten on every change.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/crubio/surfe-diem/backend-go/internal/storage"
	"github.com/rs/zerolog/log"
)

const StorageKey = "favorites"

type Store struct {
	kv    storage.Store
	mu    sync.Mutex
	items []models.Favorite
	now   func() time.Time
}

// Open loads the saved list. A missing key starts empty; so does an
// unreadable value, which is overwritten on the next change.
func Open(ctx context.Context, kv storage.Store) (*Store, error) {
	s := &Store{kv: kv, items: []models.Favorite{}, now: time.Now}

	raw, err := kv.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading favorites: %w", err)
	}

	var items []models.Favorite
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Warn().Err(err).Msg("Discarding unreadable favorites")
		return s, nil
	}

	// older writes may carry duplicates; keep the first of each
	for _, f := range items {
		if s.indexOf(f.ID, f.Type) < 0 {
			s.items = append(s.items, f)
		}
	}
	return s, nil
}

// Add saves f unless an entry with the same id and type exists. AddedAt
// defaults to now. It reports whether f was added.
func (s *Store) Add(ctx context.Context, f models.Favorite) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(ctx, f)
}

func (s *Store) add(ctx context.Context, f models.Favorite) (bool, error) {
	if s.indexOf(f.ID, f.Type) >= 0 {
		return false, nil
	}

	if f.AddedAt == "" {
		f.AddedAt = s.now().UTC().Format(time.RFC3339)
	}
	if err := f.Validate(); err != nil {
		return false, fmt.Errorf("invalid favorite: %w", err)
	}

	next := append(append([]models.Favorite{}, s.items...), f)
	if err := s.save(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the entry for id and type, reporting whether one existed
func (s *Store) Remove(ctx context.Context, id string, typ models.FavoriteType) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(ctx, id, typ)
}

func (s *Store) remove(ctx context.Context, id string, typ models.FavoriteType) (bool, error) {
	idx := s.indexOf(id, typ)
	if idx < 0 {
		return false, nil
	}

	next := make([]models.Favorite, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	if err := s.save(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// Toggle removes f if saved and adds it otherwise. It reports whether f is
// saved afterwards.
func (s *Store) Toggle(ctx context.Context, f models.Favorite) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(f.ID, f.Type) >= 0 {
		_, err := s.remove(ctx, f.ID, f.Type)
		return false, err
	}
	return s.add(ctx, f)
}

func (s *Store) IsFavorite(id string, typ models.FavoriteType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id, typ) >= 0
}

// List returns a copy of the saved entries in insertion order
func (s *Store) List() []models.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Favorite{}, s.items...)
}

// ListByType returns the saved entries of one type
func (s *Store) ListByType(typ models.FavoriteType) []models.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Favorite
	for _, f := range s.items {
		if f.Type == typ {
			out = append(out, f)
		}
	}
	return out
}

// Clear removes every entry
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, []models.Favorite{})
}

// save writes next and only then makes it the in-memory list
func (s *Store) save(ctx context.Context, next []models.Favorite) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encoding favorites: %w", err)
	}
	if err := s.kv.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("saving favorites: %w", err)
	}
	s.items = next
	return nil
}

func (s *Store) indexOf(id string, typ models.FavoriteType) int {
	for i, f := range s.items {
		if f.ID == id && f.Type == typ {
			return i
		}
	}
	return -1
}
