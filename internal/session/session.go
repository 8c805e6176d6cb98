// Package session keeps an anonymous session id and the A/B variation
// assigned to it.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/crubio/surfe-diem/backend-go/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	IDKey        = "session_id"
	VariationKey = "ab_variation"
)

type Variation string

const (
	VariationA Variation = "A"
	VariationB Variation = "B"
)

type Session struct {
	id        string
	variation Variation
}

// Open reads the session from kv, creating and saving any missing part.
// An unparseable id is replaced along with its variation.
func Open(ctx context.Context, kv storage.Store) (*Session, error) {
	id, err := kv.Get(ctx, IDKey)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("loading session id: %w", err)
	}

	parsed, perr := uuid.Parse(id)
	if perr != nil {
		parsed = uuid.New()
		if err := kv.Set(ctx, IDKey, parsed.String()); err != nil {
			return nil, fmt.Errorf("saving session id: %w", err)
		}
		if err := kv.Remove(ctx, VariationKey); err != nil {
			return nil, fmt.Errorf("resetting variation: %w", err)
		}
		log.Debug().Str("session_id", parsed.String()).Msg("Created new session")
	}

	s := &Session{id: parsed.String()}

	v, err := kv.Get(ctx, VariationKey)
	switch {
	case err == nil && (Variation(v) == VariationA || Variation(v) == VariationB):
		s.variation = Variation(v)
	case err == nil || errors.Is(err, storage.ErrNotFound):
		s.variation = variationFor(parsed)
		if err := kv.Set(ctx, VariationKey, string(s.variation)); err != nil {
			return nil, fmt.Errorf("saving variation: %w", err)
		}
	default:
		return nil, fmt.Errorf("loading variation: %w", err)
	}

	return s, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) Variation() Variation { return s.variation }

// variationFor splits sessions evenly on the first byte of the id
func variationFor(id uuid.UUID) Variation {
	if id[0]%2 == 0 {
		return VariationA
	}
	return VariationB
}
