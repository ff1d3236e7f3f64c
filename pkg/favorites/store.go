// Package favorites keeps the user's saved connections in a single slot of a
// key-value backend. Every operation reads the whole list, changes it and
// writes it back; concurrent writers race and the last write wins.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AimceptionGian/FlexiPlan/pkg/logging"
	"github.com/AimceptionGian/FlexiPlan/pkg/transit"

	"github.com/charmbracelet/log"
)

// Key is the storage slot holding the serialized favorites list
const Key = "FLEXIPLAN_FAVORITES"

// ErrBackend wraps every failure reported by the storage backend
var ErrBackend = errors.New("favorites storage failed")

// Backend is a minimal key-value store
type Backend interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set overwrites the value for key.
	Set(ctx context.Context, key string, value []byte) error
}

// Store manages the favorites list on top of a Backend
type Store struct {
	backend Backend
	key     string
	logger  *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger injects a structured logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithKey stores the list under another slot name.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// NewStore creates a favorites store on top of backend
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     Key,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the saved connections in insertion order. A missing or
// malformed slot is treated as an empty list.
func (s *Store) Load(ctx context.Context) ([]transit.Connection, error) {
	data, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrBackend, s.key, err)
	}
	if !ok || len(data) == 0 {
		return []transit.Connection{}, nil
	}

	var list []transit.Connection
	if err := json.Unmarshal(data, &list); err != nil {
		s.logger.Warn("ignoring unreadable favorites", "key", s.key, "err", err)
		return []transit.Connection{}, nil
	}
	if list == nil {
		list = []transit.Connection{}
	}
	return list, nil
}

func (s *Store) save(ctx context.Context, list []transit.Connection) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to serialize favorites: %w", err)
	}
	if err := s.backend.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrBackend, s.key, err)
	}
	return nil
}

// indexOf returns the position of the first record equal to c, or -1
func indexOf(list []transit.Connection, c transit.Connection) int {
	fp := transit.Fingerprint(c)
	for i, fav := range list {
		if transit.Fingerprint(fav) == fp {
			return i
		}
	}
	return -1
}

// Contains reports whether c is saved
func (s *Store) Contains(ctx context.Context, c transit.Connection) (bool, error) {
	list, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	return indexOf(list, c) >= 0, nil
}

// Add appends c unless an equal record is already saved.
// It reports whether the list changed.
func (s *Store) Add(ctx context.Context, c transit.Connection) (bool, error) {
	list, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	if indexOf(list, c) >= 0 {
		return false, nil
	}

	if err := s.save(ctx, append(list, c)); err != nil {
		return false, err
	}
	s.logger.Debug("favorite saved", "from", c.From.Station.Name, "to", c.To.Station.Name, "count", len(list)+1)
	return true, nil
}

// Remove deletes the first record equal to c. It reports whether one was found.
func (s *Store) Remove(ctx context.Context, c transit.Connection) (bool, error) {
	list, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(list, c)
	if i < 0 {
		return false, nil
	}

	list = append(list[:i], list[i+1:]...)
	if err := s.save(ctx, list); err != nil {
		return false, err
	}
	s.logger.Debug("favorite removed", "from", c.From.Station.Name, "to", c.To.Station.Name, "count", len(list))
	return true, nil
}

// Toggle removes c if it is saved and adds it otherwise.
// It reports whether c is saved afterwards.
func (s *Store) Toggle(ctx context.Context, c transit.Connection) (bool, error) {
	list, err := s.Load(ctx)
	if err != nil {
		return false, err
	}

	if i := indexOf(list, c); i >= 0 {
		list = append(list[:i], list[i+1:]...)
		if err := s.save(ctx, list); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.save(ctx, append(list, c)); err != nil {
		return false, err
	}
	return true, nil
}
