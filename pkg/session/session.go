// Package session wires the API client, the favorites store and the logger
// together from a resolved configuration.
package session

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/AimceptionGian/FlexiPlan/pkg/config"
	"github.com/AimceptionGian/FlexiPlan/pkg/favorites"
	"github.com/AimceptionGian/FlexiPlan/pkg/logging"
	"github.com/AimceptionGian/FlexiPlan/pkg/pager"
	"github.com/AimceptionGian/FlexiPlan/pkg/transit"

	"github.com/charmbracelet/log"
)

// SQLiteFileName is the database file used by the sqlite backend inside the data dir
const SQLiteFileName = "flexiplan.db"

// Session bundles everything a command needs
type Session struct {
	Config config.AppConfig
	Logger *log.Logger
	Client *transit.Client
	Store  *favorites.Store

	closer io.Closer
}

// Open builds a session from cfg. Unset config fields get their defaults.
// Log output goes to logOut (stderr when nil).
func Open(cfg config.AppConfig, logOut io.Writer) (*Session, error) {
	cfg = cfg.Resolved()
	logger := logging.New(cfg.LogLevel, logOut)

	backend, closer, err := openBackend(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("favorites backend ready", "backend", cfg.StorageBackend, "dir", cfg.DataDir)

	client := transit.NewClient(
		transit.WithBaseURL(cfg.APIBaseURL),
		transit.WithLimit(cfg.ResultsLimit),
		transit.WithLogger(logger),
	)

	return &Session{
		Config: cfg,
		Logger: logger,
		Client: client,
		Store:  favorites.NewStore(backend, favorites.WithLogger(logger)),
		closer: closer,
	}, nil
}

func openBackend(cfg config.AppConfig) (favorites.Backend, io.Closer, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return favorites.NewMemoryBackend(), nil, nil
	case config.BackendSQLite:
		b, err := favorites.OpenSQLiteBackend(filepath.Join(cfg.DataDir, SQLiteFileName))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open favorites database: %w", err)
		}
		return b, b, nil
	default:
		b, err := favorites.NewFileBackend(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return b, nil, nil
	}
}

// NewPager returns a fresh pager on top of the session's client
func (s *Session) NewPager() *pager.Pager {
	return pager.New(s.Client,
		pager.WithLogger(s.Logger),
		pager.WithLongWait(s.Config.LongWaitMinutes),
	)
}

// Close releases the storage backend
func (s *Session) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
