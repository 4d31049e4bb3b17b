package app

import (
	"fmt"
	"io"

	"github.com/justyntemme/roulette/internal/config"
	"github.com/justyntemme/roulette/internal/debug"
	"github.com/justyntemme/roulette/internal/session"
	"github.com/justyntemme/roulette/internal/store"
)

// Store backends selectable with --store.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Options holds the persistent flags shared by every command.
type Options struct {
	ConfigPath string
	Store      string
	Verbose    bool
	JSONLogs   bool

	sessionOpts []session.Option // test hooks
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore builds the configured settings backend.
func (o *Options) openStore() (config.Store, io.Closer, error) {
	switch o.Store {
	case "", StoreFile:
		fileStore := config.NewFileStore(o.ConfigPath)
		debug.Log(debug.APP, "settings file %s", fileStore.Path())
		return fileStore, nopCloser{}, nil
	case StoreSQLite:
		db, err := store.Open(o.ConfigPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open settings database: %w", err)
		}
		return db, db, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q (want %s or %s)", o.Store, StoreFile, StoreSQLite)
}

// newSession opens the store and starts a session on it. The returned closer
// releases the store.
func (o *Options) newSession() (*session.Session, io.Closer, error) {
	st, closer, err := o.openStore()
	if err != nil {
		return nil, nil, err
	}
	return session.New(st, o.sessionOpts...), closer, nil
}
